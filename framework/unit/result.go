package unit

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Results describes the outcome of a whole run.
type Results struct {
	// RunID uniquely identifies the run in reports.
	RunID string
	// Tests contains one Result per test that was executed, in execution order.
	Tests []Result
	// Failures contains the failed subset of Tests.
	Failures []Result
}

// Result describes the outcome of one registered test.
type Result struct {
	TestID     TestID
	Failed     bool
	Skipped    bool
	SkipReason string
	// Log contains the lines the test wrote, with subtest sections indented.
	Log      []string
	Duration time.Duration
}

// OK returns true if no test failed.
func (r Results) OK() bool {
	return len(r.Failures) == 0
}

// Failed returns true if any test failed.
func (r Results) Failed() bool {
	return !r.OK()
}

// Err returns nil if no test failed. Otherwise it joins a TestFailure for each failed test, each
// wrapping ErrTestFailed.
func (r Results) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, TestFailure{ID: f.TestID, Err: ErrTestFailed})
	}
	return errors.Join(errs...)
}

// SuiteName returns the name of the suite the test belongs to, or "" for a standalone test.
func (r Result) SuiteName() string {
	if len(r.TestID) < 2 {
		return ""
	}
	return r.TestID[0]
}

// TestName returns the name of the test without its suite name.
func (r Result) TestName() string {
	if len(r.TestID) == 0 {
		return ""
	}
	return r.TestID[len(r.TestID)-1]
}

// Status returns "passed", "failed" or "skipped".
func (r Result) Status() string {
	switch {
	case r.Failed:
		return "failed"
	case r.Skipped:
		return "skipped"
	default:
		return "passed"
	}
}

// TestID is the full name of a test or subtest: the suite name if any, the test name, and the
// name of each enclosing subtest.
type TestID []string

func (t TestID) String() string {
	return strings.Join(t, "/")
}

// Plus returns a new TestID with the name appended, leaving t unchanged.
func (t TestID) Plus(name string) TestID {
	return append(append(TestID(nil), t...), name)
}

// ErrTestFailed is the cause of every TestFailure returned by Results.Err.
var ErrTestFailed = errors.New("test failed")

// TestFailure associates an error with the test it occurred in.
type TestFailure struct {
	ID  TestID
	Err error
}

func (f TestFailure) Error() string {
	return fmt.Sprintf("[%s]: %s", f.ID, f.Err)
}

func (f TestFailure) Unwrap() error { return f.Err }

package unit

import (
	"time"

	"github.com/google/uuid"

	"github.com/dhemodules/dheunit/framework"
	"github.com/dhemodules/dheunit/framework/logbuf"
)

// RunConfiguration contains options for the entire test run.
type RunConfiguration struct {
	// Filter is an optional filter for determining which tests and subtests to run based on their IDs.
	Filter Filter

	// TestLogger receives status information about each test.
	TestLogger TestLogger

	// Output optionally receives every test's log as it is written, in a section named after
	// the test's ID. Use a logbuf.BufferedLog to show only tests that write something, or a
	// logbuf.StreamLog to show every test and subtest.
	Output logbuf.Log

	// DebugLogger receives diagnostic output from the harness, such as the stacktraces of
	// unexpected panics.
	DebugLogger framework.Logger
}

// Run executes every test in the registry, one at a time in registration order, and returns
// the results. Every test is attempted regardless of earlier failures.
func Run(registry *Registry, config RunConfiguration) Results {
	env := newEnvironment(config)
	results := Results{RunID: uuid.NewString()}
	for _, test := range registry.Tests() {
		if !env.match(test.ID) {
			env.config.TestLogger.TestSkipped(test.ID, filterSkipReason)
			continue
		}
		result := env.runTest(test)
		results.Tests = append(results.Tests, result)
		if result.Failed {
			results.Failures = append(results.Failures, result)
		}
	}
	return results
}

// RunTest executes a single test body outside of any registry. It is mainly useful for testing
// code that consumes a *T.
func RunTest(config RunConfiguration, name string, body TestFunc) Result {
	env := newEnvironment(config)
	return env.runTest(Test{ID: TestID{name}, Body: body})
}

func (e *environment) runTest(test Test) Result {
	e.config.TestLogger.TestStarted(test.ID)
	if e.config.Output != nil {
		e.config.Output.Begin(test.ID.String())
	}
	recorder := &logbuf.LineLog{}
	t := &T{
		env: e,
		id:  test.ID,
		log: logbuf.MultiLog(logbuf.NewBufferedLog(recorder), e.config.Output),
	}

	startTime := time.Now()
	t.run(test.Run)
	result := Result{
		TestID:   test.ID,
		Failed:   t.failed,
		Skipped:  t.skipped && !t.failed,
		Log:      recorder.Lines(),
		Duration: time.Since(startTime),
	}
	if result.Skipped {
		result.SkipReason = t.skipReason
	}

	if e.config.Output != nil {
		e.config.Output.End()
	}
	e.config.TestLogger.TestFinished(result)
	return result
}

package unit

import (
	"runtime/debug"
	"strings"

	"github.com/dhemodules/dheunit/framework"
	"github.com/dhemodules/dheunit/framework/format"
	"github.com/dhemodules/dheunit/framework/logbuf"
)

const filterSkipReason = "excluded by filter parameters"

type environment struct {
	config RunConfiguration
}

func newEnvironment(config RunConfiguration) *environment {
	if config.TestLogger == nil {
		config.TestLogger = nullTestLogger{}
	}
	if config.DebugLogger == nil {
		config.DebugLogger = framework.NullLogger()
	}
	return &environment{config: config}
}

func (e *environment) match(id TestID) bool {
	return e.config.Filter == nil || e.config.Filter.Match(id)
}

// stopSignal is the panic value that FailNow and Skip use to end the current test scope. It is
// always recovered by the boundary that invoked the body of that scope.
type stopSignal struct{}

// T represents a test scope: a registered test or one of its subtests. It is very similar to
// Go's testing.T type.
//
// A T starts out running. Fail marks it failed and lets it continue; FailNow marks it failed
// and stops it. Failure is never reset, and failing a subtest also fails every enclosing test.
type T struct {
	env        *environment
	id         TestID
	parent     *T
	log        logbuf.Log
	failed     bool
	skipped    bool
	skipReason string
	cleanups   []func()
}

// ID returns the full name of the current test.
func (t *T) ID() TestID {
	return t.id
}

// Name returns the last component of the test's ID.
func (t *T) Name() string {
	if len(t.id) == 0 {
		return ""
	}
	return t.id[len(t.id)-1]
}

// Failed reports whether the test or any of its subtests has failed.
func (t *T) Failed() bool {
	return t.failed
}

// Fail marks the test and all of its enclosing tests as failed, and continues executing it.
func (t *T) Fail() {
	t.failed = true
	if t.parent != nil {
		t.parent.Fail()
	}
}

// FailNow marks the test as failed and stops executing it. Enclosing tests continue with the
// statement after their call to Run.
func (t *T) FailNow() {
	t.Fail()
	panic(stopSignal{})
}

// Skip causes the test to immediately terminate and be marked as skipped.
func (t *T) Skip() {
	t.skipped = true
	panic(stopSignal{})
}

// SkipWithReason is equivalent to Skip but provides a message.
func (t *T) SkipWithReason(reason string) {
	t.skipReason = reason
	t.Skip()
}

// Log writes the string form of each argument to the test's log as one line, separated by
// spaces.
func (t *T) Log(args ...interface{}) {
	t.write(format.Joined(args...))
}

// Logf writes the template to the test's log, replacing each "{}" with the string form of the
// corresponding argument. If the number of anchors and arguments differ, Logf panics with a
// format.FormatError, which fails the test.
func (t *T) Logf(template string, args ...interface{}) {
	line, err := format.Formatted(template, args...)
	if err != nil {
		panic(err)
	}
	t.write(line)
}

// Error is equivalent to Log followed by Fail.
func (t *T) Error(args ...interface{}) {
	t.Log(args...)
	t.Fail()
}

// Errorf is equivalent to Logf followed by Fail.
func (t *T) Errorf(template string, args ...interface{}) {
	t.Logf(template, args...)
	t.Fail()
}

// Fatal is equivalent to Log followed by FailNow.
func (t *T) Fatal(args ...interface{}) {
	t.Log(args...)
	t.FailNow()
}

// Fatalf is equivalent to Logf followed by FailNow.
func (t *T) Fatalf(template string, args ...interface{}) {
	t.Logf(template, args...)
	t.FailNow()
}

// Run runs body as a subtest named name, in its own log section, and returns false if the
// subtest failed.
//
// Whatever happens in the subtest (a failure, FailNow, or a panic) ends at this call: a panic
// is logged in the subtest and fails it. If the subtest failed, t is marked failed too, and
// execution of t continues after Run returns.
func (t *T) Run(name string, body func(*T)) bool {
	id := t.id.Plus(name)
	if !t.env.match(id) {
		t.env.config.TestLogger.TestSkipped(id, filterSkipReason)
		return true
	}
	child := &T{
		env:    t.env,
		id:     id,
		parent: t,
		log:    t.log,
	}
	t.log.Begin(name)
	child.run(body)
	t.log.End()
	if child.failed {
		t.Fail()
	} else if child.skipped {
		t.env.config.TestLogger.TestSkipped(id, child.skipReason)
	}
	return !child.failed
}

// Defer schedules a cleanup function which is guaranteed to be called when this test scope
// exits for any reason. Cleanups run in the reverse of the order they were added.
func (t *T) Defer(cleanupFn func()) {
	t.cleanups = append(t.cleanups, cleanupFn)
}

// DebugLogger returns a Logger for diagnostic output from this test that goes to the harness's
// debug log rather than the test's own log.
func (t *T) DebugLogger() framework.Logger {
	return framework.LoggerWithPrefix(t.env.config.DebugLogger, "["+t.id.String()+"] ")
}

func (t *T) write(text string) {
	for _, line := range strings.Split(text, "\n") {
		t.log.Write(line)
	}
}

// run is the boundary of a test scope: it executes body, absorbs the stop signal and any
// other panic, then runs the cleanups.
func (t *T) run(body func(*T)) {
	t.protect(func() { body(t) })
	for i := len(t.cleanups) - 1; i >= 0; i-- {
		t.protect(t.cleanups[i])
	}
	t.cleanups = nil
}

// protect calls fn and turns a panic into a failure of t.
func (t *T) protect(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			t.recovered(r)
		}
	}()
	fn()
}

func (t *T) recovered(r interface{}) {
	if _, ok := r.(stopSignal); ok {
		return
	}
	t.env.config.DebugLogger.Printf("[%s] unexpected panic: %+v\n%s", t.id, r, debug.Stack())
	switch v := r.(type) {
	case error:
		t.Error("Unexpected exception:", v.Error())
	case string:
		t.Error("Unexpected string exception:", v)
	default:
		t.Error("Unrecognized exception")
	}
}

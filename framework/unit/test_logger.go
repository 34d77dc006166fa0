package unit

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dhemodules/dheunit/framework/logbuf"
)

var consoleTestPassedColor = color.New(color.FgGreen)              //nolint:gochecknoglobals
var consoleTestFailedColor = color.New(color.FgRed)                //nolint:gochecknoglobals
var consoleTestSkippedColor = color.New(color.Faint, color.FgBlue) //nolint:gochecknoglobals
var consoleTestLogColor = color.New(color.FgYellow)                //nolint:gochecknoglobals
var allTestsPassedColor = color.New(color.FgGreen)                 //nolint:gochecknoglobals

// TestLogger receives status information about each test.
//
// TestFinished is called once for every test that was executed, including tests that skipped
// themselves. TestSkipped is called for tests and subtests that were excluded by the filter,
// and for subtests that skipped themselves.
type TestLogger interface {
	TestStarted(id TestID)
	TestFinished(result Result)
	TestSkipped(id TestID, reason string)
	EndLog(results Results) error
}

type nullTestLogger struct{}

func (n nullTestLogger) TestStarted(TestID)         {}
func (n nullTestLogger) TestFinished(Result)        {}
func (n nullTestLogger) TestSkipped(TestID, string) {}
func (n nullTestLogger) EndLog(Results) error       { return nil }

// MultiTestLogger forwards every call to each of its loggers.
type MultiTestLogger struct {
	Loggers []TestLogger
}

func (m *MultiTestLogger) TestStarted(id TestID) {
	for _, l := range m.Loggers {
		l.TestStarted(id)
	}
}

func (m *MultiTestLogger) TestFinished(result Result) {
	for _, l := range m.Loggers {
		l.TestFinished(result)
	}
}

func (m *MultiTestLogger) TestSkipped(id TestID, reason string) {
	for _, l := range m.Loggers {
		l.TestSkipped(id, reason)
	}
}

// EndLog calls EndLog on every logger, even if some of them fail, and returns all the errors.
func (m *MultiTestLogger) EndLog(results Results) error {
	var errs []error
	for _, l := range m.Loggers {
		if err := l.EndLog(results); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ConsoleTestLogger prints a PASSED, FAILED or SKIPPED line for each test, optionally followed
// by the test's log, and a summary at the end of the run.
type ConsoleTestLogger struct {
	// Out is where output goes; the default is os.Stdout.
	Out io.Writer
	// LogOnFailure shows the log lines of failed tests.
	LogOnFailure bool
	// LogOnSuccess shows the log lines of tests that passed.
	LogOnSuccess bool

	excluded int
	lock     sync.Mutex
}

func (c *ConsoleTestLogger) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *ConsoleTestLogger) TestStarted(TestID) {}

func (c *ConsoleTestLogger) TestFinished(result Result) {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := c.out()
	switch {
	case result.Failed:
		_, _ = consoleTestFailedColor.Fprintf(out, "FAILED: %s\n", result.TestID)
	case result.Skipped:
		c.printSkipped(result.TestID, result.SkipReason)
		return
	default:
		_, _ = consoleTestPassedColor.Fprintf(out, "PASSED: %s\n", result.TestID)
	}
	if (result.Failed && c.LogOnFailure) || (!result.Failed && c.LogOnSuccess) {
		for _, line := range result.Log {
			_, _ = consoleTestLogColor.Fprintf(out, "%s%s\n", logbuf.Indent, line)
		}
	}
}

func (c *ConsoleTestLogger) TestSkipped(id TestID, reason string) {
	c.lock.Lock()
	defer c.lock.Unlock()
	if reason == filterSkipReason {
		c.excluded++
		return
	}
	c.printSkipped(id, reason)
}

func (c *ConsoleTestLogger) printSkipped(id TestID, reason string) {
	if reason == "" {
		_, _ = consoleTestSkippedColor.Fprintf(c.out(), "SKIPPED: %s\n", id)
	} else {
		_, _ = consoleTestSkippedColor.Fprintf(c.out(), "SKIPPED: %s (%s)\n", id, reason)
	}
}

// EndLog prints a table of totals followed by the list of failed tests.
func (c *ConsoleTestLogger) EndLog(results Results) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	out := c.out()

	var passed, skipped int
	for _, r := range results.Tests {
		switch {
		case r.Failed:
		case r.Skipped:
			skipped++
		default:
			passed++
		}
	}

	fmt.Fprintln(out)
	tw := table.NewWriter()
	tw.SetOutputMirror(out)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"Passed", "Failed", "Skipped", "Excluded", "Total"})
	tw.AppendRow(table.Row{passed, len(results.Failures), skipped, c.excluded, len(results.Tests)})
	tw.Render()

	PrintResults(out, results)
	return nil
}

// PrintResults prints either a success message or the IDs of the failed tests.
func PrintResults(out io.Writer, results Results) {
	if results.OK() {
		_, _ = allTestsPassedColor.Fprintln(out, "All tests passed")
		return
	}
	_, _ = consoleTestFailedColor.Fprintf(out, "FAILED TESTS (%d):\n", len(results.Failures))
	for _, f := range results.Failures {
		_, _ = consoleTestFailedColor.Fprintf(out, "  * %s\n", f.TestID)
	}
}

package unit

import (
	"fmt"
	"os"
	"sync"

	"github.com/acarl005/stripansi"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

type excludedTest struct {
	id     TestID
	reason string
}

// JSONTestLogger writes a machine-readable report of the run when the run ends:
//
//	{"runId": "...", "ok": false,
//	 "tests": [{"id": "suite/test", "suite": "suite", "name": "test", "status": "failed",
//	            "durationMs": 3, "log": ["boom"]}],
//	 "excluded": [{"id": "suite/other", "reason": "excluded by filter parameters"}]}
type JSONTestLogger struct {
	filePath string
	excluded []excludedTest
	lock     sync.Mutex
}

// NewJSONTestLogger creates a JSONTestLogger that writes to filePath.
func NewJSONTestLogger(filePath string) *JSONTestLogger {
	return &JSONTestLogger{filePath: filePath}
}

func (j *JSONTestLogger) TestStarted(TestID) {}

func (j *JSONTestLogger) TestFinished(Result) {}

func (j *JSONTestLogger) TestSkipped(id TestID, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.excluded = append(j.excluded, excludedTest{id: id, reason: reason})
}

func (j *JSONTestLogger) EndLog(results Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	data, err := encodeJSONReport(results, j.excluded)
	if err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	if err := os.WriteFile(j.filePath, data, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("writing JSON report: %w", err)
	}
	return nil
}

func encodeJSONReport(results Results, excluded []excludedTest) ([]byte, error) {
	w := jwriter.NewWriter()
	obj := w.Object()
	obj.Name("runId").String(results.RunID)
	obj.Name("ok").Bool(results.OK())

	tests := obj.Name("tests").Array()
	for _, r := range results.Tests {
		testObj := tests.Object()
		testObj.Name("id").String(r.TestID.String())
		if suite := r.SuiteName(); suite != "" {
			testObj.Name("suite").String(suite)
		}
		testObj.Name("name").String(r.TestName())
		testObj.Name("status").String(r.Status())
		if r.SkipReason != "" {
			testObj.Name("skipReason").String(r.SkipReason)
		}
		testObj.Name("durationMs").Int(int(r.Duration.Milliseconds()))
		lines := testObj.Name("log").Array()
		for _, line := range r.Log {
			lines.String(stripansi.Strip(line))
		}
		lines.End()
		testObj.End()
	}
	tests.End()

	skipped := obj.Name("excluded").Array()
	for _, e := range excluded {
		skippedObj := skipped.Object()
		skippedObj.Name("id").String(e.id.String())
		skippedObj.Name("reason").String(e.reason)
		skippedObj.End()
	}
	skipped.End()

	obj.End()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return append(w.Bytes(), '\n'), nil
}

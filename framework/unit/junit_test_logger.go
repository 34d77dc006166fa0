package unit

import (
	"encoding/xml"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/acarl005/stripansi"
)

const standaloneSuiteName = "standalone tests"

// JUnitTestLogger writes a JUnit XML report when the run ends. Each suite becomes a JUnit test
// suite; standalone tests are grouped into one more suite.
type JUnitTestLogger struct {
	filePath string
	filters  RegexFilters
	tests    []jUnitTestStatus // in the order the tests were run; IDs may repeat
	lock     sync.Mutex
}

type jUnitTestStatus struct {
	id      TestID
	result  Result
	running bool
	skipped bool
	reason  string
}

// Struct definitions for the JUnit XML schema - see https://github.com/jstemmer/go-junit-report

type jUnitXMLDocument struct {
	XMLName xml.Name            `xml:"testsuites"`
	Suites  []jUnitXMLTestSuite `xml:"testsuite"`
}

type jUnitXMLTestSuite struct {
	XMLName    xml.Name           `xml:"testsuite"`
	Tests      int                `xml:"tests,attr"`
	Failures   int                `xml:"failures,attr"`
	Skipped    int                `xml:"skipped,attr"`
	Time       string             `xml:"time,attr"`
	Name       string             `xml:"name,attr"`
	Properties []jUnitXMLProperty `xml:"properties>property,omitempty"`
	TestCases  []jUnitXMLTestCase `xml:"testcase"`
}

type jUnitXMLTestCase struct {
	XMLName     xml.Name             `xml:"testcase"`
	Classname   string               `xml:"classname,attr"`
	Name        string               `xml:"name,attr"`
	Time        string               `xml:"time,attr"`
	SkipMessage *jUnitXMLSkipMessage `xml:"skipped,omitempty"`
	Failure     *jUnitXMLFailure     `xml:"failure,omitempty"`
	SystemOut   string               `xml:"system-out,omitempty"`
}

type jUnitXMLSkipMessage struct {
	Message string `xml:"message,attr"`
}

type jUnitXMLProperty struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type jUnitXMLFailure struct {
	Message  string `xml:"message,attr"`
	Type     string `xml:"type,attr"`
	Contents string `xml:",chardata"`
}

// NewJUnitTestLogger creates a JUnitTestLogger that writes to filePath. The filters are only
// recorded as report properties.
func NewJUnitTestLogger(filePath string, filters RegexFilters) *JUnitTestLogger {
	return &JUnitTestLogger{
		filePath: filePath,
		filters:  filters,
	}
}

func (j *JUnitTestLogger) TestStarted(id TestID) {
	j.lock.Lock()
	defer j.lock.Unlock()
	j.tests = append(j.tests, jUnitTestStatus{id: id, running: true})
}

// TestFinished completes the most recently started entry for the test.
func (j *JUnitTestLogger) TestFinished(result Result) {
	j.lock.Lock()
	defer j.lock.Unlock()
	key := result.TestID.String()
	for i := len(j.tests) - 1; i >= 0; i-- {
		if j.tests[i].running && j.tests[i].id.String() == key {
			j.tests[i].result = result
			j.tests[i].running = false
			return
		}
	}
	j.tests = append(j.tests, jUnitTestStatus{id: result.TestID, result: result})
}

// TestSkipped records top-level tests excluded by the filter. Subtests are not JUnit test cases.
func (j *JUnitTestLogger) TestSkipped(id TestID, reason string) {
	j.lock.Lock()
	defer j.lock.Unlock()
	if reason != filterSkipReason {
		return
	}
	for _, status := range j.tests {
		if status.running && isWithin(id, status.id) {
			return
		}
	}
	j.tests = append(j.tests, jUnitTestStatus{id: id, skipped: true, reason: reason})
}

func (j *JUnitTestLogger) EndLog(results Results) error {
	j.lock.Lock()
	defer j.lock.Unlock()

	var doc jUnitXMLDocument

	properties := []jUnitXMLProperty{
		{Name: "tests.run.id", Value: results.RunID},
		{Name: "tests.filter.mustMatch", Value: j.filters.MustMatch.String()},
		{Name: "tests.filter.mustNotMatch", Value: j.filters.MustNotMatch.String()},
	}

	for _, suiteName := range j.suiteNames() {
		suite := jUnitXMLTestSuite{
			Name:       suiteName,
			Properties: properties,
		}
		suiteTotalDuration := time.Duration(0)
		for _, status := range j.tests {
			testID := status.id
			if jUnitSuiteName(testID) != suiteName {
				continue
			}
			suite.Tests++
			suiteTotalDuration += status.result.Duration

			testCase := jUnitXMLTestCase{
				Classname: suiteName,
				Name:      testID.String(),
				Time:      jUnitDurationString(status.result.Duration),
			}
			switch {
			case status.skipped:
				suite.Skipped++
				testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.reason}
			case status.result.Skipped:
				suite.Skipped++
				testCase.SkipMessage = &jUnitXMLSkipMessage{Message: status.result.SkipReason}
			case status.result.Failed:
				suite.Failures++
				testCase.Failure = &jUnitXMLFailure{
					Message:  fmt.Sprintf("%s failed", testID),
					Contents: jUnitLogText(status.result.Log),
				}
			default:
				testCase.SystemOut = jUnitLogText(status.result.Log)
			}
			suite.TestCases = append(suite.TestCases, testCase)
		}
		suite.Time = jUnitDurationString(suiteTotalDuration)
		doc.Suites = append(doc.Suites, suite)
	}

	bytes, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JUnit report: %w", err)
	}
	bytes = append([]byte(xml.Header), bytes...)
	bytes = append(bytes, '\n')

	if err := os.WriteFile(j.filePath, bytes, 0644); err != nil { //nolint:gosec
		return fmt.Errorf("writing JUnit report: %w", err)
	}
	return nil
}

func (j *JUnitTestLogger) suiteNames() []string {
	var ret []string
	seen := make(map[string]bool)
	for _, status := range j.tests {
		name := jUnitSuiteName(status.id)
		if !seen[name] {
			ret = append(ret, name)
			seen[name] = true
		}
	}
	return ret
}

// isWithin reports whether id names a subtest of the test named parent.
func isWithin(id, parent TestID) bool {
	if len(id) <= len(parent) {
		return false
	}
	for i := range parent {
		if id[i] != parent[i] {
			return false
		}
	}
	return true
}

func jUnitSuiteName(id TestID) string {
	if len(id) < 2 {
		return standaloneSuiteName
	}
	return id[0]
}

func jUnitLogText(lines []string) string {
	return stripansi.Strip(strings.Join(lines, "\n"))
}

func jUnitDurationString(d time.Duration) string {
	return fmt.Sprintf("%.3f", d.Seconds())
}

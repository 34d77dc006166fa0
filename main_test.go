package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhemodules/dheunit/framework/unit"
)

func init() {
	color.NoColor = true
}

func testRegistry() *unit.Registry {
	registry := unit.NewRegistry()
	registry.RegisterSuite("suite", unit.SuiteFunc(func(add unit.AddTestFunc) {
		add("passes", func(*unit.T) {})
		add("fails", func(t *unit.T) {
			t.Run("child", func(t *unit.T) { t.Error("boom") })
		})
	}))
	registry.RegisterTest("quiet", func(*unit.T) {})
	return registry
}

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestRunWritesLazyLogByDefault(t *testing.T) {
	var out bytes.Buffer
	results, err := run(commandParams{}, testRegistry(), &out)
	require.NoError(t, err)

	assert.False(t, results.OK())
	assert.Contains(t, out.String(), "suite/fails\n    child\n        boom\n")
	assert.NotContains(t, out.String(), "suite/passes\n    ")
	assert.Contains(t, out.String(), "FAILED: suite/fails\n")
}

func TestRunVerboseShowsEveryTest(t *testing.T) {
	var out bytes.Buffer
	_, err := run(commandParams{verbose: true}, testRegistry(), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "suite/passes\n")
	assert.Contains(t, out.String(), "quiet\n")
}

func TestRunQuietLogShowsFailureLogsAfterResult(t *testing.T) {
	var out bytes.Buffer
	_, err := run(commandParams{quietLog: true}, testRegistry(), &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "FAILED: suite/fails\n    child\n        boom\n")
}

func TestRunWithSuppressionFile(t *testing.T) {
	params := commandParams{skipFile: writeFile(t, "skip.txt", "suite/fails\n\n")}
	var out bytes.Buffer
	results, err := run(params, testRegistry(), &out)
	require.NoError(t, err)

	assert.True(t, results.OK())
	assert.Len(t, results.Tests, 2)
	assert.Contains(t, out.String(), "skip any matching")
}

func TestRunWithMissingSuppressionFile(t *testing.T) {
	params := commandParams{skipFile: filepath.Join(t.TempDir(), "nope.txt")}
	_, err := run(params, testRegistry(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "cannot open provided suppression file")
}

func TestRunWritesReports(t *testing.T) {
	dir := t.TempDir()
	params := commandParams{
		debug:          true,
		jUnitFile:      filepath.Join(dir, "junit.xml"),
		jsonFile:       filepath.Join(dir, "report.json"),
		metricsFile:    filepath.Join(dir, "metrics.prom"),
		recordFailures: filepath.Join(dir, "failures.txt"),
	}
	_, err := run(params, testRegistry(), &bytes.Buffer{})
	require.NoError(t, err)

	for _, path := range []string{params.jUnitFile, params.jsonFile, params.metricsFile} {
		assert.FileExists(t, path)
	}
	failures, err := os.ReadFile(params.recordFailures)
	require.NoError(t, err)
	assert.Equal(t, "suite/fails\n", string(failures))
}

func TestRecordedFailuresCanBeSkipped(t *testing.T) {
	dir := t.TempDir()
	record := filepath.Join(dir, "failures.txt")
	_, err := run(commandParams{recordFailures: record}, testRegistry(), &bytes.Buffer{})
	require.NoError(t, err)

	results, err := run(commandParams{skipFile: record}, testRegistry(), &bytes.Buffer{})
	require.NoError(t, err)
	assert.True(t, results.OK())
}

func TestRunVerboseQuietLogShowsEveryLogAfterResult(t *testing.T) {
	registry := unit.NewRegistry()
	registry.RegisterTest("talks", func(t *unit.T) { t.Log("hello") })

	var out bytes.Buffer
	_, err := run(commandParams{verbose: true, quietLog: true}, registry, &out)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "PASSED: talks\n    hello\n")
	assert.NotContains(t, out.String(), "talks\n    hello\nPASSED")
}

func TestRunQuietLogHidesPassedLogs(t *testing.T) {
	registry := unit.NewRegistry()
	registry.RegisterTest("talks", func(t *unit.T) { t.Log("hello") })

	var out bytes.Buffer
	_, err := run(commandParams{quietLog: true}, registry, &out)
	require.NoError(t, err)

	assert.NotContains(t, out.String(), "hello")
}

func TestFailedRunReportsEachFailure(t *testing.T) {
	results, err := run(commandParams{quietLog: true}, testRegistry(), &bytes.Buffer{})
	require.NoError(t, err)

	failed := results.Err()
	assert.ErrorIs(t, failed, unit.ErrTestFailed)
	var failure unit.TestFailure
	require.True(t, errors.As(failed, &failure))
	assert.Equal(t, unit.TestID{"suite", "fails"}, failure.ID)
}

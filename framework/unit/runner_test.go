package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTestLogger struct {
	started  []string
	finished []string
	skipped  []string
	ended    bool
}

func (r *recordingTestLogger) TestStarted(id TestID) {
	r.started = append(r.started, id.String())
}

func (r *recordingTestLogger) TestFinished(result Result) {
	r.finished = append(r.finished, result.TestID.String()+": "+result.Status())
}

func (r *recordingTestLogger) TestSkipped(id TestID, reason string) {
	r.skipped = append(r.skipped, id.String()+": "+reason)
}

func (r *recordingTestLogger) EndLog(Results) error {
	r.ended = true
	return nil
}

func TestRunSuiteWithPassingAndFailingTest(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterSuite("suite", SuiteFunc(func(add AddTestFunc) {
		add("passes", func(*T) {})
		add("fails", func(ut *T) { ut.Error("boom") })
	}))

	results := Run(registry, RunConfiguration{})

	assert.True(t, results.Failed())
	require.Len(t, results.Tests, 2)
	assert.Equal(t, "suite", results.Tests[0].SuiteName())
	assert.Equal(t, "passes", results.Tests[0].TestName())
	assert.False(t, results.Tests[0].Failed)
	assert.Len(t, results.Tests[0].Log, 0)

	require.Len(t, results.Failures, 1)
	assert.Equal(t, TestID{"suite", "fails"}, results.Failures[0].TestID)
	assert.Equal(t, []string{"boom"}, results.Failures[0].Log)
	assert.NotEmpty(t, results.RunID)
}

func TestRunParentContinuesAfterChildFailsNow(t *testing.T) {
	registry := NewRegistry()
	afterChild := false
	registry.RegisterTest("parent", func(ut *T) {
		ut.Run("child", func(ut *T) { ut.FailNow() })
		afterChild = true
	})

	results := Run(registry, RunConfiguration{})

	require.Len(t, results.Tests, 1)
	assert.True(t, results.Tests[0].Failed)
	assert.True(t, afterChild)
}

func TestRunNestedContextHookOrder(t *testing.T) {
	registry := NewRegistry()
	l1 := registry.NewContext("L1", RootContext)
	l2 := registry.NewContext("L2", l1)
	l3 := registry.NewContext("L3", l2)
	var befores, afters []string
	for _, c := range []struct {
		id   ContextID
		name string
	}{{l1, "L1"}, {l2, "L2"}, {l3, "L3"}} {
		name := c.name
		registry.Before(c.id, func() { befores = append(befores, name) })
		registry.After(c.id, func() { afters = append(afters, name) })
	}
	registry.RegisterTestIn(l3, "test", func(*T) {})

	results := Run(registry, RunConfiguration{})

	assert.True(t, results.OK())
	assert.Equal(t, []string{"L1", "L2", "L3"}, befores)
	assert.Equal(t, []string{"L3", "L2", "L1"}, afters)
	assert.Equal(t, "root::L1::L2::L3", registry.Contexts().Description(l3))
}

func TestRunOrderIsSuitesThenStandaloneTests(t *testing.T) {
	registry := NewRegistry()
	var ran []string
	record := func(ut *T) { ran = append(ran, ut.ID().String()) }
	registry.RegisterTest("standalone", record)
	registry.RegisterSuite("s1", SuiteFunc(func(add AddTestFunc) {
		add("a", record)
		add("b", record)
	}))
	registry.RegisterSuite("s2", SuiteFunc(func(add AddTestFunc) {
		add("c", record)
	}))

	_ = Run(registry, RunConfiguration{})

	assert.Equal(t, []string{"s1/a", "s1/b", "s2/c", "standalone"}, ran)
}

func TestRunDuplicateNamesBothRun(t *testing.T) {
	registry := NewRegistry()
	count := 0
	registry.RegisterTest("same", func(*T) { count++ })
	registry.RegisterTest("same", func(*T) { count++ })

	results := Run(registry, RunConfiguration{})

	assert.Equal(t, 2, count)
	assert.Len(t, results.Tests, 2)
}

func TestRunSuiteHooksApplyToSuiteTestsOnly(t *testing.T) {
	registry := NewRegistry()
	var calls []string
	suiteCtx := registry.RegisterSuite("suite", SuiteFunc(func(add AddTestFunc) {
		add("inside", func(*T) { calls = append(calls, "inside") })
	}))
	registry.Before(suiteCtx, func() { calls = append(calls, "setup") })
	registry.After(suiteCtx, func() { calls = append(calls, "teardown") })
	registry.RegisterTest("outside", func(*T) { calls = append(calls, "outside") })

	_ = Run(registry, RunConfiguration{})

	assert.Equal(t, []string{"setup", "inside", "teardown", "outside"}, calls)
}

func TestRunAttemptsEveryTestAfterFailures(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterTest("panics", func(*T) { panic("bad") })
	registry.RegisterTest("fails", func(ut *T) { ut.FailNow() })
	registry.RegisterTest("passes", func(*T) {})

	results := Run(registry, RunConfiguration{})

	require.Len(t, results.Tests, 3)
	assert.Len(t, results.Failures, 2)
	assert.False(t, results.Tests[2].Failed)
}

func TestRunReportsToTestLogger(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterTest("passes", func(*T) {})
	registry.RegisterTest("skips", func(ut *T) { ut.SkipWithReason("later") })
	registry.RegisterTest("excluded", func(*T) { t.Error("should not run") })

	logger := &recordingTestLogger{}
	filter := FilterFunc(func(id TestID) bool { return id[0] != "excluded" })
	_ = Run(registry, RunConfiguration{Filter: filter, TestLogger: logger})

	assert.Equal(t, []string{"passes", "skips"}, logger.started)
	assert.Equal(t, []string{"passes: passed", "skips: skipped"}, logger.finished)
	assert.Equal(t, []string{"excluded: " + filterSkipReason}, logger.skipped)
}

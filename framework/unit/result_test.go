package unit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestIDString(t *testing.T) {
	assert.Equal(t, "", TestID{}.String())
	assert.Equal(t, "parent test", TestID{"parent test"}.String())
	assert.Equal(t, "parent test/subtest", TestID{"parent test", "subtest"}.String())
	assert.Equal(t, "parent test/subtest/sub-sub", TestID{"parent test", "subtest", "sub-sub"}.String())
}

func TestTestIDPlus(t *testing.T) {
	assert.Equal(t, TestID{"name 1"}, TestID{}.Plus("name 1"))
	assert.Equal(t, TestID{"name 1", "name 2"}, TestID{}.Plus("name 1").Plus("name 2"))

	// Calling Plus does not modify the original value
	id1 := TestID{"name 1"}
	id2a := id1.Plus("name 2a")
	id2b := id1.Plus("name 2b")
	assert.Equal(t, TestID{"name 1"}, id1)
	assert.Equal(t, TestID{"name 1", "name 2a"}, id2a)
	assert.Equal(t, TestID{"name 1", "name 2b"}, id2b)
}

func TestResultNames(t *testing.T) {
	suiteTest := Result{TestID: TestID{"suite", "test"}}
	assert.Equal(t, "suite", suiteTest.SuiteName())
	assert.Equal(t, "test", suiteTest.TestName())

	standalone := Result{TestID: TestID{"test"}}
	assert.Equal(t, "", standalone.SuiteName())
	assert.Equal(t, "test", standalone.TestName())
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, "passed", Result{}.Status())
	assert.Equal(t, "failed", Result{Failed: true}.Status())
	assert.Equal(t, "skipped", Result{Skipped: true}.Status())
}

func TestResultsOK(t *testing.T) {
	assert.True(t, Results{Tests: []Result{{}}}.OK())
	failed := Results{Tests: []Result{{Failed: true}}, Failures: []Result{{Failed: true}}}
	assert.False(t, failed.OK())
	assert.True(t, failed.Failed())
}

func TestTestFailure(t *testing.T) {
	cause := errors.New("boom")
	f := TestFailure{ID: TestID{"a", "b"}, Err: cause}
	assert.Equal(t, "[a/b]: boom", f.Error())
	assert.ErrorIs(t, f, cause)
}

func TestResultsErr(t *testing.T) {
	assert.NoError(t, Results{Tests: []Result{{TestID: TestID{"a"}}}}.Err())

	results := Results{Failures: []Result{
		{TestID: TestID{"suite", "a"}, Failed: true},
		{TestID: TestID{"b"}, Failed: true},
	}}
	err := results.Err()
	assert.ErrorIs(t, err, ErrTestFailed)
	assert.EqualError(t, err, "[suite/a]: test failed\n[b]: test failed")

	var failure TestFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, TestID{"suite", "a"}, failure.ID)
}

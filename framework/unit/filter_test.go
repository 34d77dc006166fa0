package unit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegexFilters(t *testing.T) {
	for _, c := range []struct {
		name  string
		run   []string
		skip  []string
		id    TestID
		match bool
	}{
		{name: "no filters, root", id: nil, match: true},
		{name: "no filters, suite test", id: TestID{"format", "Joined()"}, match: true},

		{name: "run suite, root", run: []string{"format"}, id: nil, match: true},
		{name: "run suite, same suite", run: []string{"format"}, id: TestID{"format"}, match: true},
		{name: "run suite, other suite", run: []string{"format"}, id: TestID{"T"}, match: false},
		{name: "run is unanchored", run: []string{"Log"}, id: TestID{"BufferedLog"}, match: true},
		{name: "run suite, its tests", run: []string{"format"}, id: TestID{"format", "Joined()"}, match: true},

		{name: "run test, its suite", run: []string{"T/Run"}, id: TestID{"T"}, match: true},
		{name: "run test, other suite", run: []string{"T/Run"}, id: TestID{"format"}, match: false},
		{name: "run test, the test", run: []string{"T/Run"}, id: TestID{"T", "Run()"}, match: true},
		{name: "run test, other test", run: []string{"T/Run"}, id: TestID{"T", "Fail()"}, match: false},
		{name: "run test, its subtests", run: []string{"T/Run"}, id: TestID{"T", "Run()", "x"}, match: true},

		{name: "either run pattern", run: []string{"format", "T"}, id: TestID{"T", "Fail()"}, match: true},
		{name: "neither run pattern", run: []string{"format", "T"}, id: TestID{"expect"}, match: false},

		{name: "skip suite, root", skip: []string{"format"}, id: nil, match: true},
		{name: "skip suite, the suite", skip: []string{"format"}, id: TestID{"format"}, match: false},
		{name: "skip suite, its tests", skip: []string{"format"}, id: TestID{"format", "Joined()"}, match: false},
		{name: "skip suite, other suite", skip: []string{"format"}, id: TestID{"T"}, match: true},

		{name: "skip test, its suite", skip: []string{"T/Run"}, id: TestID{"T"}, match: true},
		{name: "skip test, the test", skip: []string{"T/Run"}, id: TestID{"T", "Run()"}, match: false},
		{name: "skip test, its subtests", skip: []string{"T/Run"}, id: TestID{"T", "Run()", "x"}, match: false},
		{name: "skip test, sibling", skip: []string{"T/Run"}, id: TestID{"T", "Fail()"}, match: true},

		{name: "either skip pattern", skip: []string{"format", "T"}, id: TestID{"T"}, match: false},
		{name: "skip matches first component only", skip: []string{"format", "T"}, id: TestID{"expect", "T"}, match: true},

		{name: "skip wins over run", run: []string{"format"}, skip: []string{"format/Joined"}, id: TestID{"format", "Joined()"}, match: false},
		{name: "run with skip elsewhere", run: []string{"format"}, skip: []string{"format/Joined"}, id: TestID{"format", "Formatted()"}, match: true},
	} {
		t.Run(c.name, func(t *testing.T) {
			var r RegexFilters
			for _, s := range c.run {
				require.NoError(t, r.MustMatch.Set(s))
			}
			for _, s := range c.skip {
				require.NoError(t, r.MustNotMatch.Set(s))
			}
			assert.Equal(t, c.match, r.Match(c.id), "run=%s skip=%s id=%s", r.MustMatch, r.MustNotMatch, c.id)
		})
	}
}

func TestParseTestIDPatternRejectsBadRegex(t *testing.T) {
	_, err := ParseTestIDPattern("ok/(unclosed")
	assert.Error(t, err)

	var l TestIDPatternList
	assert.Error(t, l.Set("[z-a]"))
	assert.False(t, l.IsDefined())
}

func TestFilterFunc(t *testing.T) {
	f := FilterFunc(func(id TestID) bool { return len(id) < 2 })
	assert.True(t, f.Match(TestID{"a"}))
	assert.False(t, f.Match(TestID{"a", "b"}))
}

func TestPrintFilterDescription(t *testing.T) {
	var out bytes.Buffer
	PrintFilterDescription(&out, RegexFilters{})
	assert.Empty(t, out.String())

	var r RegexFilters
	require.NoError(t, r.MustMatch.Set("suite/a"))
	require.NoError(t, r.MustNotMatch.Set("slow"))
	PrintFilterDescription(&out, r)
	assert.Contains(t, out.String(), `skip any not matching "suite/a"`)
	assert.Contains(t, out.String(), `skip any matching "slow"`)
}

package expect

import (
	"fmt"

	m "github.com/launchdarkly/go-test-helpers/v2/matchers"

	"github.com/dhemodules/dheunit/framework/unit"
)

// That applies the assertion to the actual value. A failed assertion fails t, and t continues.
func That[A any](t Tester, actual A, assertion func(Tester, A)) {
	assertion(t, actual)
}

// ThatF is like That, but stops t if it has failed once the assertion is done.
func ThatF[A any](t Tester, actual A, assertion func(Tester, A)) {
	assertion(t, actual)
	if t.Failed() {
		t.FailNow()
	}
}

// ThatIn applies the assertion in a subtest named context, so that any failure is logged in its
// own section.
func ThatIn[A any](t *unit.T, context string, actual A, assertion func(Tester, A)) {
	t.Run(context, func(t *unit.T) {
		assertion(t, actual)
	})
}

// ThatFIn is like ThatIn, but stops t if the assertion failed.
func ThatFIn[A any](t *unit.T, context string, actual A, assertion func(Tester, A)) {
	if !t.Run(context, func(t *unit.T) { ThatF[A](t, actual, assertion) }) {
		t.FailNow()
	}
}

// Matches returns an assertion that checks the actual value with a go-test-helpers matcher.
func Matches[A any](matcher m.Matcher) func(Tester, A) {
	return func(t Tester, actual A) {
		m.In(matcherT{t}).Assert(actual, matcher)
	}
}

// matcherT presents a Tester to the matchers package, which formats its messages with
// Printf-style verbs.
type matcherT struct {
	t Tester
}

func (mt matcherT) Errorf(format string, args ...interface{}) {
	mt.t.Errorf("{}", fmt.Sprintf(format, args...))
}

func (mt matcherT) FailNow() { mt.t.FailNow() }

func (mt matcherT) Helper() {}

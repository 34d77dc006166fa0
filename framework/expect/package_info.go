// Package expect contains assertions for use with unit.T.
//
// An assertion is a func(Tester, A) that checks an actual value and reports a failure through the
// Tester. The Is* functions build assertions from expected values:
//
//	expect.That(t, got, expect.IsEqualTo(4))
//	expect.ThatF(t, len(items), expect.IsBetween(1, 3))
//	expect.That(t, ok, expect.IsTrue)
//
// Matches adapts a matcher from github.com/launchdarkly/go-test-helpers/v2/matchers.
package expect

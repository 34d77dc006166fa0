package selftests

import (
	"errors"
	"strings"

	"github.com/dhemodules/dheunit/framework/expect"
	"github.com/dhemodules/dheunit/framework/unit"
)

func runAlone(body unit.TestFunc) unit.Result {
	return unit.RunTest(unit.RunConfiguration{}, "inner", body)
}

func testerSuite(add unit.AddTestFunc) {
	add("Fail()", func(t *unit.T) {
		t.Run("marks every ancestor failed", func(t *unit.T) {
			var outer, sibling *unit.T
			result := runAlone(func(ut *unit.T) {
				outer = ut
				ut.Run("sibling", func(ut *unit.T) { sibling = ut })
				ut.Run("child", func(ut *unit.T) {
					ut.Run("grandchild", func(ut *unit.T) { ut.Fail() })
				})
			})
			expect.That(t, result.Failed, expect.IsTrue)
			expect.That(t, outer.Failed(), expect.IsTrue)
			expect.That(t, sibling.Failed(), expect.IsFalse)
		})
		t.Run("continues the test", func(t *unit.T) {
			reached := false
			_ = runAlone(func(ut *unit.T) {
				ut.Fail()
				reached = true
			})
			expect.That(t, reached, expect.IsTrue)
		})
	})

	add("FailNow()", func(t *unit.T) {
		t.Run("stops only the current subtest", func(t *unit.T) {
			inChild, afterChild := false, false
			result := runAlone(func(ut *unit.T) {
				ut.Run("child", func(ut *unit.T) {
					ut.FailNow()
					inChild = true
				})
				afterChild = true
			})
			expect.That(t, result.Failed, expect.IsTrue)
			expect.That(t, inChild, expect.IsFalse)
			expect.That(t, afterChild, expect.IsTrue)
		})
	})

	add("Run()", func(t *unit.T) {
		t.Run("reports whether the subtest passed", func(t *unit.T) {
			var passed, failed bool
			_ = runAlone(func(ut *unit.T) {
				passed = ut.Run("passes", func(*unit.T) {})
				failed = ut.Run("fails", func(ut *unit.T) { ut.Error("no") })
			})
			expect.That(t, passed, expect.IsTrue)
			expect.That(t, failed, expect.IsFalse)
		})
		t.Run("turns panics into failures", func(t *unit.T) {
			for _, c := range []struct {
				name  string
				value interface{}
				want  string
			}{
				{"error", errors.New("bad"), "    Unexpected exception: bad"},
				{"string", "bad", "    Unexpected string exception: bad"},
				{"other", 3.5, "    Unrecognized exception"},
			} {
				c := c
				t.Run(c.name, func(t *unit.T) {
					result := runAlone(func(ut *unit.T) {
						ut.Run("child", func(*unit.T) { panic(c.value) })
					})
					expect.That(t, result.Failed, expect.IsTrue)
					expect.That(t, strings.Join(result.Log, "|"), expect.IsEqualTo("child|"+c.want))
				})
			}
		})
	})

	add("Log()", func(t *unit.T) {
		t.Run("silent subtests write nothing", func(t *unit.T) {
			result := runAlone(func(ut *unit.T) {
				ut.Run("a", func(ut *unit.T) {
					ut.Run("b", func(*unit.T) {})
				})
			})
			expect.That(t, len(result.Log), expect.IsEqualTo(0))
		})
		t.Run("first line announces the enclosing subtests", func(t *unit.T) {
			result := runAlone(func(ut *unit.T) {
				ut.Run("a", func(ut *unit.T) {
					ut.Run("b", func(ut *unit.T) { ut.Log("x", 1) })
				})
			})
			expect.That(t, strings.Join(result.Log, "|"), expect.IsEqualTo("a|    b|        x 1"))
		})
		t.Run("Logf() with mismatched arguments fails the test", func(t *unit.T) {
			result := runAlone(func(ut *unit.T) { ut.Logf("{}{}", 1) })
			expect.That(t, result.Failed, expect.IsTrue)
		})
	})

	add("Defer()", func(t *unit.T) {
		var calls []string
		_ = runAlone(func(ut *unit.T) {
			ut.Defer(func() { calls = append(calls, "1") })
			ut.Defer(func() { calls = append(calls, "2") })
			ut.FailNow()
		})
		expect.That(t, strings.Join(calls, ","), expect.IsEqualTo("2,1"))
	})
}

func expectSuite(add unit.AddTestFunc) {
	add("comparisons", func(t *unit.T) {
		expect.ThatIn(t, "IsEqualTo", 3, expect.IsEqualTo(3))
		expect.ThatIn(t, "IsNotEqualTo", 3, expect.IsNotEqualTo(4))
		expect.ThatIn(t, "IsNear", 0.995, expect.IsNear(1.0, 0.01))
		expect.ThatIn(t, "IsGreaterThan", 2, expect.IsGreaterThan(1))
		expect.ThatIn(t, "IsNoGreaterThan", 1, expect.IsNoGreaterThan(1))
		expect.ThatIn(t, "IsLessThan", 1, expect.IsLessThan(2))
		expect.ThatIn(t, "IsNoLessThan", 2, expect.IsNoLessThan(2))
		expect.ThatIn(t, "IsBetween", "m", expect.IsBetween("a", "z"))
	})

	add("failure message", func(t *unit.T) {
		result := runAlone(func(ut *unit.T) { expect.That(ut, 5, expect.IsBetween(1, 3)) })
		expect.That(t, strings.Join(result.Log, "|"), expect.IsEqualTo("was 5, want between 1 and 3"))
	})
}

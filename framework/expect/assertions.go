package expect

import (
	"golang.org/x/exp/constraints"
)

// Tester is the part of unit.T that assertions use. Errorf takes a "{}" template.
type Tester interface {
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Failed() bool
	FailNow()
}

// Number is any type that IsNear can compute a tolerance range for.
type Number interface {
	constraints.Integer | constraints.Float
}

func IsEqualTo[A comparable](want A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual != want {
			t.Errorf("was {}, want a value equal to {}", actual, want)
		}
	}
}

func IsNotEqualTo[A comparable](want A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual == want {
			t.Errorf("was {}, want a value not equal to {}", actual, want)
		}
	}
}

// IsNear checks that the actual value is in the closed range [want-tolerance, want+tolerance].
func IsNear[A Number](want, tolerance A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual < want-tolerance || actual > want+tolerance {
			t.Errorf("was {}, want within {} of {}", actual, tolerance, want)
		}
	}
}

func IsGreaterThan[A constraints.Ordered](limit A) func(Tester, A) {
	return func(t Tester, actual A) {
		if !(actual > limit) {
			t.Errorf("was {}, want greater than {}", actual, limit)
		}
	}
}

func IsNoGreaterThan[A constraints.Ordered](limit A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual > limit {
			t.Errorf("was {}, want no greater than {}", actual, limit)
		}
	}
}

func IsLessThan[A constraints.Ordered](limit A) func(Tester, A) {
	return func(t Tester, actual A) {
		if !(actual < limit) {
			t.Errorf("was {}, want less than {}", actual, limit)
		}
	}
}

func IsNoLessThan[A constraints.Ordered](limit A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual < limit {
			t.Errorf("was {}, want no less than {}", actual, limit)
		}
	}
}

// IsBetween checks that the actual value is in the closed range [lo, hi].
func IsBetween[A constraints.Ordered](lo, hi A) func(Tester, A) {
	return func(t Tester, actual A) {
		if actual < lo || actual > hi {
			t.Errorf("was {}, want between {} and {}", actual, lo, hi)
		}
	}
}

func IsTrue(t Tester, actual bool) {
	if !actual {
		t.Error("was false, want true")
	}
}

func IsFalse(t Tester, actual bool) {
	if actual {
		t.Error("was true, want false")
	}
}

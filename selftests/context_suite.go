package selftests

import (
	"strings"

	"github.com/dhemodules/dheunit/framework/expect"
	"github.com/dhemodules/dheunit/framework/unit"
)

type hookRecorder struct {
	calls []string
}

func (h *hookRecorder) hook(name string) func() {
	return func() { h.calls = append(h.calls, name) }
}

func (h *hookRecorder) String() string {
	return strings.Join(h.calls, ",")
}

func registerContextSuite(registry *unit.Registry) {
	live := &hookRecorder{}
	suiteCtx := registry.RegisterSuite("ContextTree", unit.SuiteFunc(func(add unit.AddTestFunc) {
		add("runs the suite's setup hooks before the test", func(t *unit.T) {
			expect.That(t, live.String(), expect.IsEqualTo("setup"))
		})
		contextTreeTests(add)
	}))
	registry.Before(suiteCtx, func() {
		live.calls = nil
		live.hook("setup")()
	})
	registry.After(suiteCtx, live.hook("teardown"))

	nested := registry.NewContext("nested", suiteCtx)
	registry.Before(nested, live.hook("nested setup"))
	registry.RegisterTestIn(nested, "ContextTree nested context", func(t *unit.T) {
		expect.That(t, live.String(), expect.IsEqualTo("setup,nested setup"))
		expect.That(t, registry.Contexts().Description(nested), expect.IsEqualTo("root::ContextTree::nested"))
	})
}

func contextTreeTests(add unit.AddTestFunc) {
	add("Enter()", func(t *unit.T) {
		rec := &hookRecorder{}
		tree := unit.NewContextTree("L1")
		l2 := tree.NewContext("L2", unit.RootContext)
		l3 := tree.NewContext("L3", l2)
		for id, name := range map[unit.ContextID]string{unit.RootContext: "L1", l2: "L2", l3: "L3"} {
			tree.AddBefore(id, rec.hook(name))
		}
		tree.AddBefore(l3, rec.hook("L3 again"))

		tree.Enter(l3)

		expect.That(t, rec.String(), expect.IsEqualTo("L1,L2,L3,L3 again"))
	})

	add("Leave()", func(t *unit.T) {
		rec := &hookRecorder{}
		tree := unit.NewContextTree("L1")
		l2 := tree.NewContext("L2", unit.RootContext)
		l3 := tree.NewContext("L3", l2)
		for id, name := range map[unit.ContextID]string{unit.RootContext: "L1", l2: "L2", l3: "L3"} {
			tree.AddAfter(id, rec.hook(name))
		}
		tree.AddAfter(l3, rec.hook("L3 again"))

		tree.Leave(l3)

		expect.That(t, rec.String(), expect.IsEqualTo("L3 again,L3,L2,L1"))
	})

	add("Description()", func(t *unit.T) {
		tree := unit.NewContextTree("a")
		b := tree.NewContext("b", unit.RootContext)
		expect.That(t, tree.Description(tree.NewContext("c", b)), expect.IsEqualTo("a::b::c"))
	})

	add("teardown after failure", func(t *unit.T) {
		rec := &hookRecorder{}
		registry := unit.NewRegistry()
		ctx := registry.NewContext("ctx", unit.RootContext)
		registry.Before(ctx, rec.hook("before"))
		registry.After(ctx, rec.hook("after"))
		registry.RegisterTestIn(ctx, "fails now", func(t *unit.T) { t.FailNow() })
		registry.RegisterTestIn(ctx, "panics", func(t *unit.T) { panic("oops") })

		results := unit.Run(registry, unit.RunConfiguration{})

		expect.That(t, len(results.Failures), expect.IsEqualTo(2))
		expect.That(t, rec.String(), expect.IsEqualTo("before,after,before,after"))
	})
}

package unit

const rootContextName = "root"

// TestFunc is the body of a test or subtest.
type TestFunc func(t *T)

// AddTestFunc is called by a Suite once for each of its tests.
type AddTestFunc func(name string, body TestFunc)

// Suite is a named group of tests. The runner calls ForEachTest to obtain the tests and
// prefixes each test's ID with the suite's name.
type Suite interface {
	ForEachTest(add AddTestFunc)
}

// SuiteFunc adapts a function to the Suite interface.
type SuiteFunc func(add AddTestFunc)

func (f SuiteFunc) ForEachTest(add AddTestFunc) { f(add) }

// Test is a registered test: a body to run within a context.
type Test struct {
	ID      TestID
	Body    TestFunc
	Context ContextID

	contexts *ContextTree
}

// Run enters the test's context, runs the body, and leaves the context again. The context is
// left even if a setup hook or the body fails or panics; the panic itself continues to the
// caller, which is normally the boundary of t.
func (tc Test) Run(t *T) {
	if tc.contexts == nil {
		tc.Body(t)
		return
	}
	tc.contexts.runIn(t, tc.Context, func() { tc.Body(t) })
}

type registeredSuite struct {
	name    string
	suite   Suite
	context ContextID
}

// Registry collects the tests and suites of a run. Registration only ever appends; a name that
// is registered twice produces two tests that both run.
type Registry struct {
	contexts *ContextTree
	suites   []registeredSuite
	tests    []Test
}

// NewRegistry creates an empty Registry whose context tree contains only the root context.
func NewRegistry() *Registry {
	return &Registry{contexts: NewContextTree(rootContextName)}
}

// Contexts returns the registry's context tree.
func (r *Registry) Contexts() *ContextTree {
	return r.contexts
}

// NewContext declares a context nested in parent.
func (r *Registry) NewContext(name string, parent ContextID) ContextID {
	return r.contexts.NewContext(name, parent)
}

// Before adds a setup hook to a context.
func (r *Registry) Before(ctx ContextID, hook func()) {
	r.contexts.AddBefore(ctx, hook)
}

// After adds a teardown hook to a context.
func (r *Registry) After(ctx ContextID, hook func()) {
	r.contexts.AddAfter(ctx, hook)
}

// RegisterTest adds a standalone test in the root context.
func (r *Registry) RegisterTest(name string, body TestFunc) {
	r.RegisterTestIn(RootContext, name, body)
}

// RegisterTestIn adds a standalone test that runs in the given context.
func (r *Registry) RegisterTestIn(ctx ContextID, name string, body TestFunc) {
	r.contexts.node(ctx)
	r.tests = append(r.tests, Test{ID: TestID{name}, Body: body, Context: ctx, contexts: r.contexts})
}

// RegisterSuite adds a suite. Its tests run in a new context named after the suite, nested in
// the root; the returned ID can be used to add hooks that apply to all of the suite's tests.
func (r *Registry) RegisterSuite(name string, suite Suite) ContextID {
	ctx := r.contexts.NewContext(name, RootContext)
	r.suites = append(r.suites, registeredSuite{name: name, suite: suite, context: ctx})
	return ctx
}

// Tests returns every test in execution order: the tests of each suite in the order the suites
// were registered, then the standalone tests in the order they were registered.
func (r *Registry) Tests() []Test {
	var ret []Test
	for _, s := range r.suites {
		s.suite.ForEachTest(func(name string, body TestFunc) {
			ret = append(ret, Test{ID: TestID{s.name, name}, Body: body, Context: s.context, contexts: r.contexts})
		})
	}
	return append(ret, r.tests...)
}

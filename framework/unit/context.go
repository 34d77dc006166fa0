package unit

import (
	"fmt"
	"slices"
	"strings"
)

// ContextID refers to a context within a ContextTree.
type ContextID int

// RootContext is the ID of the root context of every ContextTree.
const RootContext ContextID = 0

const contextSeparator = "::"

type contextNode struct {
	name      string
	parent    ContextID
	hasParent bool
	befores   []func()
	afters    []func()
}

// ContextTree holds the scopes that tests are declared in. Each context has a list of setup
// hooks ("befores") and teardown hooks ("afters"). Running a test in a context runs the hooks
// of that context and of all of its ancestors, outermost setup first and outermost teardown
// last.
//
// All contexts live in one slice and refer to their parent by index, so a tree can be copied
// or shared without any question of ownership. Contexts are never removed.
type ContextTree struct {
	nodes []contextNode
}

// NewContextTree creates a tree containing only a root context with the given name.
func NewContextTree(rootName string) *ContextTree {
	return &ContextTree{nodes: []contextNode{{name: rootName}}}
}

// NewContext adds a context as a child of parent and returns its ID.
func (c *ContextTree) NewContext(name string, parent ContextID) ContextID {
	c.node(parent)
	c.nodes = append(c.nodes, contextNode{name: name, parent: parent, hasParent: true})
	return ContextID(len(c.nodes) - 1)
}

// AddBefore appends a setup hook to the context. Ancestors are not affected.
func (c *ContextTree) AddBefore(id ContextID, hook func()) {
	n := c.node(id)
	n.befores = append(n.befores, hook)
}

// AddAfter appends a teardown hook to the context. Ancestors are not affected.
func (c *ContextTree) AddAfter(id ContextID, hook func()) {
	n := c.node(id)
	n.afters = append(n.afters, hook)
}

// Name returns the context's own name.
func (c *ContextTree) Name(id ContextID) string {
	return c.node(id).name
}

// Parent returns the parent of the context, or false for the root.
func (c *ContextTree) Parent(id ContextID) (ContextID, bool) {
	n := c.node(id)
	return n.parent, n.hasParent
}

// Description returns the names of the context and its ancestors, outermost first, joined
// by "::".
func (c *ContextTree) Description(id ContextID) string {
	path := c.path(id)
	names := make([]string, 0, len(path))
	for _, p := range path {
		names = append(names, c.Name(p))
	}
	return strings.Join(names, contextSeparator)
}

// Enter runs the setup hooks of the context's parent chain: the parent is entered first, then
// the context's own befores run in the order they were added.
//
// A panicking hook propagates out of Enter. Tests are run through Test.Run, which also makes
// sure the contexts that were entered are left again.
func (c *ContextTree) Enter(id ContextID) {
	n := c.node(id)
	if n.hasParent {
		c.Enter(n.parent)
	}
	for _, before := range n.befores {
		before()
	}
}

// Leave runs the context's afters in reverse order, then leaves the parent.
func (c *ContextTree) Leave(id ContextID) {
	n := c.node(id)
	for i := len(n.afters) - 1; i >= 0; i-- {
		n.afters[i]()
	}
	if n.hasParent {
		c.Leave(n.parent)
	}
}

// path returns the IDs from the root down to id.
func (c *ContextTree) path(id ContextID) []ContextID {
	ret := []ContextID{id}
	for parent, ok := c.Parent(id); ok; parent, ok = c.Parent(parent) {
		ret = append(ret, parent)
	}
	slices.Reverse(ret)
	return ret
}

func (c *ContextTree) node(id ContextID) *contextNode {
	if id < 0 || int(id) >= len(c.nodes) {
		panic(fmt.Sprintf("unknown context ID %d", id))
	}
	return &c.nodes[id]
}

// runIn runs body in context id on behalf of t. Contexts are entered from the root down. If a
// setup hook panics, body is skipped. Every context that was entered, including one whose
// setup panicked, is left again with all of its teardown hooks, each of which runs inside its
// own panic boundary.
func (c *ContextTree) runIn(t *T, id ContextID, body func()) {
	path := c.path(id)
	entered := 0
	defer func() {
		for i := entered - 1; i >= 0; i-- {
			afters := c.node(path[i]).afters
			for j := len(afters) - 1; j >= 0; j-- {
				t.protect(afters[j])
			}
		}
	}()
	for _, p := range path {
		entered++
		for _, before := range c.node(p).befores {
			before()
		}
	}
	body()
}

// Package framework contains the building blocks of the dheunit test engine. The base package
// contains shared types such as Logger; other components are in subpackages:
//
// 1. format renders the values passed to a test's log methods, including "{}" templates.
//
// 2. logbuf defines the Log abstraction, a stack of named sections written to a text stream
// with one level of indentation per open section. Its BufferedLog only announces a section
// once something is written inside it, so passing tests stay silent.
//
// 3. unit holds the engine: the context tree of setup/teardown hooks, the T type passed to
// test bodies, the test registry, the runner, and the reporters.
//
// 4. expect contains assertion predicates that report through a test's T.
package framework

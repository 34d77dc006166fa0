// Package unit contains the test engine: a registry of tests and suites, a tree of contexts
// holding setup and teardown hooks, and the T type passed to every test body. It is similar to
// Go's testing package, but is run as regular application code rather than Go tests, and it
// writes each test's output as a tree of named log sections.
package unit

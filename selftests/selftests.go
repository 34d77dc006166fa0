// Package selftests contains suites that test the framework by running it on itself. The dheunit
// command runs them; so does "go test".
package selftests

import (
	"github.com/dhemodules/dheunit/framework/unit"
)

// Register adds every self-test suite to the registry.
func Register(registry *unit.Registry) {
	registry.RegisterSuite("format", unit.SuiteFunc(formatSuite))
	registry.RegisterSuite("StreamLog", unit.SuiteFunc(streamLogSuite))
	registry.RegisterSuite("BufferedLog", unit.SuiteFunc(bufferedLogSuite))
	registerContextSuite(registry)
	registry.RegisterSuite("T", unit.SuiteFunc(testerSuite))
	registry.RegisterSuite("expect", unit.SuiteFunc(expectSuite))
}

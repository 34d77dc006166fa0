package main

import (
	"bufio"
	_ "embed" // this is required in order for go:embed to work
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/dhemodules/dheunit/framework"
	"github.com/dhemodules/dheunit/framework/logbuf"
	"github.com/dhemodules/dheunit/framework/unit"
	"github.com/dhemodules/dheunit/selftests"
)

//go:embed VERSION
var versionString string // comes from the VERSION file which we update for each release

func version() string {
	return strings.TrimSpace(versionString)
}

func main() {
	fmt.Printf("dheunit v%s\n", version())

	var params commandParams
	app := newApp(&params, func(p commandParams) error {
		registry := unit.NewRegistry()
		selftests.Register(registry)
		results, err := run(p, registry, os.Stdout)
		if err != nil {
			return err
		}
		return results.Err()
	})

	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, unit.ErrTestFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(params commandParams, registry *unit.Registry, out io.Writer) (unit.Results, error) {
	if params.skipFile != "" {
		if err := loadSuppressions(&params); err != nil {
			return unit.Results{}, err
		}
	}

	debugLogger := framework.NullLogger()
	if params.debug {
		z, err := zap.NewDevelopment()
		if err != nil {
			return unit.Results{}, fmt.Errorf("cannot create debug logger: %w", err)
		}
		defer func() { _ = z.Sync() }()
		debugLogger = framework.ZapLogger(z)
	}

	unit.PrintFilterDescription(out, params.filters)

	var output logbuf.Log
	switch {
	case params.quietLog:
	case params.verbose:
		output = logbuf.NewStreamLog(out)
	default:
		output = logbuf.NewBufferedLog(logbuf.NewStreamLog(out))
	}

	// Without a live log, the console shows each test's log after its result instead.
	testLoggers := []unit.TestLogger{
		&unit.ConsoleTestLogger{
			Out:          out,
			LogOnFailure: output == nil,
			LogOnSuccess: output == nil && params.verbose,
		},
	}
	if params.jUnitFile != "" {
		testLoggers = append(testLoggers, unit.NewJUnitTestLogger(params.jUnitFile, params.filters))
	}
	if params.jsonFile != "" {
		testLoggers = append(testLoggers, unit.NewJSONTestLogger(params.jsonFile))
	}
	if params.metricsFile != "" {
		testLoggers = append(testLoggers, unit.NewMetricsTestLogger(params.metricsFile))
	}
	testLogger := &unit.MultiTestLogger{Loggers: testLoggers}

	results := unit.Run(registry, unit.RunConfiguration{
		Filter:      params.filters,
		TestLogger:  testLogger,
		Output:      output,
		DebugLogger: debugLogger,
	})

	if err := testLogger.EndLog(results); err != nil {
		return results, fmt.Errorf("error writing log: %w", err)
	}

	if params.recordFailures != "" {
		if err := recordFailures(params.recordFailures, results); err != nil {
			return results, err
		}
	}

	return results, nil
}

func recordFailures(path string, results unit.Results) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create suppression file: %w", err)
	}
	defer func() { _ = f.Close() }()
	for _, test := range results.Failures {
		fmt.Fprintln(f, test.TestID)
	}
	return nil
}

func loadSuppressions(params *commandParams) error {
	file, err := os.Open(params.skipFile)
	if err != nil {
		return fmt.Errorf("cannot open provided suppression file: %w", err)
	}
	defer func() { _ = file.Close() }()
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		// Ignore blank lines
		if strings.TrimSpace(line) == "" {
			continue
		}
		escaped := regexp.QuoteMeta(line)
		if err := params.filters.MustNotMatch.Set(escaped); err != nil {
			return fmt.Errorf("cannot parse suppression: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("while processing suppression file: %w", err)
	}
	return nil
}

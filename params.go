package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/dhemodules/dheunit/framework/unit"
)

const envVarPrefix = "DHEUNIT_"

type commandParams struct {
	filters        unit.RegexFilters
	skipFile       string
	verbose        bool
	quietLog       bool
	debug          bool
	jUnitFile      string
	jsonFile       string
	metricsFile    string
	recordFailures string
	configFile     string
}

// fileConfig is the format of the file given with --config. Command-line values take precedence;
// patterns from both places are combined.
type fileConfig struct {
	Run            []string `yaml:"run"`
	Skip           []string `yaml:"skip"`
	SkipFrom       string   `yaml:"skipFrom"`
	Verbose        bool     `yaml:"verbose"`
	QuietLog       bool     `yaml:"quietLog"`
	Debug          bool     `yaml:"debug"`
	JUnit          string   `yaml:"junit"`
	JSON           string   `yaml:"json"`
	Metrics        string   `yaml:"metrics"`
	RecordFailures string   `yaml:"recordFailures"`
}

func envVars(name string) []string {
	return []string{envVarPrefix + name}
}

func (c *commandParams) flags() []cli.Flag {
	return []cli.Flag{
		&cli.GenericFlag{
			Name:  "run",
			Value: &c.filters.MustMatch,
			Usage: "regex pattern(s) to select tests to run",
		},
		&cli.GenericFlag{
			Name:  "skip",
			Value: &c.filters.MustNotMatch,
			Usage: "regex pattern(s) to select tests not to run",
		},
		&cli.StringFlag{
			Name:        "skip-from",
			Destination: &c.skipFile,
			EnvVars:     envVars("SKIP_FROM"),
			Usage:       "path to a file of test IDs to skip, one per line",
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Destination: &c.verbose,
			Usage:       "show every test and subtest as it runs, not only the ones that write to their log; with --quiet-log, show the logs of passed tests too",
		},
		&cli.BoolFlag{
			Name:        "quiet-log",
			Destination: &c.quietLog,
			Usage:       "do not show test logs as they are written; show the logs of failed tests at the end of each test",
		},
		&cli.BoolFlag{
			Name:        "debug",
			Destination: &c.debug,
			EnvVars:     envVars("DEBUG"),
			Usage:       "enable debug logging from the harness",
		},
		&cli.StringFlag{
			Name:        "junit",
			Destination: &c.jUnitFile,
			Usage:       "write JUnit XML output to the specified path",
		},
		&cli.StringFlag{
			Name:        "json",
			Destination: &c.jsonFile,
			Usage:       "write a JSON report to the specified path",
		},
		&cli.StringFlag{
			Name:        "metrics",
			Destination: &c.metricsFile,
			Usage:       "write Prometheus metrics in text format to the specified path",
		},
		&cli.StringFlag{
			Name:        "record-failures",
			Destination: &c.recordFailures,
			Usage:       "write the IDs of failed tests to the specified path, in the format used by --skip-from",
		},
		&cli.StringFlag{
			Name:        "config",
			Destination: &c.configFile,
			EnvVars:     envVars("CONFIG"),
			Usage:       "path to a YAML file containing default values for these options",
		},
	}
}

// newApp creates the command-line app. Once the arguments are parsed and the config file (if any)
// is applied, it calls action.
func newApp(c *commandParams, action func(commandParams) error) *cli.App {
	return &cli.App{
		Name:            "dheunit",
		Usage:           "runs the dheunit self-test suites",
		Version:         version(),
		Flags:           c.flags(),
		HideHelpCommand: true,
		Action: func(*cli.Context) error {
			if c.configFile != "" {
				cfg, err := loadConfigFile(c.configFile)
				if err != nil {
					return err
				}
				if err := c.merge(cfg); err != nil {
					return err
				}
			}
			return action(*c)
		},
	}
}

func loadConfigFile(path string) (fileConfig, error) {
	var cfg fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("cannot read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *commandParams) merge(cfg fileConfig) error {
	for _, p := range cfg.Run {
		if err := c.filters.MustMatch.Set(p); err != nil {
			return fmt.Errorf("config file: run: %w", err)
		}
	}
	for _, p := range cfg.Skip {
		if err := c.filters.MustNotMatch.Set(p); err != nil {
			return fmt.Errorf("config file: skip: %w", err)
		}
	}
	c.verbose = c.verbose || cfg.Verbose
	c.quietLog = c.quietLog || cfg.QuietLog
	c.debug = c.debug || cfg.Debug
	setIfEmpty(&c.skipFile, cfg.SkipFrom)
	setIfEmpty(&c.jUnitFile, cfg.JUnit)
	setIfEmpty(&c.jsonFile, cfg.JSON)
	setIfEmpty(&c.metricsFile, cfg.Metrics)
	setIfEmpty(&c.recordFailures, cfg.RecordFailures)
	return nil
}

func setIfEmpty(target *string, value string) {
	if *target == "" {
		*target = value
	}
}

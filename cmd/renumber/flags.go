package main

import (
	"fmt"
	"os"
	"strconv"

	flag "github.com/spf13/pflag"
)

// cliConfig holds command-line options. File paths given here override
// the configuration file.
type cliConfig struct {
	ConfigPath  string
	InputFile   string
	OutputFile  string
	LogLevel    string
	LogJSON     bool
	DryRun      bool
	Validate    bool
	ShowVersion bool
}

func parseFlags(args []string) (*cliConfig, error) {
	cli := &cliConfig{}
	flags := flag.NewFlagSet(appName, flag.ContinueOnError)

	flags.StringVarP(&cli.ConfigPath, "config", "c",
		getEnv("RENUMBER_CONFIG", "renumber.yaml"),
		"Path to configuration file (env: RENUMBER_CONFIG)")
	flags.StringVarP(&cli.InputFile, "input", "i", "",
		"Input graph file, overrides the configuration")
	flags.StringVarP(&cli.OutputFile, "output", "o", "",
		"Output graph file, overrides the configuration")
	flags.StringVar(&cli.LogLevel, "log-level",
		getEnv("RENUMBER_LOG_LEVEL", "info"),
		"Log level: trace, debug, info, warn, error (env: RENUMBER_LOG_LEVEL)")
	flags.BoolVar(&cli.LogJSON, "log-json",
		getEnvBool("RENUMBER_LOG_JSON", false),
		"Emit logs as JSON (env: RENUMBER_LOG_JSON)")
	flags.BoolVarP(&cli.DryRun, "dry-run", "n", false,
		"Run the full rewrite but do not write the output file")
	flags.BoolVar(&cli.Validate, "validate", false,
		"Validate the configuration and exit")
	flags.BoolVarP(&cli.ShowVersion, "version", "v", false,
		"Show version information")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - renumber resource URIs in an RDF graph\n\nUsage: %s [options]\n\nOptions:\n%s",
			appName, os.Args[0], flags.FlagUsages())
	}

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	return cli, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

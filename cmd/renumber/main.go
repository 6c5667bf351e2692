// Command renumber rewrites resource URIs in an RDF graph to
// sequentially numbered URIs under a configured base, updating every
// reference so the graph stays coherent.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/conceptworks/renumber/renumber"
)

const (
	appName = "renumber"
	version = "0.1.0"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run() error {
	cli, err := parseFlags(os.Args[1:])
	if err != nil {
		return err
	}
	if cli.ShowVersion {
		fmt.Printf("%s %s\n", appName, version)
		return nil
	}

	logger := setupLogger(cli.LogLevel, cli.LogJSON)

	cfg, err := renumber.LoadConfig(cli.ConfigPath)
	if err != nil {
		return err
	}
	if cli.InputFile != "" {
		cfg.InputFile = cli.InputFile
	}
	if cli.OutputFile != "" {
		cfg.OutputFile = cli.OutputFile
	}
	if cli.InputFile != "" || cli.OutputFile != "" {
		// Re-derive formats and re-check after the overrides.
		cfg.ApplyDefaults()
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if cli.Validate {
		logger.Info("configuration is valid", "config", cli.ConfigPath)
		return nil
	}

	runner := renumber.NewRunner(cfg, logger)
	runner.SetDryRun(cli.DryRun)
	return runner.Run(context.Background())
}

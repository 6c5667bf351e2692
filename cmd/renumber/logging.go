package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
)

func setupLogger(level string, jsonFormat bool) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       appName,
		Level:      hclog.LevelFromString(level),
		Output:     os.Stderr,
		JSONFormat: jsonFormat,
	})
}

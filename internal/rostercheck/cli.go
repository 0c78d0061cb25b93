package rostercheck

import (
	"os"

	"github.com/mergington/activities/pkg/logger"
)

// SetupLogging initializes the structured logger for CLI runs.
func SetupLogging(verbose bool) error {
	if err := logger.Init(); err != nil {
		return err
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return nil
}

// ShowHelp prints usage information for the roster check tool.
func ShowHelp() {
	os.Stdout.WriteString(`Activities Roster Check
=======================

Drives a running activities service through signup/unregister cycles and
verifies the roster observed over HTTP stays consistent.

Usage:
  go run cmd/roster-check/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8080")
  -activity string
        Target activity name (default: first activity, sorted by name)
  -students int
        Number of synthetic students to enroll (default 25)
  -workers int
        Number of concurrent workers (default CPU cores)
  -timeout duration
        HTTP request timeout (default 10s)
  -keep
        Skip the unregister phase, leaving synthetic students enrolled
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Check the default activity on a local server
  go run cmd/roster-check/main.go

  # Stress one activity with concurrent signups
  go run cmd/roster-check/main.go -activity "Chess Club" -students 200 -workers 16
`)
}

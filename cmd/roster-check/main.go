package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/mergington/activities/internal/rostercheck"
)

// Default configuration constants.
const (
	defaultStudents   = 25
	defaultTimeout    = 10 * time.Second
	defaultRunTimeout = 5 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:8080", "Base URL of the service")
		activity = flag.String("activity", "", "Target activity name (default: first activity, sorted by name)")
		students = flag.Int("students", defaultStudents, "Number of synthetic students to enroll")
		workers  = flag.Int("workers", runtime.NumCPU(), "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		keep     = flag.Bool("keep", false, "Skip the unregister phase, leaving synthetic students enrolled")
		verbose  = flag.Bool("verbose", false, "Enable verbose logging")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		rostercheck.ShowHelp()
		return
	}

	if err := rostercheck.SetupLogging(*verbose); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &rostercheck.Config{
		BaseURL:     *baseURL,
		Activity:    *activity,
		NumStudents: *students,
		Workers:     *workers,
		Timeout:     *timeout,
		KeepRoster:  *keep,
		Verbose:     *verbose,
	}

	if err := rostercheck.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Roster check failed: " + err.Error() + "\n")
		os.Exit(1)
	}
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load(ctx) layers defaults, an optional YAML file, and environment vars.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// SeedFile optionally points at a YAML file that replaces the
	// compiled-in activity seed. Empty means use the default seed.
	SeedFile string `koanf:"seed_file"`

	// TestEndpoints registers the test-only reset route when true.
	// Never enable this on a production instance.
	TestEndpoints bool `koanf:"test_endpoints"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8080",
		SeedFile:      "",
		TestEndpoints: false,
	}
}

// Package config holds the immutable run configuration for verify-report and
// loads optional operator defaults from a YAML file.
package config

import (
	"github.com/zephyr-testing/reportverify/internal/remote"
)

// DefaultMaxSizeMiB is the report size ceiling when none is configured.
const DefaultMaxSizeMiB = 5.0

// Config is built once per run and never mutated afterwards.
type Config struct {
	// Path is the report file to verify.
	Path string

	// ZephyrVersion is the expected upstream version.
	ZephyrVersion string

	// MaxSizeMiB is the inclusive size ceiling in mebibytes.
	MaxSizeMiB float64

	// MaxErrors and MaxFailures gate the report summary. nil disables the gate.
	MaxErrors   *int
	MaxFailures *int

	// IndexURL is the daily version index endpoint.
	IndexURL string
}

// Defaults returns the built-in configuration with no report selected.
func Defaults() Config {
	return Config{
		MaxSizeMiB: DefaultMaxSizeMiB,
		IndexURL:   remote.DefaultIndexURL,
	}
}

// Apply overlays the values set in f onto c.
func (c Config) Apply(f FileConfig) Config {
	if f.MaxSize != nil {
		c.MaxSizeMiB = *f.MaxSize
	}
	if f.MaxErrors != nil {
		c.MaxErrors = intPtr(*f.MaxErrors)
	}
	if f.MaxFailures != nil {
		c.MaxFailures = intPtr(*f.MaxFailures)
	}
	if f.VersionsURL != "" {
		c.IndexURL = f.VersionsURL
	}
	return c
}

func intPtr(v int) *int {
	return &v
}

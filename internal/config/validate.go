package config

import (
	"math"
	"net/url"
	"strings"

	"github.com/zephyr-testing/reportverify/internal/errors"
)

// ValidationError names the offending setting.
type ValidationError struct {
	Field string
	Msg   string
}

func (v *ValidationError) Error() string {
	if v.Field != "" {
		return v.Field + ": " + v.Msg
	}
	return v.Msg
}

// Validate checks a fully merged configuration.
// Returns E_USAGE so the caller prints usage; path existence is not checked.
func Validate(cfg Config) (Config, error) {
	var missing []string
	if cfg.Path == "" {
		missing = append(missing, `"path"`)
	}
	if cfg.ZephyrVersion == "" {
		missing = append(missing, `"zephyr"`)
	}
	if len(missing) > 0 {
		return cfg, errors.New(errors.EUsage, "required flag(s) "+strings.Join(missing, ", ")+" not set")
	}

	checks := []error{
		checkMaxSize("max-size", cfg.MaxSizeMiB),
		checkURL("versions-url", cfg.IndexURL),
	}
	if cfg.MaxErrors != nil {
		checks = append(checks, checkCount("max-errors", *cfg.MaxErrors))
	}
	if cfg.MaxFailures != nil {
		checks = append(checks, checkCount("max-failures", *cfg.MaxFailures))
	}
	for _, err := range checks {
		if err != nil {
			return cfg, errors.Wrap(errors.EUsage, err.Error(), err)
		}
	}

	return cfg, nil
}

func checkMaxSize(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ValidationError{Field: field, Msg: "must be a finite number"}
	}
	if v < 0 {
		return &ValidationError{Field: field, Msg: "must not be negative"}
	}
	return nil
}

func checkCount(field string, v int) error {
	if v < 0 {
		return &ValidationError{Field: field, Msg: "must not be negative"}
	}
	return nil
}

func checkURL(field, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return &ValidationError{Field: field, Msg: "invalid URL: " + err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: field, Msg: "must be an http or https URL"}
	}
	if u.Host == "" {
		return &ValidationError{Field: field, Msg: "missing host"}
	}
	return nil
}

// Package report reads twister JSON reports and evaluates the content gates
// that run before a report is published.
package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/zephyr-testing/reportverify/internal/fs"
)

// Extension is the only accepted report file extension.
const Extension = ".json"

// Report is the read-only view of a twister report. Only the fields the
// gates read are decoded; everything else is ignored.
type Report struct {
	Testsuites  []Testsuite `json:"testsuites"`
	Environment Environment `json:"environment"`

	// Summary is the undecoded summary section, empty when the report has
	// none. Its counters are converted only when a summary gate asks.
	Summary json.RawMessage `json:"summary,omitempty"`
}

// Testsuite is one run record inside a report.
type Testsuite struct {
	Name     string
	Platform string

	// PlatformNotString is set when the platform value is not a JSON string.
	// Such a suite never matches any platform.
	PlatformNotString bool
}

// UnmarshalJSON accepts any JSON value for name and platform.
func (ts *Testsuite) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     json.RawMessage `json:"name"`
		Platform json.RawMessage `json:"platform"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var isString bool
	ts.Name, _ = text(raw.Name)
	ts.Platform, isString = text(raw.Platform)
	ts.PlatformNotString = !isString
	return nil
}

// OnPlatform reports whether the suite ran on platform.
func (ts Testsuite) OnPlatform(platform string) bool {
	return !ts.PlatformNotString && ts.Platform == platform
}

// Environment describes the build the report was produced against.
type Environment struct {
	ZephyrVersion string

	// VersionNotString is set when zephyr_version is not a JSON string.
	VersionNotString bool
}

// UnmarshalJSON accepts any JSON value for zephyr_version.
func (e *Environment) UnmarshalJSON(data []byte) error {
	var raw struct {
		ZephyrVersion json.RawMessage `json:"zephyr_version"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var isString bool
	e.ZephyrVersion, isString = text(raw.ZephyrVersion)
	e.VersionNotString = len(raw.ZephyrVersion) > 0 && !isString
	return nil
}

// text returns a JSON string's value, or the JSON text of any other value.
// A missing value is the empty string and not a string.
func text(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(bytes.TrimSpace(raw)), false
}

// HasJSONExtension reports whether path ends in ".json". The match is case-sensitive.
func HasJSONExtension(path string) bool {
	return filepath.Ext(path) == Extension
}

// Stem returns the file name without directory and extension.
// A report published as qemu_x86.json has stem qemu_x86.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Parse decodes report JSON.
func Parse(data []byte) (*Report, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Load reads and decodes the report at path.
func Load(fsys fs.FS, path string) (*Report, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

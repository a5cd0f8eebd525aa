package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/zephyr-testing/reportverify/internal/fs"
)

const bytesPerMiB = 1024 * 1024

// Mismatches returns the testsuites whose platform differs from platform, in
// report order.
func Mismatches(platform string, r *Report) []Testsuite {
	var out []Testsuite
	for _, ts := range r.Testsuites {
		if !ts.OnPlatform(platform) {
			out = append(out, ts)
		}
	}
	return out
}

// PlatformMatches reports whether every testsuite ran on platform.
// One diagnostic line per mismatching suite is written to w.
// A report without testsuites matches.
func PlatformMatches(platform string, r *Report, w io.Writer) bool {
	mismatches := Mismatches(platform, r)
	for _, ts := range mismatches {
		_, _ = fmt.Fprintf(w, "Platform %s from %s doesn't match the required one: %s\n", ts.Platform, ts.Name, platform)
	}
	return len(mismatches) == 0
}

// VersionConsistent reports whether the report was built against expected.
// On mismatch it writes "Version not found." to w.
func VersionConsistent(r *Report, expected string, w io.Writer) bool {
	if !r.Environment.VersionNotString && r.Environment.ZephyrVersion == expected {
		return true
	}
	_, _ = fmt.Fprintln(w, "Version not found.")
	return false
}

// SizeMiB converts a byte count to mebibytes.
func SizeMiB(size int64) float64 {
	return float64(size) / bytesPerMiB
}

// SizeWithinLimit reports whether size bytes is at most maxMiB mebibytes.
// A file exactly at the limit passes.
func SizeWithinLimit(size int64, maxMiB float64) bool {
	return SizeMiB(size) <= maxMiB
}

// FileSizeWithinLimit stats path and applies SizeWithinLimit.
// The byte size is returned for diagnostics.
func FileSizeWithinLimit(fsys fs.FS, path string, maxMiB float64) (bool, int64, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		return false, 0, err
	}
	return SizeWithinLimit(info.Size(), maxMiB), info.Size(), nil
}

// Counter names a summary counter.
type Counter string

const (
	Errors   Counter = "errors"
	Failures Counter = "failures"
)

// HasSummary reports whether the report carries a summary section.
func (r *Report) HasSummary() bool {
	raw := bytes.TrimSpace(r.Summary)
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// Count returns the named summary counter. present is false when the report
// has no summary section. Integers, fractional numbers (truncated toward
// zero), integer strings and booleans are accepted; anything else, or a
// missing counter, is an error.
func (r *Report) Count(c Counter) (n int, present bool, err error) {
	if !r.HasSummary() {
		return 0, false, nil
	}
	var section map[string]json.RawMessage
	if err := json.Unmarshal(r.Summary, &section); err != nil {
		return 0, true, errors.New("summary is not an object")
	}
	raw, ok := section[string(c)]
	if !ok {
		return 0, true, fmt.Errorf("summary has no %s counter", c)
	}
	n, err = toInt(raw)
	if err != nil {
		return 0, true, fmt.Errorf("summary %s: %w", c, err)
	}
	return n, true, nil
}

// SummaryWithin reports whether counter c is at most limit.
// present is false when the report has no summary section; ok is then false.
func SummaryWithin(r *Report, c Counter, limit int) (ok, present bool, err error) {
	n, present, err := r.Count(c)
	if !present || err != nil {
		return false, present, err
	}
	return n <= limit, true, nil
}

func toInt(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return 0, err
	}

	switch x := v.(type) {
	case json.Number:
		if n, err := strconv.Atoi(x.String()); err == nil {
			return n, nil
		}
		f, err := x.Float64()
		if err != nil || f >= math.MaxInt64 || f <= math.MinInt64 {
			return 0, fmt.Errorf("%s is out of range", x)
		}
		return int(f), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, fmt.Errorf("invalid integer %q", x)
		}
		return n, nil
	case bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("unsupported value %s", bytes.TrimSpace(raw))
}

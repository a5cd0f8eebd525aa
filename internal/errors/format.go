// Package errors provides error formatting for verify-report CLI output.
package errors

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// PrintOptions controls error output formatting.
type PrintOptions struct {
	// Verbose enables detailed error output with more context keys.
	Verbose bool
}

// Context key whitelist (default mode, in order)
var defaultContextKeys = []string{
	"op",
	"path",
	"platform",
	"expected",
	"actual",
	"limit",
	"url",
	"status",
}

// Additional context keys for verbose mode
var verboseContextKeys = []string{
	"op",
	"path",
	"stem",
	"platform",
	"suite",
	"mismatches",
	"expected",
	"actual",
	"limit",
	"size_bytes",
	"size_mib",
	"url",
	"status",
	"entries",
	"config",
	"hint",
}

const (
	maxValueLen      = 256 // Max chars for single-line context values
	maxExtraValueLen = 128 // Max chars for extra section values
)

// Format formats an error for display without I/O.
// Returns the formatted string ready for printing.
func Format(err error, opts PrintOptions) string {
	if err == nil {
		return ""
	}

	var sb strings.Builder

	e, ok := AsError(err)
	if !ok {
		sb.WriteString(err.Error())
		sb.WriteString("\n")
		return sb.String()
	}

	sb.WriteString("error_code: ")
	sb.WriteString(string(e.Code))
	sb.WriteString("\n")

	sb.WriteString(e.Msg)
	sb.WriteString("\n")

	if e.Cause != nil && opts.Verbose {
		sb.WriteString("cause: ")
		sb.WriteString(sanitizeValue(e.Cause.Error(), maxValueLen))
		sb.WriteString("\n")
	}

	contextKeys := defaultContextKeys
	if opts.Verbose {
		contextKeys = verboseContextKeys
	}

	printedKeys := make(map[string]bool)
	var context strings.Builder
	for _, key := range contextKeys {
		if e.Details == nil {
			continue
		}
		val, ok := e.Details[key]
		if !ok || val == "" {
			continue
		}
		// hint is printed separately at the end
		if key == "hint" {
			continue
		}
		printedKeys[key] = true
		context.WriteString(key)
		context.WriteString(": ")
		context.WriteString(sanitizeValue(val, maxValueLen))
		context.WriteString("\n")
	}
	if context.Len() > 0 {
		sb.WriteString("\n")
		sb.WriteString(context.String())
	}

	if opts.Verbose && e.Details != nil {
		var extraKeys []string
		for key := range e.Details {
			if !printedKeys[key] && key != "hint" {
				extraKeys = append(extraKeys, key)
			}
		}
		if len(extraKeys) > 0 {
			sort.Strings(extraKeys)
			sb.WriteString("\nextra:\n")
			for _, key := range extraKeys {
				val := e.Details[key]
				if val == "" {
					continue
				}
				sb.WriteString("  ")
				sb.WriteString(key)
				sb.WriteString(": ")
				sb.WriteString(sanitizeValue(val, maxExtraValueLen))
				sb.WriteString("\n")
			}
		}
	}

	if e.Details != nil {
		if hint, ok := e.Details["hint"]; ok && hint != "" {
			sb.WriteString("\nhint: ")
			sb.WriteString(hint)
			sb.WriteString("\n")
		}
	}

	for _, try := range deriveTryLines(e) {
		sb.WriteString("try: ")
		sb.WriteString(try)
		sb.WriteString("\n")
	}

	return sb.String()
}

// PrintWithOptions writes a formatted error to w with the given options.
func PrintWithOptions(w io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	_, _ = io.WriteString(w, Format(err, opts))
}

// PrintOutcome routes a failed run to the right stream.
// Verification gate failures print their message as a single line on stdout;
// in verbose mode the full coded block follows on stderr. Everything else
// (usage, config, internal) prints the coded block on stderr only.
func PrintOutcome(stdout, stderr io.Writer, err error, opts PrintOptions) {
	if err == nil {
		return
	}
	if IsCheckFailure(err) {
		e, _ := AsError(err)
		_, _ = fmt.Fprintln(stdout, e.Msg)
		if opts.Verbose {
			PrintWithOptions(stderr, err, opts)
		}
		return
	}
	PrintWithOptions(stderr, err, opts)
}

// sanitizeValue sanitizes a value for single-line context output.
// - Trims trailing whitespace first
// - Normalizes CRLF to LF
// - Replaces newlines with literal \n
// - Truncates to maxLen chars
func sanitizeValue(val string, maxLen int) string {
	val = strings.TrimRight(val, " \t\r\n")
	val = strings.ReplaceAll(val, "\r\n", "\n")
	val = strings.ReplaceAll(val, "\n", "\\n")

	if len(val) > maxLen {
		return val[:maxLen] + "…"
	}

	return val
}

// deriveTryLines returns actionable suggestions based on error code.
func deriveTryLines(e *Error) []string {
	if e == nil {
		return nil
	}

	var lines []string

	switch e.Code {
	case EUsage:
		lines = append(lines, "verify-report --help")
	case EVersionIndexUnavailable, EVersionNotListed:
		if e.Details != nil {
			if url := e.Details["url"]; url != "" {
				lines = append(lines, fmt.Sprintf("curl -fsS %s", url))
			}
		}
	case EPlatformMismatch:
		if e.Details != nil {
			if path := e.Details["path"]; path != "" {
				lines = append(lines, fmt.Sprintf("grep -o '\"platform\": *\"[^\"]*\"' %s | sort -u", path))
			}
		}
	}

	return lines
}

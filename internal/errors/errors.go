// Package errors defines the stable error code system for verify-report.
package errors

import (
	"errors"
	"fmt"
)

// Code is a stable error code string.
type Code string

// Error codes. Stable public contract: scripts gate on these.
const (
	EUsage         Code = "E_USAGE"
	EInvalidConfig Code = "E_INVALID_CONFIG"
	EInternal      Code = "E_INTERNAL"

	// Report loading
	EReportNotFound   Code = "E_REPORT_NOT_FOUND"  // no file at --path
	ENotJSON          Code = "E_NOT_JSON"          // --path does not end in .json
	EReportUnreadable Code = "E_REPORT_UNREADABLE" // file exists but cannot be read or decoded

	// Daily version index
	EVersionIndexUnavailable Code = "E_VERSION_INDEX_UNAVAILABLE" // transport failure, bad status, or malformed body
	EVersionNotListed        Code = "E_VERSION_NOT_LISTED"        // --zephyr is not in the daily list

	// Report content gates
	EPlatformMismatch Code = "E_PLATFORM_MISMATCH" // a testsuite ran on another platform than the file stem
	EVersionMismatch  Code = "E_VERSION_MISMATCH"  // environment.zephyr_version != --zephyr
	ESizeExceeded     Code = "E_SIZE_EXCEEDED"     // file larger than --max-size MiB
	ETooManyFailures  Code = "E_TOO_MANY_FAILURES" // summary.failures > --max-failures
	ETooManyErrors    Code = "E_TOO_MANY_ERRORS"   // summary.errors > --max-errors
	ESummaryMissing   Code = "E_SUMMARY_MISSING"   // a summary ceiling is set but the report has no summary
	ESummaryInvalid   Code = "E_SUMMARY_INVALID"   // a gated summary counter is missing or not a number
)

// checkFailureCodes are the codes raised by verification gates. Their message
// is the whole user-facing outcome and is printed as a single stdout line.
var checkFailureCodes = map[Code]bool{
	EReportNotFound:          true,
	ENotJSON:                 true,
	EReportUnreadable:        true,
	EVersionIndexUnavailable: true,
	EVersionNotListed:        true,
	EPlatformMismatch:        true,
	EVersionMismatch:         true,
	ESizeExceeded:            true,
	ETooManyFailures:         true,
	ETooManyErrors:           true,
	ESummaryMissing:          true,
	ESummaryInvalid:          true,
}

// Error is the standard error type for verify-report errors.
type Error struct {
	Code    Code
	Msg     string
	Cause   error
	Details map[string]string // optional structured context
}

// Error returns the stable error format: "CODE: message".
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and message.
func New(code Code, msg string) error {
	return &Error{Code: code, Msg: msg}
}

// NewWithDetails creates a new Error with code, message, and details.
// The details map is copied (nil if empty).
func NewWithDetails(code Code, msg string, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Details: copyDetails(details)}
}

// Wrap creates a new Error wrapping an underlying error.
func Wrap(code Code, msg string, err error) error {
	return &Error{Code: code, Msg: msg, Cause: err}
}

// WrapWithDetails creates a new Error wrapping an underlying error with details.
// The details map is copied (nil if empty).
func WrapWithDetails(code Code, msg string, err error, details map[string]string) error {
	return &Error{Code: code, Msg: msg, Cause: err, Details: copyDetails(details)}
}

// GetCode extracts the error code from an error, or empty string if not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// AsError returns (*Error, true) if err is or wraps an *Error.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsCheckFailure reports whether err was raised by a verification gate.
func IsCheckFailure(err error) bool {
	return checkFailureCodes[GetCode(err)]
}

func copyDetails(details map[string]string) map[string]string {
	if len(details) == 0 {
		return nil
	}
	cp := make(map[string]string, len(details))
	for k, v := range details {
		cp[k] = v
	}
	return cp
}

// ExitCode returns the appropriate exit code for an error.
// Returns 0 if err is nil, 2 for E_USAGE, 1 for all other errors.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	if GetCode(err) == EUsage {
		return 2
	}
	return 1
}

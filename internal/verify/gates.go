package verify

import (
	"context"
	stderrors "errors"
	"fmt"
	iofs "io/fs"
	"strconv"
	"strings"

	"github.com/zephyr-testing/reportverify/internal/errors"
	"github.com/zephyr-testing/reportverify/internal/fs"
	"github.com/zephyr-testing/reportverify/internal/log"
	"github.com/zephyr-testing/reportverify/internal/report"
)

func (v *Verifier) checkExists(_ context.Context, st *state) error {
	path := st.cfg.Path
	ok, err := fs.Exists(v.FS, path)
	if err != nil {
		return errors.WrapWithDetails(errors.EReportUnreadable,
			fmt.Sprintf("JSON report at %s could not be read", path), err,
			map[string]string{"op": GateExists, "path": path})
	}
	if !ok {
		return errors.NewWithDetails(errors.EReportNotFound,
			fmt.Sprintf("JSON report not found at %s", path),
			map[string]string{"op": GateExists, "path": path})
	}
	return nil
}

func (v *Verifier) checkExtension(_ context.Context, st *state) error {
	if !report.HasJSONExtension(st.cfg.Path) {
		return errors.NewWithDetails(errors.ENotJSON, "Not a JSON file given",
			map[string]string{"op": GateExtension, "path": st.cfg.Path})
	}
	return nil
}

func (v *Verifier) parse(_ context.Context, st *state) error {
	path := st.cfg.Path
	r, err := report.Load(v.FS, path)
	if err != nil {
		details := map[string]string{"op": GateParse, "path": path}
		var pathErr *iofs.PathError
		if stderrors.As(err, &pathErr) {
			return errors.WrapWithDetails(errors.EReportUnreadable,
				fmt.Sprintf("JSON report at %s could not be read", path), err, details)
		}
		return errors.WrapWithDetails(errors.EReportUnreadable,
			fmt.Sprintf("JSON report at %s could not be parsed: %v", path, err), err, details)
	}
	st.report = r
	return nil
}

func (v *Verifier) checkVersionListed(ctx context.Context, st *state) error {
	version := st.cfg.ZephyrVersion
	details := map[string]string{"op": GateVersionListed, "expected": version, "url": st.cfg.IndexURL}

	ok, err := v.Index.VersionExists(ctx, version)
	if err != nil {
		return errors.WrapWithDetails(errors.EVersionIndexUnavailable,
			fmt.Sprintf("Could not load the daily version list: %v", err), err, details)
	}
	if !ok {
		details["hint"] = "only versions with a published daily build are accepted"
		return errors.NewWithDetails(errors.EVersionNotListed,
			"Given version of zephyr is not on the daily list", details)
	}
	return nil
}

func (v *Verifier) checkPlatform(_ context.Context, st *state) error {
	if report.PlatformMatches(st.stem, st.report, v.Out) {
		return nil
	}

	mismatches := report.Mismatches(st.stem, st.report)
	v.Log.Debug().
		Str(log.FieldPlatform, st.stem).
		Int(log.FieldEntries, len(st.report.Testsuites)).
		Int("mismatches", len(mismatches)).
		Msg("platform mismatch")
	platforms := make([]string, 0, len(mismatches))
	seen := make(map[string]bool)
	for _, ts := range mismatches {
		if !seen[ts.Platform] {
			seen[ts.Platform] = true
			platforms = append(platforms, ts.Platform)
		}
	}
	return errors.NewWithDetails(errors.EPlatformMismatch,
		"Report name does not match the platform name given in the report",
		map[string]string{
			"op":         GatePlatform,
			"path":       st.cfg.Path,
			"stem":       st.stem,
			"platform":   st.stem,
			"actual":     strings.Join(platforms, ","),
			"mismatches": strconv.Itoa(len(mismatches)),
		})
}

func (v *Verifier) checkVersion(_ context.Context, st *state) error {
	if report.VersionConsistent(st.report, st.cfg.ZephyrVersion, v.Out) {
		return nil
	}
	return errors.NewWithDetails(errors.EVersionMismatch, "Incorrect version of zephyr",
		map[string]string{
			"op":       GateVersion,
			"path":     st.cfg.Path,
			"expected": st.cfg.ZephyrVersion,
			"actual":   st.report.Environment.ZephyrVersion,
		})
}

func (v *Verifier) checkSize(_ context.Context, st *state) error {
	path := st.cfg.Path
	limit := st.cfg.MaxSizeMiB

	ok, size, err := report.FileSizeWithinLimit(v.FS, path, limit)
	if err != nil {
		return errors.WrapWithDetails(errors.EReportUnreadable,
			fmt.Sprintf("JSON report at %s could not be read", path), err,
			map[string]string{"op": GateSize, "path": path})
	}
	if !ok {
		return errors.NewWithDetails(errors.ESizeExceeded,
			fmt.Sprintf("Size of the JSON report at %s is >%s Mb", path, formatMiB(limit)),
			map[string]string{
				"op":         GateSize,
				"path":       path,
				"limit":      formatMiB(limit),
				"size_bytes": strconv.FormatInt(size, 10),
				"size_mib":   strconv.FormatFloat(report.SizeMiB(size), 'f', 2, 64),
			})
	}
	return nil
}

func (v *Verifier) checkFailures(_ context.Context, st *state) error {
	return v.checkCounter(st, GateFailures, report.Failures, *st.cfg.MaxFailures, errors.ETooManyFailures)
}

func (v *Verifier) checkErrors(_ context.Context, st *state) error {
	return v.checkCounter(st, GateErrors, report.Errors, *st.cfg.MaxErrors, errors.ETooManyErrors)
}

func (v *Verifier) checkCounter(st *state, name string, c report.Counter, limit int, code errors.Code) error {
	path := st.cfg.Path
	ok, present, err := report.SummaryWithin(st.report, c, limit)
	if !present {
		return errors.NewWithDetails(errors.ESummaryMissing,
			fmt.Sprintf("JSON report at %s has no summary section", path),
			map[string]string{"op": name, "path": path})
	}
	if err != nil {
		return errors.WrapWithDetails(errors.ESummaryInvalid,
			fmt.Sprintf("JSON report at %s has an unusable %s count: %v", path, c, err), err,
			map[string]string{"op": name, "path": path})
	}
	if ok {
		return nil
	}
	n, _, _ := st.report.Count(c)
	return errors.NewWithDetails(code,
		fmt.Sprintf("JSON report at %s has too many %s (>%d). It requires manual verification.", path, c, limit),
		map[string]string{
			"op":     name,
			"path":   path,
			"limit":  strconv.Itoa(limit),
			"actual": strconv.Itoa(n),
		})
}

// formatMiB renders a limit as a float with at least one decimal: 5.0, 7.5.
func formatMiB(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

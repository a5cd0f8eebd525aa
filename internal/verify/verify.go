// Package verify runs the ordered publication gates over one report.
//
// Gates run in a fixed order and the first failure ends the run. Every gate
// failure is an *errors.Error whose Msg is the single line shown to the
// operator; diagnostics produced while a gate runs go to Verifier.Out.
package verify

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/zephyr-testing/reportverify/internal/config"
	"github.com/zephyr-testing/reportverify/internal/errors"
	"github.com/zephyr-testing/reportverify/internal/fs"
	"github.com/zephyr-testing/reportverify/internal/log"
	"github.com/zephyr-testing/reportverify/internal/remote"
	"github.com/zephyr-testing/reportverify/internal/report"
)

// Gate names, in execution order.
const (
	GateExists        = "exists"
	GateExtension     = "extension"
	GateParse         = "parse"
	GateVersionListed = "version-listed"
	GatePlatform      = "platform"
	GateVersion       = "version"
	GateSize          = "size"
	GateFailures      = "failures"
	GateErrors        = "errors"
)

// Verifier holds the collaborators shared by all gates.
type Verifier struct {
	FS    fs.FS
	Index remote.VersionIndex
	Out   io.Writer
	Log   zerolog.Logger
}

// NewVerifier creates a Verifier writing diagnostics to out.
func NewVerifier(filesystem fs.FS, index remote.VersionIndex, out io.Writer) *Verifier {
	return &Verifier{
		FS:    filesystem,
		Index: index,
		Out:   out,
		Log:   log.WithComponent("verify"),
	}
}

// state is what earlier gates hand to later ones.
type state struct {
	cfg    config.Config
	stem   string
	report *report.Report
}

// gate is one named check.
type gate struct {
	name string
	run  func(ctx context.Context, st *state) error
}

// gates returns the pipeline for cfg. Summary gates are present only when
// their ceiling is configured.
func (v *Verifier) gates(cfg config.Config) []gate {
	gs := []gate{
		{GateExists, v.checkExists},
		{GateExtension, v.checkExtension},
		{GateParse, v.parse},
		{GateVersionListed, v.checkVersionListed},
		{GatePlatform, v.checkPlatform},
		{GateVersion, v.checkVersion},
		{GateSize, v.checkSize},
	}
	if cfg.MaxFailures != nil {
		gs = append(gs, gate{GateFailures, v.checkFailures})
	}
	if cfg.MaxErrors != nil {
		gs = append(gs, gate{GateErrors, v.checkErrors})
	}
	return gs
}

// GateNames lists the gates Verify runs for cfg, in order.
func (v *Verifier) GateNames(cfg config.Config) []string {
	gs := v.gates(cfg)
	names := make([]string, len(gs))
	for i, g := range gs {
		names[i] = g.name
	}
	return names
}

// Verify runs every gate against the report named by cfg.Path.
// Returns nil when the report may be published.
func (v *Verifier) Verify(ctx context.Context, cfg config.Config) error {
	st := &state{cfg: cfg, stem: report.Stem(cfg.Path)}
	logger := v.Log.With().Str(log.FieldPath, cfg.Path).Logger()

	for _, g := range v.gates(cfg) {
		if err := g.run(ctx, st); err != nil {
			logger.Debug().
				Str(log.FieldCheck, g.name).
				Str(log.FieldCode, string(errors.GetCode(err))).
				Msg("check failed")
			return err
		}
		logger.Debug().Str(log.FieldCheck, g.name).Msg("check passed")
	}

	logger.Info().Str(log.FieldVersion, cfg.ZephyrVersion).Msg("report verified")
	return nil
}

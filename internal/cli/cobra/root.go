// Package cobra provides the Cobra-based CLI for verify-report.
package cobra

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/zephyr-testing/reportverify/internal/config"
	"github.com/zephyr-testing/reportverify/internal/errors"
	"github.com/zephyr-testing/reportverify/internal/fs"
	"github.com/zephyr-testing/reportverify/internal/log"
	"github.com/zephyr-testing/reportverify/internal/remote"
	"github.com/zephyr-testing/reportverify/internal/verify"
	"github.com/zephyr-testing/reportverify/internal/version"
)

// GlobalOpts holds global options parsed before subcommand dispatch.
type GlobalOpts struct {
	Verbose bool
}

// globalOpts stores the parsed global options for access by main.
var globalOpts GlobalOpts

// GetGlobalOpts returns the parsed global options.
func GetGlobalOpts() GlobalOpts {
	return globalOpts
}

// rootOpts are the verification flags.
type rootOpts struct {
	path        string
	zephyr      string
	maxSize     float64
	maxErrors   int
	maxFailures int
	versionsURL string
	configPath  string
}

// NewRootCmd creates the root cobra command for verify-report.
func NewRootCmd() *cobra.Command {
	opts := &rootOpts{}

	rootCmd := &cobra.Command{
		Use:   "verify-report -P <report.json> -Z <version>",
		Short: "Verify a twister JSON report before publication",
		Long: `verify-report - publication gate for a single twister JSON report

The report passes when, in order:
  - the file exists and has a .json extension
  - the expected Zephyr version is on the daily version list
  - every testsuite ran on the platform named by the file stem
  - environment.zephyr_version equals the expected version
  - the file is no larger than --max-size MiB
  - summary failures and errors stay within --max-failures / --max-errors (when set)

The first failing check prints its message and exits 1.
Usage errors exit 2.`,
		Example: `  verify-report -P qemu_x86.json -Z v3.5.0-rc1
  verify-report -P out/native_sim.json -Z v3.5.0 -S 10 -F 50
  verify-report --config verify.yaml -P qemu_x86.json -Z v3.5.0`,
		Version:       version.FullVersion(),
		Args:          noPositionalArgs,
		SilenceErrors: true, // We handle error printing in main.go
		SilenceUsage:  true, // We handle usage printing manually
		RunE: func(cmd *cobra.Command, args []string) error {
			return runVerify(cmd, opts)
		},
	}

	rootCmd.PersistentFlags().BoolVar(&globalOpts.Verbose, "verbose", false, "debug logging and detailed error context")

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.path, "path", "P", "", "path to the JSON report (required)")
	flags.StringVarP(&opts.zephyr, "zephyr", "Z", "", "expected Zephyr version (required)")
	flags.Float64VarP(&opts.maxSize, "max-size", "S", config.DefaultMaxSizeMiB, "maximum report size in MiB")
	flags.IntVarP(&opts.maxErrors, "max-errors", "E", 0, "maximum summary.errors (gate disabled unless set)")
	flags.IntVarP(&opts.maxFailures, "max-failures", "F", 0, "maximum summary.failures (gate disabled unless set)")
	flags.StringVar(&opts.versionsURL, "versions-url", remote.DefaultIndexURL, "daily version index URL")
	flags.StringVar(&opts.configPath, "config", "", "YAML file with max_size, max_errors, max_failures, versions_url")
	flags.SortFlags = false

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		printUsage(cmd)
		return errors.Wrap(errors.EUsage, err.Error(), err)
	})

	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(
		newVersionCmd(),
		newCompletionCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
// This is the main entry point from main.go.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.ExecuteContext(context.Background())
}

func noPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		printUsage(cmd)
		return errors.New(errors.EUsage, fmt.Sprintf("unexpected argument %q", args[0]))
	}
	return nil
}

func printUsage(cmd *cobra.Command) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
}

// resolveConfig merges built-in defaults, the optional YAML file and the
// flags the user actually set, in that order.
func resolveConfig(filesystem fs.FS, flags *pflag.FlagSet, opts *rootOpts) (config.Config, error) {
	cfg := config.Defaults()

	if opts.configPath != "" {
		fc, err := config.LoadFile(filesystem, opts.configPath)
		if err != nil {
			return cfg, err
		}
		cfg = cfg.Apply(fc)
	}

	cfg.Path = opts.path
	cfg.ZephyrVersion = opts.zephyr
	if flags.Changed("max-size") {
		cfg.MaxSizeMiB = opts.maxSize
	}
	if flags.Changed("max-errors") {
		n := opts.maxErrors
		cfg.MaxErrors = &n
	}
	if flags.Changed("max-failures") {
		n := opts.maxFailures
		cfg.MaxFailures = &n
	}
	if flags.Changed("versions-url") {
		cfg.IndexURL = opts.versionsURL
	}

	return config.Validate(cfg)
}

func runVerify(cmd *cobra.Command, opts *rootOpts) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	logCfg := log.Config{Output: stderr}
	if globalOpts.Verbose {
		logCfg.Level = "debug"
	}
	log.Configure(logCfg)
	logger := log.WithComponent("cli")

	filesystem := fs.NewRealFS()
	cfg, err := resolveConfig(filesystem, cmd.Flags(), opts)
	if err != nil {
		if errors.GetCode(err) == errors.EUsage {
			printUsage(cmd)
		}
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	client := remote.NewClient(
		remote.WithIndexURL(cfg.IndexURL),
		remote.WithLogger(log.WithComponent("remote")),
	)
	logger.Debug().
		Str(log.FieldPath, cfg.Path).
		Str(log.FieldVersion, cfg.ZephyrVersion).
		Str(log.FieldURL, client.IndexURL()).
		Float64("max_size_mib", cfg.MaxSizeMiB).
		Msg("configuration resolved")

	if err := verify.NewVerifier(filesystem, client, stdout).Verify(ctx, cfg); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(stdout, "Report %s verified.\n", cfg.Path)
	return nil
}

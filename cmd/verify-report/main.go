// Command verify-report gates publication of a twister JSON test report.
package main

import (
	"os"

	"github.com/zephyr-testing/reportverify/internal/cli/cobra"
	"github.com/zephyr-testing/reportverify/internal/errors"
)

func main() {
	err := cobra.Execute(os.Stdout, os.Stderr)
	if err != nil {
		// Use verbose mode if --verbose global flag was set
		opts := errors.PrintOptions{
			Verbose: cobra.GetGlobalOpts().Verbose,
		}
		errors.PrintOutcome(os.Stdout, os.Stderr, err, opts)
		os.Exit(errors.ExitCode(err))
	}
}

package cobra

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zephyr-testing/reportverify/internal/version"
)

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print verify-report version",
		Long:  "Print the verify-report version string.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "verify-report %s\n", version.FullVersion())
		},
	}

	return cmd
}

package cobra

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zephyr-testing/reportverify/internal/errors"
)

func newCompletionCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "completion <shell>",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts.
By default, prints the script to stdout.
Use --output to write directly to a file.

Arguments:
  shell    target shell: bash or zsh

Installation:

  bash (with bash-completion package):
    verify-report completion bash > ~/.local/share/bash-completion/completions/verify-report

  zsh (with fpath):
    verify-report completion zsh > ~/.zsh/completions/_verify-report
    # ensure ~/.zsh/completions is in fpath before compinit`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"bash", "zsh"},
		RunE: func(cmd *cobra.Command, args []string) error {
			shell := args[0]
			if shell != "bash" && shell != "zsh" {
				return errors.New(errors.EUsage, fmt.Sprintf("unsupported shell: %s (supported: bash, zsh)", shell))
			}
			if output == "" {
				return genCompletion(cmd.Root(), shell, cmd.OutOrStdout())
			}
			return writeCompletion(cmd.Root(), shell, output)
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "write completion script to file instead of stdout")

	return cmd
}

func genCompletion(root *cobra.Command, shell string, w io.Writer) error {
	if shell == "zsh" {
		return root.GenZshCompletion(w)
	}
	return root.GenBashCompletion(w)
}

// writeCompletion writes the script via a temp file and rename.
func writeCompletion(root *cobra.Command, shell, output string) error {
	dir := filepath.Dir(output)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.EInternal, fmt.Sprintf("failed to create directory %s", dir), err)
	}

	tmpPath := output + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return errors.Wrap(errors.EInternal, fmt.Sprintf("failed to create %s", output), err)
	}

	if err := genCompletion(root, shell, f); err != nil {
		_ = f.Close()
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.EInternal, "failed to generate completion script", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.EInternal, fmt.Sprintf("failed to write %s", output), err)
	}
	if err := os.Rename(tmpPath, output); err != nil {
		_ = os.Remove(tmpPath)
		return errors.Wrap(errors.EInternal, fmt.Sprintf("failed to rename to %s", output), err)
	}
	return nil
}

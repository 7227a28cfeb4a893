package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/jsvensson/colorfamily/internal/format"
	"github.com/spf13/cobra"
)

var (
	errFmtFailed    = errors.New("formatting failed")
	errNotFormatted = errors.New("some files are not formatted")
)

func newFmtCmd() *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "fmt [files...]",
		Short: "Format palette and config files",
		Long:  "Format one or more HCL palette or config files in-place. Prints the name of each file that was modified.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, check)
		},
	}
	cmd.Flags().BoolVarP(&check, "check", "c", false, "check if files are formatted (do not write changes)")
	return cmd
}

func runFmt(cmd *cobra.Command, args []string, check bool) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		content := string(data)
		formatted, err := format.Format(content)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		if formatted == content {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !check {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors {
		return errFmtFailed
	}
	if check && needsFormatting {
		return errNotFormatted
	}
	return nil
}

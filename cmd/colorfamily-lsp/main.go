package main

import (
	"os"

	"github.com/jsvensson/colorfamily/internal/lsp"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	var verbose int
	rootCmd := &cobra.Command{
		Use:     "colorfamily-lsp",
		Short:   "Language server for colorfamily palette files, speaking LSP over stdio",
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Info and above by default; logs go to stderr, away from the protocol.
			return lsp.NewServer(version, verbose+1).Run()
		},
	}
	rootCmd.Flags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (can be repeated)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

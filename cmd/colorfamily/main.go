package main

import (
	"fmt"
	"os"

	"github.com/jsvensson/colorfamily/internal/config"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

var version = "dev" // Injected at build time via ldflags

var log = commonlog.GetLogger("colorfamily.cli")

// globals holds the persistent flags and the config they select. Commands
// read cfg only from RunE, after PersistentPreRunE has loaded it.
type globals struct {
	configPath string
	verbose    int
	cfg        *config.Config
}

func (g *globals) loadConfig() error {
	if g.configPath == "" {
		cfg, err := config.LoadDefault()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		g.cfg = cfg
		return nil
	}

	cfg, err := config.Load(g.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	log.Debugf("loaded config from %s", g.configPath)
	g.cfg = cfg
	return nil
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	rootCmd := &cobra.Command{
		Use:          "colorfamily",
		Short:        "Create colors and restyle them as pastel, vivid or neon variants",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(g.verbose, nil)
			return g.loadConfig()
		},
	}
	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "path to config file (default is the per-user colorfamily/config.hcl)")
	rootCmd.PersistentFlags().CountVarP(&g.verbose, "verbose", "v", "increase log verbosity (can be repeated)")

	rootCmd.AddCommand(newNewCmd(g))
	rootCmd.AddCommand(newBasesCmd(g))
	rootCmd.AddCommand(newGenerateCmd(g))
	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/jsvensson/colorfamily"
	"github.com/spf13/cobra"
)

type basesFlags struct {
	format string
	output string
	swatch bool
}

func newBasesCmd(g *globals) *cobra.Command {
	f := &basesFlags{}
	cmd := &cobra.Command{
		Use:   "bases",
		Short: "List the base colors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBases(cmd, g, f)
		},
	}
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "hex code format: hexCode6 or hexCode8 (default from config)")
	cmd.Flags().StringVarP(&f.output, "output", "o", outputText, "output format: text, json or yaml")
	cmd.Flags().BoolVar(&f.swatch, "swatch", false, "print a color swatch with text output")
	return cmd
}

func runBases(cmd *cobra.Command, g *globals, f *basesFlags) error {
	if err := validateOutput(f.output); err != nil {
		return err
	}
	format, err := resolveFormat(g, f.format)
	if err != nil {
		return err
	}

	bases := colorfamily.BaseColors()
	recs := make([]colorRecord, 0, len(bases))
	for _, b := range bases {
		c, err := colorfamily.New(string(b))
		if err != nil {
			return fmt.Errorf("base color %s: %w", b, err)
		}
		rec, err := newColorRecord(string(b), c, format)
		if err != nil {
			return err
		}
		recs = append(recs, rec)
	}

	if f.output == outputText {
		return writeColorTable(cmd.OutOrStdout(), recs, f.swatch)
	}
	return encode(cmd.OutOrStdout(), f.output, recs)
}

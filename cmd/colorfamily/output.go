package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jsvensson/colorfamily"
	"gopkg.in/yaml.v3"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

type rgbaRecord struct {
	R uint8   `json:"r" yaml:"r"`
	G uint8   `json:"g" yaml:"g"`
	B uint8   `json:"b" yaml:"b"`
	A float64 `json:"a" yaml:"a"`
}

type hslaRecord struct {
	H float64 `json:"h" yaml:"h"`
	S float64 `json:"s" yaml:"s"`
	L float64 `json:"l" yaml:"l"`
	A float64 `json:"a" yaml:"a"`
}

// colorRecord is the machine-readable form of a color.
type colorRecord struct {
	Name   string     `json:"name,omitempty" yaml:"name,omitempty"`
	Hex    string     `json:"hex" yaml:"hex"`
	RGBA   rgbaRecord `json:"rgba" yaml:"rgba"`
	HSLA   hslaRecord `json:"hsla" yaml:"hsla"`
	Styles []string   `json:"styles,omitempty" yaml:"styles,omitempty"`
}

func newColorRecord(name string, c *colorfamily.Color, format colorfamily.Format) (colorRecord, error) {
	hex, err := c.HexCode(format)
	if err != nil {
		return colorRecord{}, err
	}
	rgba, hsla := c.RGBA(), c.HSLA()
	return colorRecord{
		Name: name,
		Hex:  hex,
		RGBA: rgbaRecord{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A},
		HSLA: hslaRecord{H: hsla.H, S: hsla.S, L: hsla.L, A: hsla.A},
	}, nil
}

func validateOutput(output string) error {
	switch output {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("%w: unknown output %q (valid: %s, %s, %s)",
		colorfamily.ErrInvalidFormat, output, outputText, outputJSON, outputYAML)
}

// encode writes v as JSON or YAML.
func encode(w io.Writer, output string, v any) error {
	switch output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return validateOutput(output)
}

// swatch renders a block filled with the color. Terminals without color
// support get plain spaces.
func swatch(hex6 string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(hex6)).Render("    ")
}

// writeColor prints a single color as text, one notation per line.
func writeColor(w io.Writer, rec colorRecord, withSwatch bool) error {
	var b strings.Builder
	if withSwatch {
		b.WriteString(swatch(rgbaOf(rec).Hex()))
		b.WriteByte('\n')
	}
	rgba, hsla := rgbaOf(rec), hslaOf(rec)
	fmt.Fprintln(&b, rec.Hex)
	fmt.Fprintln(&b, rgba.String())
	fmt.Fprintln(&b, hsla.String())
	_, err := io.WriteString(w, b.String())
	return err
}

// writeColorTable prints named colors as a table.
func writeColorTable(w io.Writer, recs []colorRecord, withSwatch bool) error {
	headers := []string{"NAME", "HEX", "RGBA", "HSLA"}
	if withSwatch {
		headers = append([]string{""}, headers...)
	}

	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().PaddingRight(1)
		})
	for _, rec := range recs {
		row := []string{rec.Name, rec.Hex, rgbaOf(rec).String(), hslaOf(rec).String()}
		if withSwatch {
			row = append([]string{swatch(rgbaOf(rec).Hex())}, row...)
		}
		t.Row(row...)
	}

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func rgbaOf(rec colorRecord) colorfamily.RGBA {
	return colorfamily.RGBA{R: rec.RGBA.R, G: rec.RGBA.G, B: rec.RGBA.B, A: rec.RGBA.A}
}

func hslaOf(rec colorRecord) colorfamily.HSLA {
	return colorfamily.HSLA{H: rec.HSLA.H, S: rec.HSLA.S, L: rec.HSLA.L, A: rec.HSLA.A}
}

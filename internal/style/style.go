// Package style implements the randomized stylistic transforms. Each style
// keeps the hue of a color and redraws saturation and lightness from a band
// around a target value.
package style

import (
	"errors"
	"fmt"
	"maps"

	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/numeric"
)

// ErrUnsupported is returned for styles that are named but have no
// transform.
var ErrUnsupported = errors.New("unsupported style")

// Kind names a color style.
type Kind string

const (
	Pastel Kind = "pastel"
	Vivid  Kind = "vivid"
	Neon   Kind = "neon"

	// Placeholders without a transform.
	Metallic   Kind = "metallic"
	Monochrome Kind = "monochrome"
	EarthTone  Kind = "earth-tone"
)

var allKinds = []Kind{Pastel, Vivid, Neon, Metallic, Monochrome, EarthTone}

// Kinds returns every known style, implemented or not.
func Kinds() []Kind {
	return append([]Kind(nil), allKinds...)
}

// ParseKind maps a style name to a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range allKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown style %q", color.ErrInvalidFormat, s)
}

// Band describes where a style places saturation and lightness: each value
// is drawn uniformly from standard±jitter, in percent.
type Band struct {
	Saturation       int
	SaturationJitter int
	Lightness        int
	LightnessJitter  int
}

func (b Band) validate() error {
	if b.SaturationJitter < 0 || b.LightnessJitter < 0 {
		return fmt.Errorf("%w: jitter must not be negative", color.ErrOutOfRange)
	}
	if b.Saturation-b.SaturationJitter < 0 || b.Saturation+b.SaturationJitter > 100 {
		return fmt.Errorf("%w: saturation %d±%d leaves [0, 100]", color.ErrOutOfRange, b.Saturation, b.SaturationJitter)
	}
	if b.Lightness-b.LightnessJitter < 0 || b.Lightness+b.LightnessJitter > 100 {
		return fmt.Errorf("%w: lightness %d±%d leaves [0, 100]", color.ErrOutOfRange, b.Lightness, b.LightnessJitter)
	}
	return nil
}

var defaultBands = map[Kind]Band{
	Pastel: {Saturation: 60, SaturationJitter: 3, Lightness: 80, LightnessJitter: 4},
	Vivid:  {Saturation: 98, SaturationJitter: 2, Lightness: 50, LightnessJitter: 2},
	Neon:   {Saturation: 92, SaturationJitter: 2, Lightness: 60, LightnessJitter: 1},
}

var defaultTable = &Table{bands: defaultBands}

// Table maps implemented styles to their bands. A Table is immutable once
// built and may be shared.
type Table struct {
	bands map[Kind]Band
}

// Default returns the built-in table.
func Default() *Table {
	return defaultTable
}

// NewTable returns the built-in table with the given bands replacing the
// defaults of their styles.
func NewTable(overrides map[Kind]Band) (*Table, error) {
	return Default().With(overrides)
}

// With returns a copy of t with the given bands replacing its own. Every
// band must stay inside [0, 100] once jitter is applied, and only
// implemented styles may be overridden.
func (t *Table) With(overrides map[Kind]Band) (*Table, error) {
	bands := maps.Clone(t.bandMap())
	for kind, band := range overrides {
		if _, ok := bands[kind]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnsupported, kind)
		}
		if err := band.validate(); err != nil {
			return nil, fmt.Errorf("style %q: %w", kind, err)
		}
		bands[kind] = band
	}
	return &Table{bands: bands}, nil
}

// Band returns the band used for kind.
func (t *Table) Band(kind Kind) (Band, bool) {
	b, ok := t.bandMap()[kind]
	return b, ok
}

func (t *Table) bandMap() map[Kind]Band {
	if t == nil || t.bands == nil {
		return defaultBands
	}
	return t.bands
}

// Apply restyles hsla. The hue and alpha are kept; saturation and lightness
// are drawn from the band of kind. Both the new HSLA and its RGBA are
// returned so callers can swap them together.
func (t *Table) Apply(hsla color.HSLA, kind Kind, rng *numeric.Rand) (color.HSLA, color.RGBA, error) {
	band, ok := t.Band(kind)
	if !ok {
		return color.HSLA{}, color.RGBA{}, fmt.Errorf("%w: %q", ErrUnsupported, kind)
	}

	src := hsla
	s := rng.Around(band.Saturation, band.SaturationJitter)
	l := rng.Around(band.Lightness, band.LightnessJitter)

	styled, err := color.NewHSLA(src.H, float64(s), float64(l), src.A)
	if err != nil {
		return color.HSLA{}, color.RGBA{}, fmt.Errorf("applying %s: %w", kind, err)
	}
	rgba, err := color.HSLAToRGBA(styled)
	if err != nil {
		return color.HSLA{}, color.RGBA{}, fmt.Errorf("applying %s: %w", kind, err)
	}
	return styled, rgba, nil
}

package colorfamily

import (
	"fmt"

	"github.com/jsvensson/colorfamily/internal/config"
	"github.com/jsvensson/colorfamily/internal/parser"
)

// ErrInvalidPalette is returned when a palette file fails to parse or
// evaluate.
var ErrInvalidPalette = parser.ErrInvalidPalette

// Meta holds palette metadata.
type Meta struct {
	Name   string
	Author string
	// Seed is the seed from the file, nil when it sets none.
	Seed *uint64
}

// PaletteEntry is a named color of a palette.
type PaletteEntry struct {
	Name  string
	Color *Color
}

// Palette is an evaluated palette file. Entries keep their source order.
type Palette struct {
	Meta    Meta
	Entries []PaletteEntry
}

// LoadPalette reads and evaluates the palette file at path.
//
// WithSeed overrides the seed of the file's meta block and WithStyles sets
// the bands the file's style blocks are applied on top of. The returned
// colors share the palette's random source and styles, so restyling them
// stays reproducible for seeded palettes.
func LoadPalette(path string, opts ...Option) (*Palette, error) {
	res, err := parser.Parse(path, paletteOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	log.Debugf("evaluated %s: %d entries", path, len(res.Entries))
	return newPalette(res)
}

// ParsePalette evaluates palette file contents. filename is used in error
// messages.
func ParsePalette(src []byte, filename string, opts ...Option) (*Palette, error) {
	res, err := parser.ParseSource(src, filename, paletteOptions(opts))
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}
	return newPalette(res)
}

func paletteOptions(opts []Option) parser.Options {
	// Options are applied without defaults so that an unset seed falls
	// through to the file's meta block.
	var c Color
	for _, opt := range opts {
		opt(&c)
	}
	return parser.Options{Rand: c.rng, Styles: c.styles}
}

func newPalette(res *parser.Result) (*Palette, error) {
	p := &Palette{
		Meta: Meta{
			Name:   res.Meta.Name,
			Author: res.Meta.Author,
		},
	}
	if res.Meta.Seed != nil {
		seed, err := config.ParseSeed(*res.Meta.Seed)
		if err != nil {
			return nil, err
		}
		p.Meta.Seed = &seed
	}

	for _, e := range res.Entries {
		c, err := FromRGBA(e.Color, withRand(res.Rand), WithStyles(res.Styles))
		if err != nil {
			return nil, fmt.Errorf("palette.%s: %w", e.Name, err)
		}
		p.Entries = append(p.Entries, PaletteEntry{Name: e.Name, Color: c})
	}
	return p, nil
}

// Lookup returns the color named name.
func (p *Palette) Lookup(name string) (*Color, bool) {
	for _, e := range p.Entries {
		if e.Name == name {
			return e.Color, true
		}
	}
	return nil, false
}

// Colors returns the palette keyed by entry name.
func (p *Palette) Colors() map[string]*Color {
	m := make(map[string]*Color, len(p.Entries))
	for _, e := range p.Entries {
		m[e.Name] = e.Color
	}
	return m
}

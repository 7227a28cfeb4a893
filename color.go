// Package colorfamily represents colors as hex codes, RGBA and HSLA and
// restyles them into pastel, vivid and neon variants.
//
//	c, err := colorfamily.New("red")
//	if err != nil {
//		return err
//	}
//	hex, _ := c.Pastel().HexCode(colorfamily.HexCode6)
package colorfamily

import (
	"github.com/jsvensson/colorfamily/internal/color"
	"github.com/jsvensson/colorfamily/internal/numeric"
	"github.com/jsvensson/colorfamily/internal/style"
)

var (
	ErrInvalidFormat        = color.ErrInvalidFormat
	ErrOutOfRange           = color.ErrOutOfRange
	ErrInvalidConfiguration = numeric.ErrInvalidConfiguration
	ErrUnsupportedStyle     = style.ErrUnsupported
)

// Format selects the shape of a rendered hex code.
type Format = color.Format

const (
	HexCode6 = color.HexCode6
	HexCode8 = color.HexCode8
)

type (
	// RGBA is a color with 8-bit channels and an alpha fraction.
	RGBA = color.RGBA
	// HSLA is a color as hue (degrees), saturation and lightness (percent)
	// and alpha.
	HSLA = color.HSLA
	// BaseColor is one of the named base hues.
	BaseColor = color.Base
	// StyleKind names a color style.
	StyleKind = style.Kind
	// Band is the saturation/lightness target of a style.
	Band = style.Band
	// StyleTable maps styles to bands.
	StyleTable = style.Table
)

const (
	Red    = color.Red
	Orange = color.Orange
	Yellow = color.Yellow
	Green  = color.Green
	Blue   = color.Blue
	Indigo = color.Indigo
	Purple = color.Purple
)

const (
	Pastel     = style.Pastel
	Vivid      = style.Vivid
	Neon       = style.Neon
	Metallic   = style.Metallic
	Monochrome = style.Monochrome
	EarthTone  = style.EarthTone
)

// BaseColors returns the base hues in spectral order.
func BaseColors() []BaseColor {
	return color.Bases()
}

// ParseFormat maps "hexCode6" or "hexCode8" to a Format. The empty string
// selects HexCode6.
func ParseFormat(s string) (Format, error) {
	return color.ParseFormat(s)
}

// ParseStyleKind maps a style name such as "pastel" to a StyleKind.
func ParseStyleKind(s string) (StyleKind, error) {
	return style.ParseKind(s)
}

// NewStyleTable returns the default style table with the given bands
// replacing the defaults.
func NewStyleTable(bands map[StyleKind]Band) (*StyleTable, error) {
	return style.NewTable(bands)
}

// Color holds a color as RGBA and HSLA. Both always describe the same
// color: every change replaces them together.
//
// A Color is not safe for concurrent use.
type Color struct {
	rgba   color.RGBA
	hsla   color.HSLA
	rng    *numeric.Rand
	styles *style.Table
	err    error
}

// Option configures a Color.
type Option func(*Color)

// WithSeed makes the random choices of a Color reproducible.
func WithSeed(seed uint64) Option {
	return withRand(numeric.NewSeededRand(seed))
}

// WithStyles replaces the style bands used by the transforms.
func WithStyles(t *StyleTable) Option {
	return func(c *Color) {
		c.styles = t
	}
}

func withRand(r *numeric.Rand) Option {
	return func(c *Color) {
		c.rng = r
	}
}

// New creates a Color from input, which is either empty (a random opaque
// color), a base color name such as "red", or a 6- or 8-digit hex code.
// Anything else fails with ErrInvalidFormat.
func New(input string, opts ...Option) (*Color, error) {
	c := newColor(opts)

	var (
		rgba color.RGBA
		err  error
	)
	if input == "" {
		rgba = randomRGBA(c.rng)
	} else if rgba, err = color.Resolve(input); err != nil {
		return nil, err
	}

	if err := c.set(rgba); err != nil {
		return nil, err
	}
	return c, nil
}

// From is an alias for New.
func From(input string, opts ...Option) (*Color, error) {
	return New(input, opts...)
}

// Random returns a random opaque color.
// It panics if the generated color fails to convert, which an opaque
// color with in-range channels never does.
func Random(opts ...Option) *Color {
	c, err := New("", opts...)
	if err != nil {
		panic("colorfamily: random color: " + err.Error())
	}
	return c
}

// FromRGBA creates a Color from an RGBA value, validating it first.
func FromRGBA(rgba RGBA, opts ...Option) (*Color, error) {
	valid, err := color.NewRGBA(int(rgba.R), int(rgba.G), int(rgba.B), rgba.A)
	if err != nil {
		return nil, err
	}
	c := newColor(opts)
	if err := c.set(valid); err != nil {
		return nil, err
	}
	return c, nil
}

func newColor(opts []Option) *Color {
	c := &Color{}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = numeric.NewRand()
	}
	if c.styles == nil {
		c.styles = style.Default()
	}
	return c
}

func randomRGBA(rng *numeric.Rand) color.RGBA {
	return color.RGBA{
		R: uint8(rng.Int(255, 0)),
		G: uint8(rng.Int(255, 0)),
		B: uint8(rng.Int(255, 0)),
		A: 1,
	}
}

func (c *Color) set(rgba color.RGBA) error {
	hsla, err := color.RGBAToHSLA(rgba)
	if err != nil {
		return err
	}
	c.rgba, c.hsla = rgba, hsla
	return nil
}

// RGBA returns the color as RGBA.
func (c *Color) RGBA() RGBA {
	return c.rgba
}

// HSLA returns the color as HSLA.
func (c *Color) HSLA() HSLA {
	return c.hsla
}

// HexCode renders the color as a lowercase hex code. The empty format
// renders HexCode6.
func (c *Color) HexCode(format Format) (string, error) {
	return color.RGBAToHex(c.rgba, format)
}

// String returns the color as an 8-digit hex code.
func (c *Color) String() string {
	return c.rgba.HexAlpha()
}

// Pastel restyles the color into a soft, light tone and returns c.
func (c *Color) Pastel() *Color {
	return c.chain(style.Pastel)
}

// Vivid restyles the color into a saturated mid tone and returns c.
func (c *Color) Vivid() *Color {
	return c.chain(style.Vivid)
}

// Neon restyles the color into a bright, saturated tone and returns c.
func (c *Color) Neon() *Color {
	return c.chain(style.Neon)
}

// Err returns the first error hit by Pastel, Vivid or Neon. Once set, those
// methods leave the color unchanged.
func (c *Color) Err() error {
	return c.err
}

func (c *Color) chain(kind style.Kind) *Color {
	if c.err != nil {
		return c
	}
	if err := c.Apply(kind); err != nil {
		c.err = err
	}
	return c
}

// Apply restyles the color with the given style. On error the color is
// left unchanged.
func (c *Color) Apply(kind StyleKind) error {
	hsla, rgba, err := c.styles.Apply(c.hsla, kind, c.rng)
	if err != nil {
		return err
	}
	c.rgba, c.hsla = rgba, hsla
	return nil
}

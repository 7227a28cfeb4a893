package color

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/jsvensson/colorfamily/internal/numeric"
)

var (
	// ErrInvalidFormat is returned for malformed hex codes, unknown output
	// formats and inputs that name no known color.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrOutOfRange is returned when a component lies outside its domain.
	ErrOutOfRange = errors.New("out of range")
)

// RGBA represents a color in the red/green/blue/alpha model. R, G and B are
// 8-bit channels; A is the opacity in [0, 1].
//
// Use NewRGBA to build a validated value from untrusted input.
type RGBA struct {
	R, G, B uint8
	A       float64
}

// HSLA represents a color in the hue/saturation/lightness/alpha model.
// H is in degrees [0, 360), S and L are percentages [0, 100], A is in [0, 1].
type HSLA struct {
	H, S, L, A float64
}

// NewRGBA validates the given components and returns the RGBA they describe.
func NewRGBA(r, g, b int, a float64) (RGBA, error) {
	channels := []struct {
		name  string
		value int
	}{
		{"red", r},
		{"green", g},
		{"blue", b},
	}
	for _, ch := range channels {
		if ch.value < 0 || ch.value > 255 {
			return RGBA{}, fmt.Errorf("%w: %s channel %d not in [0, 255]", ErrOutOfRange, ch.name, ch.value)
		}
	}
	if err := checkAlpha(a); err != nil {
		return RGBA{}, err
	}
	return RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: a}, nil
}

// NewHSLA validates the given components and returns the HSLA they describe.
func NewHSLA(h, s, l, a float64) (HSLA, error) {
	if !(h >= 0 && h < 360) {
		return HSLA{}, fmt.Errorf("%w: hue %v not in [0, 360)", ErrOutOfRange, h)
	}
	if !inPercent(s) {
		return HSLA{}, fmt.Errorf("%w: saturation %v not in [0, 100]", ErrOutOfRange, s)
	}
	if !inPercent(l) {
		return HSLA{}, fmt.Errorf("%w: lightness %v not in [0, 100]", ErrOutOfRange, l)
	}
	if err := checkAlpha(a); err != nil {
		return HSLA{}, err
	}
	return HSLA{H: h, S: s, L: l, A: a}, nil
}

// The comparisons are written so that NaN fails them.
func inPercent(v float64) bool {
	return v >= 0 && v <= 100
}

func checkAlpha(a float64) error {
	if !(a >= 0 && a <= 1) {
		return fmt.Errorf("%w: alpha %v not in [0, 1]", ErrOutOfRange, a)
	}
	return nil
}

// Hex returns the color as a 6-digit hex code, e.g. "#eb6f92".
func (c RGBA) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HexAlpha returns the color as an 8-digit hex code, e.g. "#eb6f92ff".
func (c RGBA) HexAlpha() string {
	return fmt.Sprintf("%s%02x", c.Hex(), alphaByte(c.A))
}

// String returns the color in rgba() function notation.
func (c RGBA) String() string {
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", c.R, c.G, c.B, trimFloat(c.A, 3))
}

// String returns the color in hsla() function notation.
func (c HSLA) String() string {
	return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)",
		trimFloat(c.H, 2), trimFloat(c.S, 2), trimFloat(c.L, 2), trimFloat(c.A, 3))
}

// alphaByte quantizes an alpha fraction to a byte: round(a*255), clamped.
func alphaByte(a float64) uint8 {
	if math.IsNaN(a) {
		return 0
	}
	return uint8(numeric.Clamp(math.Round(a*255), 0, 255))
}

// trimFloat rounds v to the given number of decimals and drops trailing zeros.
func trimFloat(v float64, decimals int) string {
	p := math.Pow(10, float64(decimals))
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}

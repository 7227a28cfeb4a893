package color

import (
	"fmt"
	"slices"
)

// Base is one of the named base hues.
type Base string

const (
	Red    Base = "red"
	Orange Base = "orange"
	Yellow Base = "yellow"
	Green  Base = "green"
	Blue   Base = "blue"
	Indigo Base = "indigo"
	Purple Base = "purple"
)

var baseOrder = []Base{Red, Orange, Yellow, Green, Blue, Indigo, Purple}

var baseCodes = map[Base]string{
	Red:    "#FF0000FF",
	Orange: "#FFA500FF",
	Yellow: "#FFFF00FF",
	Green:  "#008000FF",
	Blue:   "#0000FFFF",
	Indigo: "#4B0082FF",
	Purple: "#800080FF",
}

// Bases returns the base hues in spectral order.
func Bases() []Base {
	return slices.Clone(baseOrder)
}

// IsBase reports whether s names a base hue. Names are lowercase.
func IsBase(s string) bool {
	_, ok := baseCodes[Base(s)]
	return ok
}

// HexCode returns the canonical 8-digit hex code for b.
func (b Base) HexCode() (string, bool) {
	code, ok := baseCodes[b]
	return code, ok
}

// Resolve converts a base hue name or a hex code to RGBA.
func Resolve(s string) (RGBA, error) {
	if code, ok := Base(s).HexCode(); ok {
		return HexToRGBA(code)
	}
	if IsHexCode(s) {
		return HexToRGBA(s)
	}
	return RGBA{}, fmt.Errorf("%w: %q is neither a base color nor a hex code", ErrInvalidFormat, s)
}

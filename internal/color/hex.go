package color

import (
	"fmt"
	"regexp"
)

// Format selects the shape of a rendered hex code.
type Format string

const (
	// HexCode6 renders "#rrggbb" and drops alpha.
	HexCode6 Format = "hexCode6"
	// HexCode8 renders "#rrggbbaa".
	HexCode8 Format = "hexCode8"
)

var hexCodePattern = regexp.MustCompile(`^#([0-9A-Fa-f]{6}|[0-9A-Fa-f]{8})$`)

// IsHexCode reports whether s is a 6- or 8-digit hex code with a leading '#'.
// Digits are case-insensitive.
func IsHexCode(s string) bool {
	return hexCodePattern.MatchString(s)
}

// IsHexCode6 reports whether s is an opaque "#rrggbb" hex code.
func IsHexCode6(s string) bool {
	return len(s) == 1+6 && IsHexCode(s)
}

// IsHexCode8 reports whether s is an "#rrggbbaa" hex code.
func IsHexCode8(s string) bool {
	return len(s) == 1+8 && IsHexCode(s)
}

// ParseFormat maps a format name to a Format. The empty string selects
// HexCode6.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", HexCode6:
		return HexCode6, nil
	case HexCode8:
		return HexCode8, nil
	}
	return "", fmt.Errorf("%w: unknown hex code format %q (valid: %s, %s)", ErrInvalidFormat, s, HexCode6, HexCode8)
}

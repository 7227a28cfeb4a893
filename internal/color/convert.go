package color

import (
	"fmt"
	"math"

	"github.com/jsvensson/colorfamily/internal/numeric"
)

// HexToRGBA parses a 6- or 8-digit hex code. Six digits yield an opaque
// color; the last pair of an 8-digit code is the alpha byte.
func HexToRGBA(hex string) (RGBA, error) {
	if !IsHexCode(hex) {
		return RGBA{}, fmt.Errorf("%w: %q is not a 6 or 8 digit hex code", ErrInvalidFormat, hex)
	}

	digits := hex[1:]
	var r, g, b uint8
	if _, err := fmt.Sscanf(digits[:6], "%02x%02x%02x", &r, &g, &b); err != nil {
		return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, hex, err)
	}

	a := 1.0
	if IsHexCode8(hex) {
		var raw uint8
		if _, err := fmt.Sscanf(digits[6:], "%02x", &raw); err != nil {
			return RGBA{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, hex, err)
		}
		var err error
		if a, err = numeric.Normalize(float64(raw), 255, 0); err != nil {
			return RGBA{}, err
		}
	}

	return NewRGBA(int(r), int(g), int(b), a)
}

// RGBAToHex renders c as a lowercase hex code in the given format. The empty
// format renders HexCode6. Alpha is quantized with round(a*255) and clamped.
func RGBAToHex(c RGBA, format Format) (string, error) {
	f, err := ParseFormat(string(format))
	if err != nil {
		return "", err
	}
	if f == HexCode8 {
		return c.HexAlpha(), nil
	}
	return c.Hex(), nil
}

// RGBAToHSLA converts c to the HSL model. Gray input (all channels equal)
// has hue 0 and saturation 0. Alpha passes through unchanged.
func RGBAToHSLA(c RGBA) (HSLA, error) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	hi := max(r, g, b)
	lo := min(r, g, b)
	delta := hi - lo
	l := (hi + lo) / 2

	var h, s float64
	if delta != 0 {
		s = delta / (1 - math.Abs(2*l-1))

		// First match wins when two channels share the maximum.
		switch hi {
		case r:
			h = math.Mod((g-b)/delta, 6)
		case g:
			h = (b-r)/delta + 2
		default:
			h = (r-g)/delta + 4
		}
		h *= 60
		if h < 0 {
			h += 360
		}
		if h >= 360 {
			h -= 360
		}
	}

	return NewHSLA(h, numeric.Clamp(s*100, 0, 100), numeric.Clamp(l*100, 0, 100), c.A)
}

// HSLAToRGBA converts c back to 8-bit channels. Each channel is rounded to
// the nearest integer and clamped to [0, 255]. Alpha passes through unchanged.
func HSLAToRGBA(c HSLA) (RGBA, error) {
	if _, err := NewHSLA(c.H, c.S, c.L, c.A); err != nil {
		return RGBA{}, err
	}

	s, err := numeric.Normalize(c.S, 100, 0)
	if err != nil {
		return RGBA{}, err
	}
	l, err := numeric.Normalize(c.L, 100, 0)
	if err != nil {
		return RGBA{}, err
	}

	chroma := (1 - math.Abs(2*l-1)) * s
	x := chroma * (1 - math.Abs(math.Mod(c.H/60, 2)-1))
	m := l - chroma/2

	var r, g, b float64
	switch {
	case c.H < 60:
		r, g, b = chroma, x, 0
	case c.H < 120:
		r, g, b = x, chroma, 0
	case c.H < 180:
		r, g, b = 0, chroma, x
	case c.H < 240:
		r, g, b = 0, x, chroma
	case c.H < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	return NewRGBA(toChannel(r+m), toChannel(g+m), toChannel(b+m), c.A)
}

func toChannel(v float64) int {
	return numeric.Clamp(int(math.Round(v*255)), 0, 255)
}

package color

import "github.com/jsvensson/colorfamily/internal/numeric"

// Lighten raises the HSL lightness of c by amount, given as a fraction of the
// full scale (0.1 adds ten points). The result saturates at white.
func Lighten(c RGBA, amount float64) (RGBA, error) {
	return shiftLightness(c, amount*100)
}

// Darken lowers the HSL lightness of c by amount, given as a fraction of the
// full scale. The result saturates at black.
func Darken(c RGBA, amount float64) (RGBA, error) {
	return shiftLightness(c, -amount*100)
}

func shiftLightness(c RGBA, delta float64) (RGBA, error) {
	hsla, err := RGBAToHSLA(c)
	if err != nil {
		return RGBA{}, err
	}
	hsla.L = numeric.Clamp(hsla.L+delta, 0, 100)
	return HSLAToRGBA(hsla)
}

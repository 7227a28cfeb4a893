// Package numeric holds the small numeric helpers the color code is built
// on: clamping, linear normalization and bounded random integers.
package numeric

import (
	"cmp"
	"errors"
	"fmt"
	"math/rand/v2"
)

// ErrInvalidConfiguration is returned when a numeric range is degenerate.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Clamp limits value to the closed range [lo, hi].
func Clamp[T cmp.Ordered](value, lo, hi T) T {
	return min(max(value, lo), hi)
}

// Normalize linearly rescales value from [lo, hi] to [0, 1].
func Normalize(value, hi, lo float64) (float64, error) {
	if hi <= lo {
		return 0, fmt.Errorf("%w: maximum %v must be greater than minimum %v", ErrInvalidConfiguration, hi, lo)
	}
	return (value - lo) / (hi - lo), nil
}

// Rand draws bounded random integers. It is not safe for concurrent use.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a Rand seeded from the runtime's random source.
func NewRand() *Rand {
	return &Rand{r: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededRand returns a Rand whose sequence is fully determined by seed.
func NewSeededRand(seed uint64) *Rand {
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Int returns a uniformly distributed integer in [lo, hi]. The bounds may be
// given in either order.
func (r *Rand) Int(hi, lo int) int {
	if hi < lo {
		hi, lo = lo, hi
	}
	return lo + r.r.IntN(hi-lo+1)
}

// Around returns a uniformly distributed integer in
// [center-offset, center+offset].
func (r *Rand) Around(center, offset int) int {
	if offset < 0 {
		offset = -offset
	}
	return r.Int(center+offset, center-offset)
}

// Package draw implements weighted random selection: each outcome is picked
// with probability proportional to its weight.
package draw

import (
	"errors"
	"math/rand"
)

var ErrNoOutcomes = errors.New("no outcomes available")

// Source yields uniform random values in [0, 1). The default is the shared
// math/rand source, which is safe for concurrent use; tests substitute a
// deterministic one.
type Source func() float64

// Default is the process-wide random source.
func Default() float64 { return rand.Float64() }

// Pick selects an index into weights with probability weight/total.
//
// It draws r uniform on [0, W) where W is the total weight, then walks the
// slice in order accumulating weight and returns the first index whose
// cumulative weight exceeds r. Callers that need a reproducible walk order
// must order the slice themselves (the spin flow passes symbols ascending
// by id).
func Pick(src Source, weights []int64) (int, error) {
	var total int64
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}

	if total <= 0 {
		return 0, ErrNoOutcomes
	}

	r := src() * float64(total)

	var accum float64
	for i, w := range weights {
		if w <= 0 {
			continue
		}

		accum += float64(w)
		if r < accum {
			return i, nil
		}
	}

	// Unreachable for a source on [0, 1); guards a source returning exactly 1.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i, nil
		}
	}

	return 0, ErrNoOutcomes
}

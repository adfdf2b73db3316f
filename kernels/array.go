package kernels

import (
	"github.com/hupe1980/flop"
	"gonum.org/v1/gonum/floats"
)

// Float64Source supplies uniform values in [0, 1).
// *rand.Rand from math/rand and math/rand/v2 satisfy it.
type Float64Source interface {
	Float64() float64
}

// SampleDiscrete draws an index from the categorical distribution dist.
//
// It scans dist subtracting each probability from a single uniform draw and
// returns the first index at which the remainder reaches zero. If the scan is
// exhausted (dist sums to less than the draw) it returns 0. An empty dist
// panics with a *flop.PreconditionError.
func SampleDiscrete(src Float64Source, dist []float64) int {
	if len(dist) == 0 {
		flop.PanicPrecondition("SampleDiscrete", "empty distribution")
	}
	p := src.Float64()
	for i, d := range dist {
		p -= d
		if p <= 0 {
			return i
		}
	}
	return 0
}

// AddInPlace computes acc[i] += scale*by[i] + offset, leaving entries whose
// increment is exactly zero untouched.
func AddInPlace(acc, by []float64, scale, offset float64) {
	checkLen("AddInPlace", acc, by)
	for i := range acc {
		if inc := scale*by[i] + offset; inc != 0 {
			acc[i] += inc
		}
	}
}

// MultiplyInPlace computes acc[i] *= by[i].
func MultiplyInPlace(acc, by []float64) {
	checkLen("MultiplyInPlace", acc, by)
	floats.Mul(acc, by)
}

func checkLen(op string, acc, by []float64) {
	if len(acc) != len(by) {
		flop.PanicPrecondition(op, "length mismatch: %d != %d", len(acc), len(by))
	}
}

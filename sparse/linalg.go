package sparse

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Norm returns the Euclidean norm of the populated entries.
func (v *Vector) Norm() float64 {
	if v.count == 0 {
		return 0
	}
	return floats.Norm(v.values[:v.count], 2)
}

// DiffNorm returns the Euclidean norm of v - other, counting keys that are
// populated in only one of the operands.
func (v *Vector) DiffNorm(other *Vector) float64 {
	if other == nil {
		return v.Norm()
	}
	var sum float64
	for i := range v.count {
		d := v.values[i] - other.Get(v.keys[i])
		sum += d * d
	}
	for i := range other.count {
		if _, ok := v.index[other.keys[i]]; !ok {
			sum += other.values[i] * other.values[i]
		}
	}
	return math.Sqrt(sum)
}

// ScaleInPlace multiplies every value by factor and returns v.
// Entries that become exactly 0.0 (factor 0, underflow) are removed.
func (v *Vector) ScaleInPlace(factor float64) *Vector {
	if v.count == 0 {
		return v
	}
	floats.Scale(factor, v.values[:v.count])
	v.dropZeros()
	return v
}

// NormalizeInPlace scales v to unit norm. A zero vector is left unchanged.
func (v *Vector) NormalizeInPlace() *Vector {
	if n := v.Norm(); n > 0 {
		v.ScaleInPlace(1 / n)
	}
	return v
}

// Normalized returns a unit-norm copy of v.
func (v *Vector) Normalized() *Vector {
	return v.Clone().NormalizeInPlace()
}

// DotDense returns the dot product with a dense slice indexed by key.
// Every populated key must be a valid index into dense.
func (v *Vector) DotDense(dense []float64) float64 {
	if len(dense) == 0 {
		return 0
	}
	var r float64
	for i := range v.count {
		r += v.values[i] * dense[v.keys[i]]
	}
	return r
}

// DotDense32 is DotDense for float32 weights.
func (v *Vector) DotDense32(dense []float32) float64 {
	if len(dense) == 0 {
		return 0
	}
	var r float64
	for i := range v.count {
		r += v.values[i] * float64(dense[v.keys[i]])
	}
	return r
}

// DotSparse returns the dot product with other, iterating the smaller
// operand and probing the larger one.
func (v *Vector) DotSparse(other *Vector) float64 {
	if other == nil || other.count == 0 || v.count == 0 {
		return 0
	}
	if v.count > other.count {
		return other.probe(v)
	}
	return v.probe(other)
}

func (v *Vector) probe(other *Vector) float64 {
	var r float64
	for i := range v.count {
		if j, ok := other.index[v.keys[i]]; ok {
			r += v.values[i] * other.values[j]
		}
	}
	return r
}

// DotMap returns the dot product with a plain key/value map.
func (v *Vector) DotMap(m map[int64]float64) float64 {
	if len(m) == 0 {
		return 0
	}
	var r float64
	for i := range v.count {
		r += v.values[i] * m[v.keys[i]]
	}
	return r
}

// Dot returns the dot product of a and b, iterating the smaller operand.
func Dot(a, b *Vector) float64 {
	if a == nil || b == nil {
		return 0
	}
	return a.DotSparse(b)
}

func (v *Vector) dropZeros() {
	removed := false
	for i := v.count - 1; i >= 0; i-- {
		if v.values[i] == 0.0 {
			removed = v.rawRemove(v.keys[i]) || removed
		}
	}
	if removed {
		v.maybeShrink()
	}
}

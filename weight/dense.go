package weight

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/hupe1980/flop"
	"github.com/hupe1980/flop/sparse"
	"gonum.org/v1/gonum/floats"
)

// Compile time check.
var _ Vector = (*Dense)(nil)

// Dense is a fixed-dimension weight vector over a float64 slice. Non-zero
// positions are tracked in a bitset so ForEach and ToData skip zeros.
//
// Keys outside [0, Dimension) read as 0.0; Inc on them panics with a
// *flop.PreconditionError.
type Dense struct {
	values []float64
	active *bitset.BitSet
}

// NewDense creates a zero vector of dimension dim.
func NewDense(dim int) *Dense {
	dim = max(dim, 0)
	return &Dense{
		values: make([]float64, dim),
		active: bitset.New(uint(dim)),
	}
}

// DenseFrom creates a vector holding a copy of values.
func DenseFrom(values []float64) *Dense {
	d := NewDense(len(values))
	copy(d.values, values)
	for i, x := range values {
		if x != 0 {
			d.active.Set(uint(i))
		}
	}
	return d
}

// Dimension implements Vector.
func (d *Dense) Dimension() int64 { return int64(len(d.values)) }

// ActiveDimension implements Vector.
func (d *Dense) ActiveDimension() int64 { return int64(d.active.Count()) }

// At implements Vector.
func (d *Dense) At(key int64) float64 {
	if key < 0 || key >= int64(len(d.values)) {
		return 0
	}
	return d.values[key]
}

// Inc implements Vector.
func (d *Dense) Inc(key int64, delta float64) {
	d.checkKey("Inc", key)
	d.set(key, d.values[key]+delta)
}

// Put stores value at key.
func (d *Dense) Put(key int64, value float64) {
	d.checkKey("Put", key)
	d.set(key, value)
}

// DotDense implements Vector. dense must have the same dimension.
func (d *Dense) DotDense(dense []float64) float64 {
	if len(dense) != len(d.values) {
		flop.PanicPrecondition("DotDense", "length mismatch: %d != %d", len(dense), len(d.values))
	}
	return floats.Dot(d.values, dense)
}

// DotSparse implements Vector. Keys of other outside the dimension
// contribute nothing.
func (d *Dense) DotSparse(other *sparse.Vector) float64 {
	if other == nil {
		return 0
	}
	return sparse.Reduce(other, 0.0, func(acc float64, k int64, x float64) float64 {
		return acc + x*d.At(k)
	})
}

// ForEach implements Vector. Positions are visited in ascending key order.
// fn must not change which positions are active.
func (d *Dense) ForEach(fn func(key int64, value float64)) {
	initial := d.active.Count()
	for i, ok := d.active.NextSet(0); ok; i, ok = d.active.NextSet(i + 1) {
		fn(int64(i), d.values[i])
	}
	if n := d.active.Count(); n != initial {
		flop.PanicInvariant("ForEach", "active count changed from %d to %d during traversal", initial, n)
	}
}

// ToData implements Vector.
func (d *Dense) ToData() map[int64]float64 {
	m := make(map[int64]float64, d.active.Count())
	d.ForEach(func(k int64, x float64) { m[k] = x })
	return m
}

// AddSparse adds scale*other into d. Keys of other must lie inside the
// dimension.
func (d *Dense) AddSparse(other *sparse.Vector, scale float64) {
	for k, x := range other.All() {
		d.Inc(k, scale*x)
	}
}

// Scale multiplies every position by f.
func (d *Dense) Scale(f float64) {
	floats.Scale(f, d.values)
	if f == 0 {
		d.active.ClearAll()
		return
	}
	for i, ok := d.active.NextSet(0); ok; i, ok = d.active.NextSet(i + 1) {
		if d.values[i] == 0 {
			d.active.Clear(i)
		}
	}
}

// Norm returns the Euclidean norm.
func (d *Dense) Norm() float64 {
	if len(d.values) == 0 {
		return 0
	}
	return floats.Norm(d.values, 2)
}

// Values returns a copy of the underlying slice.
func (d *Dense) Values() []float64 {
	out := make([]float64, len(d.values))
	copy(out, d.values)
	return out
}

func (d *Dense) String() string {
	return fmt.Sprintf("weight.Dense{dim=%d active=%d}", len(d.values), d.active.Count())
}

func (d *Dense) set(key int64, value float64) {
	d.values[key] = value
	if value == 0 {
		d.active.Clear(uint(key))
	} else {
		d.active.Set(uint(key))
	}
}

func (d *Dense) checkKey(op string, key int64) {
	if key < 0 || key >= int64(len(d.values)) {
		flop.PanicPrecondition(op, "key %d outside dimension %d", key, len(d.values))
	}
}

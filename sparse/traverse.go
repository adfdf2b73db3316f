package sparse

import (
	"iter"

	"github.com/hupe1980/flop"
)

// ForEach calls fn for every populated entry in storage order.
//
// fn must not add or remove entries of v; a change in the populated count is
// detected after the traversal and panics with a *flop.InvariantError.
func (v *Vector) ForEach(fn func(key int64, value float64)) {
	initial := v.count
	for i := 0; i < initial && i < v.count; i++ {
		fn(v.keys[i], v.values[i])
	}
	v.checkCount("ForEach", initial)
}

// All returns an iterator over the populated entries in storage order,
// with the same mutation check as ForEach.
func (v *Vector) All() iter.Seq2[int64, float64] {
	return func(yield func(int64, float64) bool) {
		initial := v.count
		for i := 0; i < initial && i < v.count; i++ {
			if !yield(v.keys[i], v.values[i]) {
				break
			}
		}
		v.checkCount("All", initial)
	}
}

// Reduce folds fn over the populated entries of v, starting from init.
func Reduce[A any](v *Vector, init A, fn func(acc A, key int64, value float64) A) A {
	initial := v.count
	acc := init
	for i := 0; i < initial && i < v.count; i++ {
		acc = fn(acc, v.keys[i], v.values[i])
	}
	v.checkCount("Reduce", initial)
	return acc
}

// MapKeys returns a new vector with every key replaced by fn(key, value).
// Keys that collide keep the value written last in storage order.
func (v *Vector) MapKeys(fn func(key int64, value float64) int64) *Vector {
	out := New(WithCapacity(v.count), WithGrowthFactor(v.factor()), WithDimension(v.dim))
	v.ForEach(func(k int64, val float64) {
		out.rawPut(fn(k, val), val)
	})
	return out
}

// MapValues returns a new vector with every value replaced by fn(key, value).
// Entries mapped to 0.0 are dropped.
func (v *Vector) MapValues(fn func(key int64, value float64) float64) *Vector {
	out := New(WithCapacity(v.count), WithGrowthFactor(v.factor()), WithDimension(v.dim))
	v.ForEach(func(k int64, val float64) {
		out.rawPut(k, fn(k, val))
	})
	return out
}

func (v *Vector) checkCount(op string, initial int) {
	if v.count != initial {
		flop.PanicInvariant(op, "populated count changed from %d to %d during traversal", initial, v.count)
	}
}

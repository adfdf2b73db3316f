package weight

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/hupe1980/flop/sparse"
)

// Vector is the contract shared by weight vectors.
type Vector interface {
	// Dimension returns the size of the key space.
	Dimension() int64
	// ActiveDimension returns the number of non-zero positions.
	ActiveDimension() int64
	// At returns the value at key, 0.0 if inactive.
	At(key int64) float64
	// Inc adds delta to the value at key.
	Inc(key int64, delta float64)
	// DotDense returns the dot product with a dense slice indexed by key.
	DotDense(dense []float64) float64
	// DotSparse returns the dot product with a sparse vector.
	DotSparse(other *sparse.Vector) float64
	// ForEach calls fn for every active position.
	ForEach(fn func(key int64, value float64))
	// ToData returns the active positions as a map.
	ToData() map[int64]float64
}

// ObjectVector is a Vector that also indexes objects of type T.
type ObjectVector[T comparable] interface {
	Vector
	// AtObject returns the weight of o, 0.0 if o is unknown.
	AtObject(o T) float64
	// IncObject adds delta to the weight of o.
	IncObject(o T, delta float64)
	// DotObjects sums the weights of objs, counting repeats.
	DotObjects(objs []T) float64
	// Index converts objs to a sparse vector of feature id to occurrence count.
	Index(objs []T) *sparse.Vector
	// ForEachObject calls fn for every active position that has an object.
	ForEachObject(fn func(o T, value float64))
}

// Compile time check.
var _ Vector = (*sparse.Vector)(nil)

// Fold reduces fn over the active positions of v, starting from init.
func Fold[A any](v Vector, init A, fn func(acc A, key int64, value float64) A) A {
	acc := init
	v.ForEach(func(k int64, x float64) {
		acc = fn(acc, k, x)
	})
	return acc
}

// FoldObjects reduces fn over the objects of v, starting from init.
func FoldObjects[T comparable, A any](v ObjectVector[T], init A, fn func(acc A, o T, value float64) A) A {
	acc := init
	v.ForEachObject(func(o T, x float64) {
		acc = fn(acc, o, x)
	})
	return acc
}

// Support returns the active keys of v as a compressed bitmap.
func Support(v Vector) *roaring64.Bitmap {
	if s, ok := v.(*sparse.Vector); ok {
		return s.Support()
	}
	bm := roaring64.New()
	v.ForEach(func(k int64, _ float64) {
		bm.Add(uint64(k))
	})
	return bm
}

// Overlap returns the number of keys active in both a and b.
func Overlap(a, b Vector) uint64 {
	return Support(a).AndCardinality(Support(b))
}

// ToSparse copies the active positions of v into a new sparse vector.
func ToSparse(v Vector) *sparse.Vector {
	if s, ok := v.(*sparse.Vector); ok {
		return s.Clone()
	}
	out := sparse.New(sparse.WithCapacity(int(v.ActiveDimension())), sparse.WithDimension(v.Dimension()))
	v.ForEach(out.Put)
	return out
}

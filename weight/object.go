package weight

import (
	"github.com/hupe1980/flop/sparse"
)

// Object is an ObjectVector that resolves objects to feature ids through an
// Alphabet and stores the weights in an underlying Vector.
//
// IncObject and Index add unseen objects to the alphabet unless it is
// frozen; AtObject and DotObjects treat unknown objects as 0.0.
type Object[T comparable] struct {
	Vector
	alphabet *Alphabet[T]
}

// NewObject creates an Object over base. A nil base uses an empty
// *sparse.Vector; a nil alphabet starts empty.
func NewObject[T comparable](base Vector, alphabet *Alphabet[T]) *Object[T] {
	if base == nil {
		base = sparse.New()
	}
	if alphabet == nil {
		alphabet = NewAlphabet[T]()
	}
	return &Object[T]{Vector: base, alphabet: alphabet}
}

// Alphabet returns the object to id mapping.
func (v *Object[T]) Alphabet() *Alphabet[T] { return v.alphabet }

// AtObject implements ObjectVector.
func (v *Object[T]) AtObject(o T) float64 {
	id, ok := v.alphabet.Lookup(o)
	if !ok {
		return 0
	}
	return v.At(id)
}

// IncObject implements ObjectVector. Increments of objects that a frozen
// alphabet rejects are dropped.
func (v *Object[T]) IncObject(o T, delta float64) {
	if id := v.alphabet.Add(o); id >= 0 {
		v.Inc(id, delta)
	}
}

// DotObjects implements ObjectVector.
func (v *Object[T]) DotObjects(objs []T) float64 {
	var r float64
	for _, o := range objs {
		if id, ok := v.alphabet.Lookup(o); ok {
			r += v.At(id)
		}
	}
	return r
}

// Index implements ObjectVector.
func (v *Object[T]) Index(objs []T) *sparse.Vector {
	out := sparse.New(sparse.WithCapacity(len(objs)))
	for _, o := range objs {
		if id := v.alphabet.Add(o); id >= 0 {
			out.Inc(id, 1)
		}
	}
	return out
}

// ForEachObject implements ObjectVector.
func (v *Object[T]) ForEachObject(fn func(o T, value float64)) {
	v.ForEach(func(k int64, x float64) {
		if o, ok := v.alphabet.Object(k); ok {
			fn(o, x)
		}
	})
}

package weight

import (
	"github.com/cespare/xxhash/v2"
	"github.com/hupe1980/flop/sparse"
)

// Compile time check.
var _ Vector = (*Hashed)(nil)

// Hashed maps string features to ids with xxhash feature hashing into
// [0, buckets). Distinct features may share an id.
//
// Hashing is one-way, so Hashed offers the object methods of ObjectVector
// except ForEachObject.
type Hashed struct {
	*sparse.Vector
	buckets uint64
	seed    uint64
}

// NewHashed creates a Hashed vector with the given number of buckets and
// hash seed. Non-positive bucket counts use the full int64 range.
func NewHashed(buckets int64, seed uint64) *Hashed {
	b := uint64(sparse.Unbounded)
	if buckets > 0 {
		b = uint64(buckets)
	}
	return &Hashed{
		Vector:  sparse.New(sparse.WithDimension(int64(b))),
		buckets: b,
		seed:    seed,
	}
}

// Key returns the feature id of s.
func (h *Hashed) Key(s string) int64 {
	if h.seed == 0 {
		return int64(xxhash.Sum64String(s) % h.buckets)
	}
	d := xxhash.NewWithSeed(h.seed)
	_, _ = d.WriteString(s)
	return int64(d.Sum64() % h.buckets)
}

// AtObject returns the weight of feature s.
func (h *Hashed) AtObject(s string) float64 { return h.Get(h.Key(s)) }

// IncObject adds delta to the weight of feature s.
func (h *Hashed) IncObject(s string, delta float64) { h.Inc(h.Key(s), delta) }

// DotObjects sums the weights of features, counting repeats.
func (h *Hashed) DotObjects(features []string) float64 {
	var r float64
	for _, s := range features {
		r += h.Get(h.Key(s))
	}
	return r
}

// Index converts features to a sparse vector of id to occurrence count.
func (h *Hashed) Index(features []string) *sparse.Vector {
	out := sparse.New(sparse.WithCapacity(len(features)), sparse.WithDimension(int64(h.buckets)))
	for _, s := range features {
		out.Inc(h.Key(s), 1)
	}
	return out
}

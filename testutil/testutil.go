package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Int63n returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Int63n(n int64) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Int63n(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// NormFloat64 returns a standard normal pseudo-random number.
func (r *RNG) NormFloat64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.NormFloat64()
}

// FillUniform fills dst with random values in range [0, 1).
// Locks only once per call (preferred over calling Float64 in a loop).
func (r *RNG) FillUniform(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.Float64()
	}
}

// FillGaussian fills dst with standard normal values.
func (r *RNG) FillGaussian(dst []float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.rand.NormFloat64()
	}
}

// SparseEntries returns n entries with distinct keys drawn from [0, keySpace)
// and non-zero values in [-1, 1).
// n is clamped to keySpace.
func (r *RNG) SparseEntries(n int, keySpace int64) map[int64]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int64(n) > keySpace {
		n = int(keySpace)
	}
	m := make(map[int64]float64, n)
	for len(m) < n {
		k := r.rand.Int63n(keySpace)
		if _, ok := m[k]; ok {
			continue
		}
		m[k] = r.nonZeroLocked()
	}
	return m
}

// Distribution returns a probability vector of length n that sums to 1.
func (r *RNG) Distribution(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := make([]float64, n)
	var sum float64
	for i := range d {
		d[i] = r.rand.Float64() + 1e-3
		sum += d[i]
	}
	for i := range d {
		d[i] /= sum
	}
	return d
}

// OpKind enumerates the mutations produced by Ops.
type OpKind int

const (
	OpPut OpKind = iota
	OpIncrement
	OpRemove
)

// Op is a single scripted mutation.
type Op struct {
	Kind  OpKind
	Key   int64
	Value float64
}

// Ops returns n random mutations over keys in [0, keySpace).
// Roughly one put in eight writes an explicit zero, and increments sometimes
// cancel the value they target to exercise removal-by-zero.
func (r *RNG) Ops(n int, keySpace int64) []Op {
	r.mu.Lock()
	defer r.mu.Unlock()

	ops := make([]Op, n)
	for i := range ops {
		op := Op{Key: r.rand.Int63n(keySpace)}
		switch p := r.rand.Float64(); {
		case p < 0.4:
			op.Kind = OpPut
			if r.rand.Intn(8) != 0 {
				op.Value = r.nonZeroLocked()
			}
		case p < 0.75:
			op.Kind = OpIncrement
			op.Value = float64(r.rand.Intn(5) - 2)
		default:
			op.Kind = OpRemove
		}
		ops[i] = op
	}
	return ops
}

// Zipf returns a Zipfian-distributed value in [0, n).
// Uses Zipf's law: P(k) ∝ 1/k^s where s is the skew parameter.
// s=1.0 gives standard Zipf, s=1.5 gives heavy-tail (80/20 rule).
// Feature ids in real models follow this kind of power law.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.zipfLocked(n, s)
}

// ZipfKeys generates n keys in [0, keySpace) with a Zipfian distribution.
func (r *RNG) ZipfKeys(n, keySpace int, s float64) []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	keys := make([]int64, n)
	for i := range n {
		keys[i] = int64(r.zipfLocked(keySpace, s))
	}
	return keys
}

// zipfLocked is the internal implementation (caller must hold lock).
func (r *RNG) zipfLocked(n int, s float64) int {
	if n <= 1 {
		return 0
	}

	// Compute normalization constant (harmonic number with exponent s)
	var hns float64
	for i := 1; i <= n; i++ {
		hns += 1.0 / math.Pow(float64(i), s)
	}

	// Sample from uniform and use inverse transform
	u := r.rand.Float64() * hns
	var cumulative float64
	for k := 1; k <= n; k++ {
		cumulative += 1.0 / math.Pow(float64(k), s)
		if u <= cumulative {
			return k - 1 // 0-indexed
		}
	}

	return n - 1
}

// nonZeroLocked returns a value in [-1, 1) that is never exactly zero.
func (r *RNG) nonZeroLocked() float64 {
	for {
		if v := r.rand.Float64()*2 - 1; v != 0 {
			return v
		}
	}
}

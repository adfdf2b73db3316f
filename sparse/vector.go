package sparse

import (
	"fmt"
	"math"

	"github.com/hupe1980/flop"
)

// Vector is a sparse mapping from int64 keys to float64 values.
//
// The zero value is an empty vector ready to use.
type Vector struct {
	keys   []int64
	values []float64
	count  int

	// index maps a populated key to its slot in keys/values.
	index map[int64]int32

	growth float64
	dim    int64
}

// New creates an empty vector.
func New(opts ...Option) *Vector {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	return newVector(o)
}

func newVector(o options) *Vector {
	return &Vector{
		keys:   make([]int64, o.capacity),
		values: make([]float64, o.capacity),
		index:  make(map[int64]int32, o.capacity),
		growth: o.growthFactor,
		dim:    o.dimension,
	}
}

// FromMap creates a vector holding the non-zero entries of m.
func FromMap(m map[int64]float64, opts ...Option) *Vector {
	v := New(append([]Option{WithCapacity(len(m))}, opts...)...)
	v.PutMap(m)
	return v
}

// Clone returns a deep copy of v with a freshly built index.
func (v *Vector) Clone() *Vector {
	c := &Vector{
		keys:   make([]int64, max(v.count, DefaultCapacity)),
		values: make([]float64, max(v.count, DefaultCapacity)),
		index:  make(map[int64]int32, v.count),
		count:  v.count,
		growth: v.growth,
		dim:    v.dim,
	}
	copy(c.keys, v.keys[:v.count])
	copy(c.values, v.values[:v.count])
	for i := range c.count {
		c.index[c.keys[i]] = int32(i)
	}
	return c
}

// Len returns the number of populated entries.
func (v *Vector) Len() int { return v.count }

// Capacity returns the number of slots currently allocated.
func (v *Vector) Capacity() int { return len(v.keys) }

// Dimension returns the advisory size of the key space.
func (v *Vector) Dimension() int64 {
	if v.dim <= 0 {
		return Unbounded
	}
	return v.dim
}

// ActiveDimension returns the number of populated entries.
func (v *Vector) ActiveDimension() int64 { return int64(v.count) }

// IndexOf returns the slot holding key.
func (v *Vector) IndexOf(key int64) (int, bool) {
	i, ok := v.index[key]
	return int(i), ok
}

// Contains reports whether key is populated.
func (v *Vector) Contains(key int64) bool {
	_, ok := v.index[key]
	return ok
}

// Get returns the value stored for key, or 0.0 if key is absent.
func (v *Vector) Get(key int64) float64 {
	if i, ok := v.index[key]; ok {
		return v.values[i]
	}
	return 0.0
}

// At is Get under the weight vector naming.
func (v *Vector) At(key int64) float64 { return v.Get(key) }

// Put stores value for key. Storing 0.0 removes key.
func (v *Vector) Put(key int64, value float64) {
	if v.rawPut(key, value) {
		v.maybeShrink()
	}
}

// Increment adds delta to the value of key, treating an absent key as 0.0,
// and returns the resulting value. A result of exactly 0.0 removes key.
func (v *Vector) Increment(key int64, delta float64) float64 {
	nv, removed := v.rawIncrement(key, delta)
	if removed {
		v.maybeShrink()
	}
	return nv
}

// Inc is Increment without the resulting value.
func (v *Vector) Inc(key int64, delta float64) { v.Increment(key, delta) }

// Remove deletes key and reports whether it was present.
func (v *Vector) Remove(key int64) bool {
	if !v.rawRemove(key) {
		return false
	}
	v.maybeShrink()
	return true
}

// RemoveAll deletes every key in keys and reports whether any was present.
func (v *Vector) RemoveAll(keys []int64) bool {
	modified := false
	for _, k := range keys {
		modified = v.rawRemove(k) || modified
	}
	if modified {
		v.maybeShrink()
	}
	return modified
}

// Clear removes every entry and resets the capacity to DefaultCapacity.
func (v *Vector) Clear() {
	v.keys = make([]int64, DefaultCapacity)
	v.values = make([]float64, DefaultCapacity)
	v.index = make(map[int64]int32, DefaultCapacity)
	v.count = 0
}

// EnsureCapacity grows the vector so that it can hold c entries without
// further reallocation.
func (v *Vector) EnsureCapacity(c int) {
	if c > len(v.keys) {
		v.Resize(max(c, int(v.factor()*float64(len(v.keys)))))
	}
}

// Resize reallocates the backing slices to exactly c slots.
// It panics with a *flop.InvariantError if c is below Len.
func (v *Vector) Resize(c int) {
	if c < v.count {
		flop.PanicInvariant("Resize", "cannot decrease capacity to %d below size %d", c, v.count)
	}
	if c > math.MaxInt32 {
		flop.PanicInvariant("Resize", "capacity %d exceeds slot range", c)
	}
	keys := make([]int64, c)
	values := make([]float64, c)
	copy(keys, v.keys[:v.count])
	copy(values, v.values[:v.count])
	v.keys = keys
	v.values = values
}

// Compact shrinks the capacity to Len.
func (v *Vector) Compact() {
	v.Resize(v.count)
}

// Keys returns a copy of the populated keys in storage order.
func (v *Vector) Keys() []int64 {
	out := make([]int64, v.count)
	copy(out, v.keys[:v.count])
	return out
}

// Values returns a copy of the populated values in storage order.
func (v *Vector) Values() []float64 {
	out := make([]float64, v.count)
	copy(out, v.values[:v.count])
	return out
}

// ToMap copies the populated entries into a map.
func (v *Vector) ToMap() map[int64]float64 {
	m := make(map[int64]float64, v.count)
	for i := range v.count {
		m[v.keys[i]] = v.values[i]
	}
	return m
}

// ToData is ToMap under the weight vector naming.
func (v *Vector) ToData() map[int64]float64 { return v.ToMap() }

// Equal reports whether v and other hold identical populated entries.
func (v *Vector) Equal(other *Vector) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.count != other.count {
		return false
	}
	for i := range v.count {
		j, ok := other.index[v.keys[i]]
		if !ok || other.values[j] != v.values[i] {
			return false
		}
	}
	return true
}

func (v *Vector) String() string {
	return fmt.Sprintf("sparse.Vector{len=%d cap=%d}", v.count, len(v.keys))
}

func (v *Vector) factor() float64 {
	if v.growth < MinGrowthFactor {
		return DefaultGrowthFactor
	}
	return v.growth
}

func (v *Vector) insert(key int64, value float64) {
	v.EnsureCapacity(v.count + 1)
	if v.index == nil {
		v.index = make(map[int64]int32, len(v.keys))
	}
	v.keys[v.count] = key
	v.values[v.count] = value
	v.index[key] = int32(v.count)
	v.count++
}

// rawPut stores value without shrinking and reports whether an entry was removed.
func (v *Vector) rawPut(key int64, value float64) bool {
	i, ok := v.index[key]
	switch {
	case !ok:
		if value != 0.0 {
			v.insert(key, value)
		}
		return false
	case value == 0.0:
		return v.rawRemove(key)
	default:
		v.values[i] = value
		return false
	}
}

// rawIncrement adds delta without shrinking. It returns the new value and
// whether the entry was removed.
func (v *Vector) rawIncrement(key int64, delta float64) (float64, bool) {
	i, ok := v.index[key]
	if !ok {
		if delta != 0.0 {
			v.insert(key, delta)
		}
		return delta, false
	}
	nv := v.values[i] + delta
	if nv == 0.0 {
		return 0.0, v.rawRemove(key)
	}
	v.values[i] = nv
	return nv, false
}

// rawRemove swap-deletes key without shrinking.
func (v *Vector) rawRemove(key int64) bool {
	i, ok := v.index[key]
	if !ok {
		return false
	}
	delete(v.index, key)
	v.count--
	last := v.count
	if int(i) < last {
		v.keys[i] = v.keys[last]
		v.values[i] = v.values[last]
		v.index[v.keys[i]] = i
	}
	v.keys[last] = 0
	v.values[last] = 0
	return true
}

// maybeShrink releases capacity once usage falls below capacity/factor².
func (v *Vector) maybeShrink() {
	f := v.factor()
	if float64(v.count) >= float64(len(v.keys))/(f*f) {
		return
	}
	target := max(int(float64(v.count)*f), DefaultCapacity)
	if target < len(v.keys) {
		v.Resize(target)
	}
}

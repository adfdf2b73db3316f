package sparse

import "math"

const (
	// DefaultCapacity is the initial and minimal capacity of a vector.
	DefaultCapacity = 4

	// DefaultGrowthFactor is the multiplicative capacity growth on overflow.
	DefaultGrowthFactor = 1.5

	// MinGrowthFactor is the smallest accepted growth factor.
	MinGrowthFactor = 1.5

	// Unbounded is the default Dimension of a vector: the full int64 key space.
	Unbounded int64 = math.MaxInt64
)

type options struct {
	capacity     int
	growthFactor float64
	dimension    int64
}

var defaultOptions = options{
	capacity:     DefaultCapacity,
	growthFactor: DefaultGrowthFactor,
	dimension:    Unbounded,
}

// Option configures a Vector at construction.
type Option func(*options)

// WithCapacity pre-sizes the vector for n entries.
// Values below DefaultCapacity are raised to it.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = max(n, DefaultCapacity)
	}
}

// WithGrowthFactor sets the capacity growth factor.
// Values below MinGrowthFactor (and NaN) are raised to it.
func WithGrowthFactor(f float64) Option {
	return func(o *options) {
		if !(f >= MinGrowthFactor) || math.IsInf(f, 0) {
			f = MinGrowthFactor
		}
		o.growthFactor = f
	}
}

// WithDimension sets the advisory dimension reported by Dimension.
// Non-positive values leave the dimension unbounded.
func WithDimension(d int64) Option {
	return func(o *options) {
		if d <= 0 {
			d = Unbounded
		}
		o.dimension = d
	}
}

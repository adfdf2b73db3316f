package kernels

const (
	// DefaultTolerance is the log-domain window below the maximum inside
	// which terms still contribute to a log-sum.
	DefaultTolerance = 30.0

	// DefaultBins is the resolution of the bucketed exp table.
	DefaultBins = 100000
)

type options struct {
	tolerance float64
	bins      int
}

var defaultOptions = options{
	tolerance: DefaultTolerance,
	bins:      DefaultBins,
}

// Option configures a LogSumExp.
type Option func(*options)

// WithTolerance sets the pruning window. Terms more than tol below the
// maximum are ignored. Non-positive values keep the default.
func WithTolerance(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tolerance = tol
		}
	}
}

// WithBins sets the number of buckets of the exp table.
// Zero disables the table and computes exp exactly.
func WithBins(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.bins = n
		}
	}
}

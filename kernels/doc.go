// Package kernels provides numeric kernels over float64 slices: log-domain
// summation with a bucketed exponential table, in-place scaled accumulation
// and discrete sampling.
//
// All kernels are synchronous and allocation-free on the hot path. The only
// shared state is the lazily built exp table of each LogSumExp, which is
// published exactly once and read-only afterwards, so the package functions
// are safe for concurrent use.
//
// Length mismatches between operands panic with a *flop.PreconditionError.
package kernels

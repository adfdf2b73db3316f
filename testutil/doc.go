// Package testutil provides testing utilities for flop.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator and helpers for producing sparse
// entries, power-law keys, probability distributions and mutation scripts.
//
// # Random Data Generation
//
//	rng := testutil.NewRNG(seed)
//	entries := rng.SparseEntries(100, 1<<20) // map[int64]float64, no zeros
//	dist := rng.Distribution(8)               // sums to 1
//	ops := rng.Ops(1000, 64)                  // put/increment/remove script
//
// RNG also satisfies the uniform source interfaces of packages kernels and
// variate, so the same seeded stream can drive samplers in tests.
package testutil

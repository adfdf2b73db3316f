// Package flop provides sparse, int64-keyed weight vectors and the numeric
// kernels built on top of them.
//
// The library is organised as a small set of packages:
//
//   - sparse: the sparse vector engine (parallel key/value slices plus a
//     reverse index) with O(1)-amortized get, put, increment and swap-delete.
//   - weight: the Vector and ObjectVector contracts that algorithms program
//     against, with dense, object-keyed and feature-hashing implementations.
//   - kernels: log-sum-exp, discrete sampling and in-place dense accumulation.
//   - variate: Gaussian, Student-t, Gamma and Beta draws plus digamma and
//     log-gamma, driven by an injected uniform source.
//   - codec, stream, executor: the serialization, byte stream and priority
//     task pool collaborators that consume vectors through narrow contracts.
//   - metrics: a Prometheus implementation of MetricsCollector.
//
// # Quick Start
//
//	v := sparse.New()
//	v.Put(42, 1.5)
//	v.Increment(7, 0.25)
//	w := sparse.New()
//	w.Put(42, 2)
//	fmt.Println(v.DotSparse(w)) // 3
//
// # Concurrency
//
// Vectors, kernels and generators are synchronous and unsynchronized. A vector
// must have a single writer, and must not be mutated while it is traversed:
// a traversal that observes a change in the populated count panics with an
// *InvariantError. The only lazily built shared state, the exponential lookup
// table in package kernels, is published exactly once via sync.OnceValue.
//
// # Errors
//
// Programmer errors (ErrInvariantViolation, ErrPrecondition) are raised with
// panic. Recoverable failures such as corrupt snapshots or a full executor
// queue are returned as wrapped errors from the supporting packages.
package flop

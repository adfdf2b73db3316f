// Package sparse implements a growable sparse vector mapping int64 keys to
// float64 values.
//
// Entries live in two parallel slices (keys and values) whose first Len()
// slots are populated, plus a reverse index from key to slot. This gives
// O(1)-amortized Get, Put, Increment and Remove while keeping the populated
// entries dense, so norms, dot products and folds run over contiguous memory.
//
// # Invariants
//
//   - Explicit zeros are never stored: writing or incrementing a value to
//     exactly 0.0 removes the entry, and Get of an absent key returns 0.0.
//   - Remove moves the last populated slot into the freed slot (swap-delete),
//     so iteration order is storage order, not insertion order.
//   - Capacity grows by the growth factor on overflow and shrinks only when
//     usage falls below capacity/factor².
//
// A Vector is not safe for concurrent use. Traversals (ForEach, All, Reduce)
// panic with a *flop.InvariantError when the populated count changes while
// they run.
package sparse

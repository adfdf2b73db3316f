// Package weight defines the weight vector contracts that learning
// algorithms program against, and implementations beyond *sparse.Vector:
//
//   - Dense: a fixed-dimension vector backed by a float64 slice, tracking its
//     active positions in a bitset.
//   - Object: an ObjectVector that maps arbitrary comparable objects to
//     feature ids through an Alphabet.
//   - Hashed: string features mapped to ids by xxhash feature hashing.
//
// At of an absent or inactive key returns 0.0 for every implementation.
package weight

// Package conv converts between integer types with overflow checks.
//
// Use To wherever a length or count crosses a fixed-width boundary: encoding
// a slice length into a u32 header field, or trusting a u32 count decoded
// from a snapshot or frame. Conversions that are safe by construction
// (loop indices, small constants) use plain casts.
package conv

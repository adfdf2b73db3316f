package conv

import (
	"errors"
	"fmt"
)

// ErrOverflow is returned when a value does not fit the target type.
var ErrOverflow = errors.New("integer overflow")

// Integer is the set of integer types To converts between.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// To converts v to T, failing with ErrOverflow if the value changes.
//
//	n, err := conv.To[uint32](len(payload))
func To[T, F Integer](v F) (T, error) {
	t := T(v)
	if F(t) != v || (v < 0) != (t < 0) {
		return 0, fmt.Errorf("%w: %d does not fit %T", ErrOverflow, v, t)
	}
	return t, nil
}

// Package codec centralizes the encoding of vectors and other values for
// transport and storage.
//
// Every codec has a stable name. Frames written by WriteFrame record that name
// so a reader can select the matching codec with ByName; changing the codec
// of a producer does not break consumers of older frames.
package codec

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownCodec is returned when a codec name cannot be resolved.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrNotBinary is returned by Binary for values that do not implement
	// encoding.BinaryMarshaler or encoding.BinaryUnmarshaler.
	ErrNotBinary = errors.New("codec: value does not implement binary marshaling")
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// Default is the codec MustMarshal uses when given nil.
var Default Codec = GoJSON{}

// ByName returns a built-in codec by its stable name.
//
// Compressed codecs are named "<algorithm>+<inner>", for example
// "zstd+go-json" or "lz4+binary".
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	case "binary":
		return Binary{}, true
	}
	alg, inner, ok := strings.Cut(name, "+")
	if !ok {
		return nil, false
	}
	a, ok := parseAlgorithm(alg)
	if !ok {
		return nil, false
	}
	c, ok := ByName(inner)
	if !ok {
		return nil, false
	}
	return NewCompressed(c, a), true
}

// Lookup is ByName returning an error wrapping ErrUnknownCodec.
func Lookup(name string) (Codec, error) {
	c, ok := ByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return c, nil
}

// MustMarshal is a helper for tests and benchmarks.
func MustMarshal(c Codec, v any) []byte {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		panic(fmt.Errorf("codec %s marshal failed: %w", c.Name(), err))
	}
	return b
}

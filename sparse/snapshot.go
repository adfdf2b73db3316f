package sparse

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	gojson "github.com/goccy/go-json"
	"github.com/hupe1980/flop/internal/conv"
	"github.com/hupe1980/flop/internal/checksum"
)

var (
	// ErrCorruptSnapshot is returned when a snapshot is inconsistent or fails
	// its checksum.
	ErrCorruptSnapshot = errors.New("corrupt snapshot")

	// ErrUnsupportedVersion is returned for an unknown binary snapshot version.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
)

// SnapshotVersion is the version byte written by MarshalBinary.
const SnapshotVersion byte = 1

// Binary layout:
//
//	[version u8][count u32][keys count*i64][values count*f64][crc32c u32]
//
// All integers are little endian; the checksum covers everything before it.
const (
	headerSize  = 1 + 4
	trailerSize = checksum.Size
	entrySize   = 8 + 8
)

// Snapshot is the compact, index-free form of a vector: the populated count
// and two parallel slices holding at least Count keys and values.
type Snapshot struct {
	Count  int       `json:"count"`
	Keys   []int64   `json:"keys"`
	Values []float64 `json:"values"`
}

// Snapshot returns a compact copy of the populated entries.
func (v *Vector) Snapshot() Snapshot {
	return Snapshot{
		Count:  v.count,
		Keys:   v.Keys(),
		Values: v.Values(),
	}
}

// FromSnapshot rebuilds a vector from a snapshot.
// Zero values are skipped; duplicate keys are rejected.
func FromSnapshot(s Snapshot, opts ...Option) (*Vector, error) {
	if s.Count < 0 || len(s.Keys) < s.Count || len(s.Values) < s.Count {
		return nil, fmt.Errorf("%w: count %d with %d keys and %d values", ErrCorruptSnapshot, s.Count, len(s.Keys), len(s.Values))
	}
	v := New(append([]Option{WithCapacity(s.Count)}, opts...)...)
	for i := range s.Count {
		k := s.Keys[i]
		if v.Contains(k) {
			return nil, fmt.Errorf("%w: duplicate key %d at slot %d", ErrCorruptSnapshot, k, i)
		}
		v.rawPut(k, s.Values[i])
	}
	return v, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (v *Vector) MarshalBinary() ([]byte, error) {
	n, err := conv.To[uint32](v.count)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, headerSize+v.count*entrySize, headerSize+v.count*entrySize+trailerSize)
	buf[0] = SnapshotVersion
	binary.LittleEndian.PutUint32(buf[1:], n)

	off := headerSize
	for i := range v.count {
		binary.LittleEndian.PutUint64(buf[off:], uint64(v.keys[i]))
		off += 8
	}
	for i := range v.count {
		binary.LittleEndian.PutUint64(buf[off:], math.Float64bits(v.values[i]))
		off += 8
	}
	return checksum.Append(buf), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. It replaces the
// contents of v and keeps its configured growth factor and dimension.
func (v *Vector) UnmarshalBinary(data []byte) error {
	if len(data) < headerSize+trailerSize {
		return fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptSnapshot, len(data))
	}
	if data[0] != SnapshotVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}
	count, err := conv.To[int](binary.LittleEndian.Uint32(data[1:]))
	if err != nil {
		return err
	}
	if want := headerSize + count*entrySize + trailerSize; len(data) != want {
		return fmt.Errorf("%w: expected %d bytes for %d entries, got %d", ErrCorruptSnapshot, want, count, len(data))
	}
	if _, err := checksum.Verify(data); err != nil {
		return fmt.Errorf("%w: %w", ErrCorruptSnapshot, err)
	}

	s := Snapshot{
		Count:  count,
		Keys:   make([]int64, count),
		Values: make([]float64, count),
	}
	off := headerSize
	for i := range count {
		s.Keys[i] = int64(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}
	for i := range count {
		s.Values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[off:]))
		off += 8
	}
	return v.restore(s)
}

// MarshalJSON encodes the vector in its snapshot shape.
func (v *Vector) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(v.Snapshot())
}

// UnmarshalJSON decodes a snapshot-shaped JSON object into v.
func (v *Vector) UnmarshalJSON(data []byte) error {
	var s Snapshot
	if err := gojson.Unmarshal(data, &s); err != nil {
		return err
	}
	return v.restore(s)
}

func (v *Vector) restore(s Snapshot) error {
	fresh, err := FromSnapshot(s, WithGrowthFactor(v.factor()), WithDimension(v.dim))
	if err != nil {
		return err
	}
	*v = *fresh
	return nil
}

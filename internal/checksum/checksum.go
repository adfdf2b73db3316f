package checksum

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash"
	"io"

	"github.com/klauspost/crc32"
)

// Size is the length of a checksum trailer.
const Size = 4

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrMismatch is returned when a trailer does not match its data.
	ErrMismatch = errors.New("checksum mismatch")

	// ErrShort is returned when data is too short to carry a trailer.
	ErrShort = errors.New("data shorter than checksum trailer")
)

// Sum returns the CRC32-C of data.
func Sum(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// Append appends the little-endian CRC32-C of buf to buf.
func Append(buf []byte) []byte {
	return binary.LittleEndian.AppendUint32(buf, Sum(buf))
}

// Verify checks the trailer at the end of data and returns the body before it.
func Verify(data []byte) ([]byte, error) {
	if len(data) < Size {
		return nil, fmt.Errorf("%w: %d bytes", ErrShort, len(data))
	}
	body := data[:len(data)-Size]
	got, want := Sum(body), binary.LittleEndian.Uint32(data[len(body):])
	if got != want {
		return nil, fmt.Errorf("%w: %08x, expected %08x", ErrMismatch, got, want)
	}
	return body, nil
}

// Writer forwards writes to an underlying writer while summing them.
type Writer struct {
	w   io.Writer
	crc hash.Hash32
	n   int
}

// NewWriter returns a Writer over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, crc: crc32.New(castagnoli)}
}

// Write implements io.Writer. Only the bytes accepted by the underlying
// writer are summed.
func (cw *Writer) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.crc.Write(p[:n])
	cw.n += n
	return n, err
}

// Sum32 returns the checksum of everything written so far.
func (cw *Writer) Sum32() uint32 { return cw.crc.Sum32() }

// Written returns the number of bytes written so far, trailer included.
func (cw *Writer) Written() int { return cw.n }

// WriteTrailer writes the checksum of everything written so far.
func (cw *Writer) WriteTrailer() error {
	var t [Size]byte
	binary.LittleEndian.PutUint32(t[:], cw.crc.Sum32())
	n, err := cw.w.Write(t[:])
	cw.n += n
	return err
}

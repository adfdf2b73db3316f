package stream

import (
	"fmt"
	"io"
)

// Compile time checks.
var (
	_ io.ReadSeeker = (*Reader)(nil)
	_ io.ReaderAt   = (*Reader)(nil)
)

// Reader is a seekable reader over a fixed byte slice.
//
// Positioned reads (ReadAt, ReadFullAt) do not move the cursor used by Read.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader creates a Reader over data. The slice is not copied.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[r.pos:])
	r.pos += int64(n)
	return n, nil
}

// ReadAt implements io.ReaderAt. It returns io.EOF when fewer than len(p)
// bytes are available at off.
func (r *Reader) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n := copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// ReadFullAt fills p from off or fails with io.ErrUnexpectedEOF.
func (r *Reader) ReadFullAt(p []byte, off int64) error {
	n, err := r.ReadAt(p, off)
	if n == len(p) {
		return nil
	}
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read %d of %d bytes at offset %d: %w", n, len(p), off, err)
}

// Seek implements io.Seeker. Positions outside [0, Size] fail with
// ErrSeekOutOfRange and leave the cursor unchanged.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = r.pos + offset
	case io.SeekEnd:
		pos = int64(len(r.data)) + offset
	default:
		return r.pos, ErrInvalidWhence
	}
	if pos < 0 || pos > int64(len(r.data)) {
		return r.pos, fmt.Errorf("%w: %d not in [0, %d]", ErrSeekOutOfRange, pos, len(r.data))
	}
	r.pos = pos
	return pos, nil
}

// Pos returns the cursor position.
func (r *Reader) Pos() int64 { return r.pos }

// Size returns the total length of the data.
func (r *Reader) Size() int64 { return int64(len(r.data)) }

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	if r.pos >= int64(len(r.data)) {
		return 0
	}
	return len(r.data) - int(r.pos)
}

package stream

import (
	"fmt"
	"io"
)

// Compile time checks.
var (
	_ io.ReadWriteSeeker = (*Buffer)(nil)
	_ io.ReaderAt        = (*Buffer)(nil)
)

// Buffer is an in-memory buffer that implements io.Writer, io.Seeker,
// io.Reader and io.ReaderAt. Writing past the end grows it; seeking past the
// end and writing leaves a zero-filled gap.
type Buffer struct {
	buf []byte
	pos int64
}

// NewBuffer creates a Buffer with the given initial capacity.
func NewBuffer(capacity int) *Buffer {
	return &Buffer{
		buf: make([]byte, 0, max(capacity, 0)),
	}
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (n int, err error) {
	minCap := int(b.pos) + len(p)
	if minCap > cap(b.buf) {
		newCap := cap(b.buf) * 2
		if newCap < minCap {
			newCap = minCap
		}
		newBuf := make([]byte, len(b.buf), newCap)
		copy(newBuf, b.buf)
		b.buf = newBuf
	}
	if minCap > len(b.buf) {
		b.buf = b.buf[:minCap]
	}
	n = copy(b.buf[b.pos:], p)
	b.pos += int64(n)
	return n, nil
}

// Seek implements io.Seeker. Negative positions fail with ErrSeekOutOfRange.
func (b *Buffer) Seek(offset int64, whence int) (int64, error) {
	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = b.pos + offset
	case io.SeekEnd:
		newPos = int64(len(b.buf)) + offset
	default:
		return b.pos, ErrInvalidWhence
	}
	if newPos < 0 {
		return b.pos, fmt.Errorf("%w: %d", ErrSeekOutOfRange, newPos)
	}
	b.pos = newPos
	return newPos, nil
}

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (n int, err error) {
	if b.pos >= int64(len(b.buf)) {
		return 0, io.EOF
	}
	n = copy(p, b.buf[b.pos:])
	b.pos += int64(n)
	return n, nil
}

// ReadAt implements io.ReaderAt.
func (b *Buffer) ReadAt(p []byte, off int64) (int, error) {
	return NewReader(b.buf).ReadAt(p, off)
}

// Reader returns a Reader over the current contents.
func (b *Buffer) Reader() *Reader {
	return NewReader(b.buf)
}

// Bytes returns the underlying byte slice.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// Len returns the length of the buffer.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Size returns the length of the buffer as an int64, like Reader.Size.
func (b *Buffer) Size() int64 { return int64(len(b.buf)) }

// Reset clears the buffer.
func (b *Buffer) Reset() {
	b.buf = b.buf[:0]
	b.pos = 0
}

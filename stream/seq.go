package stream

import (
	"io"
	"iter"
	"slices"
)

// Compile time check.
var _ io.ReadCloser = (*SeqReader)(nil)

// SeqReader reads the concatenation of a sequence of byte chunks. Chunks are
// pulled lazily, and empty chunks are skipped.
type SeqReader struct {
	next func() ([]byte, bool)
	stop func()
	cur  []byte
	done bool
}

// NewSeqReader creates a SeqReader over seq. Close releases the sequence if
// it is not read to the end.
func NewSeqReader(seq iter.Seq[[]byte]) *SeqReader {
	next, stop := iter.Pull(seq)
	return &SeqReader{next: next, stop: stop}
}

// Chunks creates a SeqReader over a fixed list of chunks.
func Chunks(chunks ...[]byte) *SeqReader {
	return NewSeqReader(slices.Values(chunks))
}

// Read implements io.Reader. It fills p across chunk boundaries.
func (s *SeqReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n := 0
	for n < len(p) {
		if !s.advance() {
			break
		}
		c := copy(p[n:], s.cur)
		s.cur = s.cur[c:]
		n += c
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadByte implements io.ByteReader.
func (s *SeqReader) ReadByte() (byte, error) {
	if !s.advance() {
		return 0, io.EOF
	}
	b := s.cur[0]
	s.cur = s.cur[1:]
	return b, nil
}

// Close implements io.Closer.
func (s *SeqReader) Close() error {
	s.done = true
	s.cur = nil
	s.stop()
	return nil
}

// advance makes cur non-empty and reports false once the sequence is drained.
func (s *SeqReader) advance() bool {
	for len(s.cur) == 0 {
		if s.done {
			return false
		}
		chunk, ok := s.next()
		if !ok {
			s.done = true
			return false
		}
		s.cur = chunk
	}
	return true
}

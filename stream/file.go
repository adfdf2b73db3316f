package stream

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/hupe1980/flop/internal/conv"
)

// AccessPattern hints to the kernel how a mapped file will be read.
type AccessPattern int

const (
	// AccessDefault gives no specific advice.
	AccessDefault AccessPattern = iota
	// AccessSequential expects a front-to-back scan, as by a frame reader.
	AccessSequential
	// AccessRandom expects positioned reads at scattered offsets.
	AccessRandom
)

// File is a read-only memory-mapped file exposed as a positioned Reader.
//
// The embedded Reader and any slice obtained from Bytes are valid only until
// Close returns.
type File struct {
	*Reader
	closed atomic.Bool
	unmap  func([]byte) error
}

// OpenFile maps the file at path into memory. Empty files are not mapped.
func OpenFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &File{Reader: NewReader(nil)}, nil
	}
	n, err := conv.To[int](size)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("stream: cannot map %s of %d bytes", path, size)
	}

	data, unmap, err := mapFile(f, n)
	if err != nil {
		return nil, fmt.Errorf("stream: map %s: %w", path, err)
	}
	return &File{Reader: NewReader(data), unmap: unmap}, nil
}

// Bytes returns the mapped contents, or nil after Close.
func (f *File) Bytes() []byte {
	if f.closed.Load() {
		return nil
	}
	return f.data
}

// Advise passes an access hint to the kernel. It is a no-op where the
// platform has no equivalent.
func (f *File) Advise(pattern AccessPattern) error {
	if f.closed.Load() {
		return ErrFileClosed
	}
	if len(f.data) == 0 {
		return nil
	}
	return advise(f.data, pattern)
}

// Close unmaps the file. It is idempotent.
func (f *File) Close() error {
	if f.closed.Swap(true) {
		return nil
	}
	data := f.data
	f.Reader = NewReader(nil)
	if f.unmap == nil || len(data) == 0 {
		return nil
	}
	return f.unmap(data)
}

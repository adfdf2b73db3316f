package stream

import "errors"

var (
	// ErrSeekOutOfRange is returned when a seek targets a position before the
	// start or past the end of the data.
	ErrSeekOutOfRange = errors.New("stream: seek out of range")

	// ErrInvalidWhence is returned for an unknown Seek whence.
	ErrInvalidWhence = errors.New("stream: invalid whence")

	// ErrNegativeOffset is returned by positioned reads at a negative offset.
	ErrNegativeOffset = errors.New("stream: negative offset")
)

// ErrFileClosed is returned by File operations after Close.
var ErrFileClosed = errors.New("stream: file closed")

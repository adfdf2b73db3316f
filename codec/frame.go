package codec

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/flop"
	"github.com/hupe1980/flop/internal/conv"
	"github.com/hupe1980/flop/internal/checksum"
)

var (
	// ErrBadMagic is returned when a frame does not start with FrameMagic.
	ErrBadMagic = errors.New("codec: bad frame magic")

	// ErrChecksumMismatch is returned when a frame fails its CRC32C check.
	ErrChecksumMismatch = errors.New("codec: frame checksum mismatch")

	// ErrTruncatedFrame is returned when a frame ends early.
	ErrTruncatedFrame = errors.New("codec: truncated frame")

	// ErrFrameTooLarge is returned when a header claims a payload above
	// MaxFramePayload.
	ErrFrameTooLarge = errors.New("codec: frame too large")
)

// MaxFramePayload bounds the payload length a frame header may claim.
const MaxFramePayload = 1 << 30

// sizer is implemented by sources that know their length, such as
// stream.Reader, stream.File and io.SectionReader.
type sizer interface {
	Size() int64
}

// FrameMagic starts every frame.
const FrameMagic uint32 = 0x504f4c46 // "FLOP"

// Frame layout:
//
//	[magic u32][nameLen u8][name][payloadLen u32][payload][crc32c u32]
//
// All integers are little endian; the checksum covers everything before it.
const (
	framePrefixSize = 4 + 1
	frameLenSize    = 4
	frameCRCSize    = checksum.Size
)

// Frame describes a frame read by ReadFrameAt.
type Frame struct {
	// Codec is the name of the codec that encoded the payload.
	Codec string
	// Offset is the position of the frame in its stream.
	Offset int64
	// Size is the total frame length, so the next frame starts at Offset+Size.
	Size int64
}

// WriteFrame encodes v with c and writes it as a self-describing frame.
// It returns the number of bytes written.
func WriteFrame(w io.Writer, c Codec, v any) (int, error) {
	name := c.Name()
	if len(name) == 0 || len(name) > 255 {
		return 0, fmt.Errorf("codec: name %q does not fit a frame header", name)
	}
	payload, err := c.Marshal(v)
	if err != nil {
		return 0, fmt.Errorf("codec %s: %w", name, err)
	}
	if len(payload) > MaxFramePayload {
		return 0, fmt.Errorf("%w: %d byte payload", ErrFrameTooLarge, len(payload))
	}
	plen, err := conv.To[uint32](len(payload))
	if err != nil {
		return 0, err
	}

	head := make([]byte, 0, framePrefixSize+len(name)+frameLenSize)
	head = binary.LittleEndian.AppendUint32(head, FrameMagic)
	head = append(head, byte(len(name)))
	head = append(head, name...)
	head = binary.LittleEndian.AppendUint32(head, plen)

	cw := checksum.NewWriter(w)
	if _, err := cw.Write(head); err != nil {
		return cw.Written(), err
	}
	if _, err := cw.Write(payload); err != nil {
		return cw.Written(), err
	}
	err = cw.WriteTrailer()
	return cw.Written(), err
}

// ReadFrameAt reads the frame starting at off and decodes its payload into v
// with the codec named in the header. It returns io.EOF if off is at the end
// of r.
func ReadFrameAt(r io.ReaderAt, off int64, v any) (Frame, error) {
	f := Frame{Offset: off}

	prefix := make([]byte, framePrefixSize)
	if n, err := r.ReadAt(prefix, off); n < len(prefix) {
		if n == 0 && errors.Is(err, io.EOF) {
			return f, io.EOF
		}
		return f, truncated(err)
	}
	if m := binary.LittleEndian.Uint32(prefix); m != FrameMagic {
		return f, fmt.Errorf("%w: %08x at offset %d", ErrBadMagic, m, off)
	}

	nameLen := int(prefix[4])
	head := make([]byte, framePrefixSize+nameLen+frameLenSize)
	copy(head, prefix)
	if n, err := r.ReadAt(head[framePrefixSize:], off+framePrefixSize); n < len(head)-framePrefixSize {
		return f, truncated(err)
	}
	f.Codec = string(head[framePrefixSize : framePrefixSize+nameLen])

	plen, err := conv.To[int](binary.LittleEndian.Uint32(head[len(head)-frameLenSize:]))
	if err != nil {
		return f, err
	}
	if plen > MaxFramePayload {
		return f, fmt.Errorf("%w: %d bytes at offset %d", ErrFrameTooLarge, plen, off)
	}
	if sz, ok := r.(sizer); ok {
		if end := off + int64(len(head)+plen+frameCRCSize); end > sz.Size() {
			return f, fmt.Errorf("%w: frame at offset %d ends at %d, source has %d bytes", ErrTruncatedFrame, off, end, sz.Size())
		}
	}
	frame := make([]byte, len(head)+plen+frameCRCSize)
	copy(frame, head)
	if n, err := r.ReadAt(frame[len(head):], off+int64(len(head))); n < len(frame)-len(head) {
		return f, truncated(err)
	}
	f.Size = int64(len(frame))

	body, err := checksum.Verify(frame)
	if err != nil {
		return f, fmt.Errorf("%w at offset %d: %w", ErrChecksumMismatch, off, err)
	}

	c, err := Lookup(f.Codec)
	if err != nil {
		return f, err
	}
	if err := c.Unmarshal(body[len(head):], v); err != nil {
		return f, fmt.Errorf("codec %s: %w", f.Codec, err)
	}
	return f, nil
}

func truncated(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return ErrTruncatedFrame
	}
	return fmt.Errorf("%w: %w", ErrTruncatedFrame, err)
}

// FrameReader reads consecutive frames from an io.ReaderAt.
type FrameReader struct {
	r      io.ReaderAt
	off    int64
	logger *flop.Logger
}

// FrameReaderOption configures a FrameReader.
type FrameReaderOption func(*FrameReader)

// WithLogger sets the logger that records each decoded frame.
func WithLogger(l *flop.Logger) FrameReaderOption {
	return func(fr *FrameReader) {
		if l != nil {
			fr.logger = l
		}
	}
}

// WithOffset starts reading at off instead of 0.
func WithOffset(off int64) FrameReaderOption {
	return func(fr *FrameReader) {
		fr.off = off
	}
}

// NewFrameReader creates a FrameReader over r.
func NewFrameReader(r io.ReaderAt, opts ...FrameReaderOption) *FrameReader {
	fr := &FrameReader{
		r:      r,
		logger: flop.NoopLogger(),
	}
	for _, fn := range opts {
		fn(fr)
	}
	return fr
}

// Next decodes the next frame into v. It returns io.EOF after the last frame.
// On error the reader does not advance.
func (fr *FrameReader) Next(ctx context.Context, v any) (Frame, error) {
	if err := ctx.Err(); err != nil {
		return Frame{}, err
	}
	f, err := ReadFrameAt(fr.r, fr.off, v)
	if errors.Is(err, io.EOF) {
		return f, err
	}
	fr.logger.LogFrame(ctx, f.Codec, int(f.Size), err)
	if err != nil {
		return f, err
	}
	fr.off += f.Size
	return f, nil
}

// Offset returns the position of the next frame.
func (fr *FrameReader) Offset() int64 { return fr.off }

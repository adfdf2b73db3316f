package codec

import (
	"context"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hupe1980/flop"
	"github.com/hupe1980/flop/sparse"
	"github.com/hupe1980/flop/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFrames(t *testing.T, vs []*sparse.Vector, codecs []Codec) *stream.Buffer {
	t.Helper()
	buf := stream.NewBuffer(0)
	for i, v := range vs {
		n, err := WriteFrame(buf, codecs[i%len(codecs)], v)
		require.NoError(t, err)
		require.Positive(t, n)
	}
	return buf
}

func TestFrameRoundTrip(t *testing.T) {
	vs := []*sparse.Vector{
		sparse.FromMap(map[int64]float64{1: 1}),
		sparse.New(),
		sparse.FromMap(map[int64]float64{0: -2, 9: 4}),
	}
	buf := writeFrames(t, vs, []Codec{Binary{}, GoJSON{}, NewCompressed(Binary{}, Zstd)})

	fr := NewFrameReader(buf.Reader(), WithLogger(flop.NoopLogger()))
	names := []string{}
	for i := 0; ; i++ {
		got := sparse.New()
		f, err := fr.Next(context.Background(), got)
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		assert.True(t, vs[i].Equal(got))
		names = append(names, f.Codec)
	}

	assert.Equal(t, []string{"binary", "go-json", "zstd+binary"}, names)
	assert.Equal(t, int64(buf.Len()), fr.Offset())
}

func TestFrameReaderMappedFile(t *testing.T) {
	vs := []*sparse.Vector{
		sparse.FromMap(map[int64]float64{3: 0.5, 1 << 40: -1}),
		sparse.FromMap(map[int64]float64{7: 7}),
	}
	buf := writeFrames(t, vs, []Codec{NewCompressed(Binary{}, LZ4), Binary{}})
	path := filepath.Join(t.TempDir(), "vectors.frames")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	f, err := stream.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, f.Advise(stream.AccessSequential))

	fr := NewFrameReader(f)
	for _, want := range vs {
		got := sparse.New()
		_, err := fr.Next(context.Background(), got)
		require.NoError(t, err)
		assert.True(t, want.Equal(got))
	}
	_, err = fr.Next(context.Background(), sparse.New())
	assert.Equal(t, io.EOF, err)
}

func TestReadFrameAtOffset(t *testing.T) {
	vs := []*sparse.Vector{
		sparse.FromMap(map[int64]float64{1: 1}),
		sparse.FromMap(map[int64]float64{2: 2}),
	}
	buf := writeFrames(t, vs, []Codec{JSON{}})
	r := stream.NewReader(buf.Bytes())

	got := sparse.New()
	first, err := ReadFrameAt(r, 0, got)
	require.NoError(t, err)

	second, err := ReadFrameAt(r, first.Size, got)
	require.NoError(t, err)
	assert.Equal(t, first.Size, second.Offset)
	assert.True(t, vs[1].Equal(got))
	assert.Equal(t, int64(0), r.Pos())

	fr := NewFrameReader(r, WithOffset(first.Size))
	_, err = fr.Next(context.Background(), got)
	require.NoError(t, err)
	assert.True(t, vs[1].Equal(got))
}

func TestFrameErrors(t *testing.T) {
	v := sparse.FromMap(map[int64]float64{1: 1, 2: 2})
	buf := writeFrames(t, []*sparse.Vector{v}, []Codec{Binary{}})
	data := buf.Bytes()

	t.Run("checksum", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-6] ^= 0x01
		_, err := ReadFrameAt(stream.NewReader(bad), 0, sparse.New())
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := ReadFrameAt(stream.NewReader(bad), 0, sparse.New())
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("truncated", func(t *testing.T) {
		for _, n := range []int{3, 8, len(data) - 1} {
			_, err := ReadFrameAt(stream.NewReader(data[:n]), 0, sparse.New())
			assert.ErrorIs(t, err, ErrTruncatedFrame, "length %d", n)
		}
	})

	t.Run("forged length", func(t *testing.T) {
		lenOff := framePrefixSize + len("binary")
		for _, plen := range []uint32{uint32(len(data)), MaxFramePayload} {
			bad := append([]byte(nil), data...)
			binary.LittleEndian.PutUint32(bad[lenOff:], plen)
			_, err := ReadFrameAt(stream.NewReader(bad), 0, sparse.New())
			assert.ErrorIs(t, err, ErrTruncatedFrame, "plen=%d", plen)
		}

		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint32(bad[lenOff:], MaxFramePayload+1)
		_, err := ReadFrameAt(readerAtOnly{stream.NewReader(bad)}, 0, sparse.New())
		assert.ErrorIs(t, err, ErrFrameTooLarge)
	})

	t.Run("eof", func(t *testing.T) {
		_, err := ReadFrameAt(stream.NewReader(data), int64(len(data)), sparse.New())
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("unknown codec", func(t *testing.T) {
		buf := stream.NewBuffer(0)
		_, err := WriteFrame(buf, fakeCodec{}, 1)
		require.NoError(t, err)
		_, err = ReadFrameAt(buf, 0, new(int))
		assert.ErrorIs(t, err, ErrUnknownCodec)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFrameReader(stream.NewReader(data)).Next(ctx, sparse.New())
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reader does not advance on error", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0xff
		fr := NewFrameReader(stream.NewReader(bad))
		_, err := fr.Next(context.Background(), sparse.New())
		assert.Error(t, err)
		assert.Equal(t, int64(0), fr.Offset())
	})
}

// readerAtOnly hides the Size method of the wrapped reader.
type readerAtOnly struct{ r io.ReaderAt }

func (r readerAtOnly) ReadAt(p []byte, off int64) (int, error) { return r.r.ReadAt(p, off) }

type fakeCodec struct{ JSON }

func (fakeCodec) Name() string { return "fake" }

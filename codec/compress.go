package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hupe1980/flop/internal/conv"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrCorruptBlock is returned when a compressed block cannot be decoded.
var ErrCorruptBlock = errors.New("codec: corrupt compressed block")

// Algorithm selects the block compression of a Compressed codec.
type Algorithm uint8

const (
	// LZ4 is fast block compression, good for hot data.
	LZ4 Algorithm = 1
	// Zstd has a better ratio, good for cold data.
	Zstd Algorithm = 2
)

func (a Algorithm) String() string {
	switch a {
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("algorithm(%d)", uint8(a))
	}
}

func parseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "lz4":
		return LZ4, true
	case "zstd":
		return Zstd, true
	default:
		return 0, false
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() (*zstd.Encoder, error) {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder), nil
	}
	return zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
}

func getZstdDecoder() (*zstd.Decoder, error) {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder), nil
	}
	return zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxBlockSize))
}

// Block layout:
//
//	[uncompressed u32][compressed u32][data...]
//
// A compressed size of 0 marks a block stored as is because compression did
// not pay off.
const blockHeaderSize = 8

// MaxBlockSize bounds the uncompressed size a block header may claim.
const MaxBlockSize = 1 << 30

// maxLZ4Ratio is the largest expansion an LZ4 block can encode.
const maxLZ4Ratio = 255

// Compressed wraps another codec and compresses its output.
type Compressed struct {
	inner Codec
	alg   Algorithm
}

// NewCompressed wraps inner with the given algorithm.
func NewCompressed(inner Codec, alg Algorithm) *Compressed {
	return &Compressed{inner: inner, alg: alg}
}

// Name returns "<algorithm>+<inner name>".
func (c *Compressed) Name() string { return c.alg.String() + "+" + c.inner.Name() }

// Marshal encodes v with the inner codec and compresses the result.
func (c *Compressed) Marshal(v any) ([]byte, error) {
	raw, err := c.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return compressBlock(raw, c.alg)
}

// Unmarshal decompresses data and decodes it with the inner codec.
func (c *Compressed) Unmarshal(data []byte, v any) error {
	raw, err := decompressBlock(data, c.alg)
	if err != nil {
		return err
	}
	return c.inner.Unmarshal(raw, v)
}

func compressBlock(data []byte, alg Algorithm) ([]byte, error) {
	if len(data) > MaxBlockSize {
		return nil, fmt.Errorf("codec: %d byte block exceeds %d", len(data), MaxBlockSize)
	}
	size, err := conv.To[uint32](len(data))
	if err != nil {
		return nil, err
	}

	var compressed []byte
	switch alg {
	case LZ4:
		compressed, err = compressLZ4(data)
	case Zstd:
		compressed, err = compressZstd(data)
	default:
		return nil, fmt.Errorf("codec: unsupported %s", alg)
	}
	if err != nil {
		return nil, err
	}

	// Store uncompressed if the ratio is worse than 0.9.
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, blockHeaderSize+len(data))
		binary.LittleEndian.PutUint32(result[0:], size)
		binary.LittleEndian.PutUint32(result[4:], 0)
		copy(result[blockHeaderSize:], data)
		return result, nil
	}

	csize, err := conv.To[uint32](len(compressed))
	if err != nil {
		return nil, err
	}
	result := make([]byte, blockHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], size)
	binary.LittleEndian.PutUint32(result[4:], csize)
	copy(result[blockHeaderSize:], compressed)
	return result, nil
}

func compressLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))

	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressZstd(data []byte) ([]byte, error) {
	enc, err := getZstdEncoder()
	if err != nil {
		return nil, err
	}
	defer zstdEncoderPool.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func decompressBlock(data []byte, alg Algorithm) ([]byte, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorruptBlock, len(data))
	}

	usize, err := conv.To[int](binary.LittleEndian.Uint32(data[0:]))
	if err != nil {
		return nil, err
	}
	csize, err := conv.To[int](binary.LittleEndian.Uint32(data[4:]))
	if err != nil {
		return nil, err
	}
	body := data[blockHeaderSize:]

	if csize == 0 {
		if len(body) != usize {
			return nil, fmt.Errorf("%w: stored block has %d bytes, header says %d", ErrCorruptBlock, len(body), usize)
		}
		return body, nil
	}
	if len(body) != csize {
		return nil, fmt.Errorf("%w: compressed block has %d bytes, header says %d", ErrCorruptBlock, len(body), csize)
	}

	if usize > MaxBlockSize {
		return nil, fmt.Errorf("%w: header claims %d bytes, limit is %d", ErrCorruptBlock, usize, MaxBlockSize)
	}

	switch alg {
	case LZ4:
		if usize > csize*maxLZ4Ratio {
			return nil, fmt.Errorf("%w: %d compressed bytes cannot expand to %d", ErrCorruptBlock, csize, usize)
		}
		result := make([]byte, usize)
		n, err := lz4.UncompressBlock(body, result)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		if n != usize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", ErrCorruptBlock, n, usize)
		}
		return result, nil

	case Zstd:
		dec, err := getZstdDecoder()
		if err != nil {
			return nil, err
		}
		defer zstdDecoderPool.Put(dec)

		// The header is untrusted, so the output grows as zstd produces it.
		decoded, err := dec.DecodeAll(body, make([]byte, 0, min(usize, 16*csize)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptBlock, err)
		}
		if len(decoded) != usize {
			return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", ErrCorruptBlock, len(decoded), usize)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("codec: unsupported %s", alg)
	}
}

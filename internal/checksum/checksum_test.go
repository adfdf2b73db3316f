package checksum

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSum(t *testing.T) {
	// Check value from RFC 3720 (iSCSI): 32 bytes of zeros.
	assert.Equal(t, uint32(0x8a9136aa), Sum(make([]byte, 32)))
}

func TestAppendVerify(t *testing.T) {
	buf := Append([]byte("sparse vector"))
	require.Len(t, buf, len("sparse vector")+Size)

	body, err := Verify(buf)
	require.NoError(t, err)
	assert.Equal(t, "sparse vector", string(body))

	buf[0] ^= 0xff
	_, err = Verify(buf)
	assert.ErrorIs(t, err, ErrMismatch)

	_, err = Verify([]byte{1, 2})
	assert.ErrorIs(t, err, ErrShort)

	body, err = Verify(Append(nil))
	require.NoError(t, err)
	assert.Empty(t, body)
}

func TestWriter(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out)
	_, err := w.Write([]byte("sparse"))
	require.NoError(t, err)
	_, err = w.Write([]byte(" vector"))
	require.NoError(t, err)
	assert.Equal(t, Sum([]byte("sparse vector")), w.Sum32())

	require.NoError(t, w.WriteTrailer())
	assert.Equal(t, out.Len(), w.Written())
	assert.Equal(t, Append([]byte("sparse vector")), out.Bytes())
}

type shortWriter struct{ limit int }

func (s *shortWriter) Write(p []byte) (int, error) {
	if len(p) > s.limit {
		return s.limit, errors.New("short write")
	}
	return len(p), nil
}

func TestWriterShortWrite(t *testing.T) {
	w := NewWriter(&shortWriter{limit: 3})
	n, err := w.Write([]byte("vector"))
	assert.Error(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, Sum([]byte("vec")), w.Sum32())
	assert.Equal(t, 3, w.Written())
}

package embio

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderReadExactEOF(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}))
	_, err := r.ReadExact(3)
	require.Error(t, err)
	assert.True(t, r.Closed)
}

func TestReaderUint32LERoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteUint32LE(0xDEADBEEF))

	r := NewReader(&buf)
	v, err := r.ReadUint32LE()
	require.NoError(t, err)
	assert.Equal(t, uint32(0xDEADBEEF), v)
}

func TestExpectMagicMismatch(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("XYZ!")))
	err := r.ExpectMagic([]byte("ABCD"))
	require.Error(t, err)
}

func TestCTrim(t *testing.T) {
	assert.Equal(t, "hello", CTrim("hello\x00\x00\x00"))
	assert.Equal(t, "hello", CTrim("hello   "))
}

func TestCharTruncateMultibyteSafe(t *testing.T) {
	assert.Equal(t, "ab", CharTruncate("abcdef", 2))
	assert.Equal(t, "日本", CharTruncate("日本語", 2))
}

func TestFromNullPadded(t *testing.T) {
	buf := []byte("name\x00\x00\x00\x00")
	assert.Equal(t, "name", FromNullPadded(buf))
}

func TestPadRightPadLeft(t *testing.T) {
	assert.Equal(t, "ab  ", PadRight("ab", 4))
	assert.Equal(t, "  ab", PadLeft("ab", 4))
	assert.Equal(t, "abcd", PadRight("abcdef", 4))
}

func TestWriterPadTo(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteByte('x'))
	require.NoError(t, w.PadTo(5, ' '))
	assert.Equal(t, int64(5), w.Pos())
	assert.Equal(t, "x    ", buf.String())
}

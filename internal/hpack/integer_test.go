package hpack

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Examples from RFC 7541 Appendix C.1.
func TestEncodeInteger(t *testing.T) {
	tests := []struct {
		value      int
		prefixBits uint
		pattern    byte
		expected   []byte
	}{
		{10, 5, 0x00, []byte{0x0a}},
		{1337, 5, 0x00, []byte{0x1f, 0x9a, 0x0a}},
		{42, 8, 0x00, []byte{0x2a}},
		{31, 5, 0x00, []byte{0x1f, 0x00}},
		{127, 7, 0x80, []byte{0xff, 0x00}},
	}

	for _, tt := range tests {
		var buf bytes.Buffer
		encodeInteger(&buf, tt.value, tt.prefixBits, tt.pattern)
		assert.Equal(t, tt.expected, buf.Bytes(), "encoding %d with %d prefix bits", tt.value, tt.prefixBits)
	}
}

func TestIntegerRoundTrip(t *testing.T) {
	values := []int{0, 1, 30, 31, 32, 127, 128, 255, 1337, 4096, 1 << 20}

	for _, value := range values {
		for prefixBits := uint(4); prefixBits <= 8; prefixBits++ {
			var buf bytes.Buffer
			encodeInteger(&buf, value, prefixBits, 0x00)

			reader := bytes.NewReader(buf.Bytes())
			first, err := reader.ReadByte()
			require.NoError(t, err)

			decoded, err := decodeInteger(reader, first, prefixBits)
			require.NoError(t, err)
			assert.Equal(t, value, decoded, "value %d with %d prefix bits", value, prefixBits)
			assert.Zero(t, reader.Len(), "leftover bytes for value %d", value)
		}
	}
}

func TestDecodeIntegerTruncated(t *testing.T) {
	// All-ones prefix announces continuation bytes that never arrive.
	reader := bytes.NewReader([]byte{0x9a}) // one byte with the high bit set
	first := byte(0x1f)

	_, err := decodeInteger(bytes.NewReader(nil), first, 5)
	assert.True(t, errors.Is(err, ErrCompression))

	_, err = decodeInteger(reader, first, 5)
	assert.True(t, errors.Is(err, ErrCompression))
}

func TestDecodeIntegerOverflow(t *testing.T) {
	// An endless continuation sequence must be cut off, not wrap around.
	payload := bytes.Repeat([]byte{0xff}, 10)
	_, err := decodeInteger(bytes.NewReader(payload), 0x1f, 5)
	assert.True(t, errors.Is(err, ErrCompression))
}

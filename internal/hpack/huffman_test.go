package hpack

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Vectors from RFC 7541 Appendix C.
func TestHuffmanEncodeVectors(t *testing.T) {
	tests := []struct {
		input    string
		expected []byte
	}{
		{"www.example.com", []byte{0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff}},
		{"no-cache", []byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf}},
		{"custom-key", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xa9, 0x7d, 0x7f}},
		{"custom-value", []byte{0x25, 0xa8, 0x49, 0xe9, 0x5b, 0xb8, 0xe8, 0xb4, 0xbf}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, HuffmanEncode([]byte(tt.input)), "encoding %q", tt.input)
	}
}

func TestHuffmanDecodeVectors(t *testing.T) {
	decoded, err := HuffmanDecode([]byte{0xf1, 0xe3, 0xc2, 0xe5, 0xf2, 0x3a, 0x6b, 0xa0, 0xab, 0x90, 0xf4, 0xff})
	require.NoError(t, err)
	assert.Equal(t, "www.example.com", string(decoded))

	decoded, err = HuffmanDecode([]byte{0xa8, 0xeb, 0x10, 0x64, 0x9c, 0xbf})
	require.NoError(t, err)
	assert.Equal(t, "no-cache", string(decoded))
}

func TestHuffmanRoundTrip(t *testing.T) {
	inputs := []string{
		"",
		"a",
		"hello world",
		":authority",
		"gzip, deflate",
		"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36",
		"\x00\x01\x02\xfe\xff",
		"Füße über Straße",
	}

	for _, input := range inputs {
		encoded := HuffmanEncode([]byte(input))
		decoded, err := HuffmanDecode(encoded)
		require.NoError(t, err, "round-tripping %q", input)
		assert.Equal(t, input, string(decoded))
	}
}

func TestHuffmanDecodeEmpty(t *testing.T) {
	decoded, err := HuffmanDecode(nil)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestHuffmanInvalidPadding(t *testing.T) {
	// 'a' is 00011 (5 bits); padding the byte with zeros instead of the EOS
	// pattern must fail.
	_, err := HuffmanDecode([]byte{0x18})
	assert.True(t, errors.Is(err, ErrCompression), "expected compression error, got %v", err)
}

func TestHuffmanPaddingTooLong(t *testing.T) {
	// A full byte of ones after an aligned code is 8 bits of padding, one
	// more than a decoder may accept.
	encoded := HuffmanEncode([]byte("no-cache")) // ends byte aligned apart from 2 pad bits
	_, err := HuffmanDecode(append(encoded, 0xff))
	assert.True(t, errors.Is(err, ErrCompression), "expected compression error, got %v", err)
}

func TestHuffmanExplicitEOSRejected(t *testing.T) {
	// The 30-bit EOS code itself, padded to four bytes.
	_, err := HuffmanDecode([]byte{0xff, 0xff, 0xff, 0xff})
	assert.True(t, errors.Is(err, ErrCompression), "expected compression error, got %v", err)
}

package hpack

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeCommand(t *testing.T, comp *Compressor, cmd Command) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, comp.EncodeCommand(&buf, cmd))
	return buf.Bytes()
}

func TestEncodeIndexedCommand(t *testing.T) {
	comp := NewCompressor(Options{Huffman: HuffmanNever})

	// combined index 10, wire value 11, pattern 1xxxxxxx
	assert.Equal(t, []byte{0x8b}, encodeCommand(t, comp, Indexed{Index: 10}))
}

func TestEncodeLiteralPatterns(t *testing.T) {
	comp := NewCompressor(Options{Huffman: HuffmanNever})

	tests := []struct {
		cmd       Command
		firstByte byte
	}{
		{LiteralIndexedName(Incremental, 10, "x"), 0x40 | 11},
		{LiteralIndexedName(NoIndex, 10, "x"), 0x00 | 11},
		{LiteralIndexedName(NeverIndexed, 10, "x"), 0x10 | 11},
		{LiteralName(Incremental, "a", "x"), 0x40},
		{LiteralName(NoIndex, "a", "x"), 0x00},
		{LiteralName(NeverIndexed, "a", "x"), 0x10},
	}

	for _, tt := range tests {
		encoded := encodeCommand(t, comp, tt.cmd)
		assert.Equal(t, tt.firstByte, encoded[0], "command %+v", tt.cmd)
	}
}

func TestEncodeChangeTableSizeCommand(t *testing.T) {
	comp := NewCompressor(Options{})

	// pattern 001xxxxx with a 5-bit prefix
	assert.Equal(t, []byte{0x3f, 0xe1, 0x1f}, encodeCommand(t, comp, ChangeTableSize{Size: 4096}))
	assert.Equal(t, []byte{0x2a}, encodeCommand(t, comp, ChangeTableSize{Size: 10}))
}

// RFC 7541 Appendix C.2.2: "Literal Header Field without Indexing".
func TestEncodeLiteralWithoutIndexingVector(t *testing.T) {
	comp := NewCompressor(Options{Huffman: HuffmanNever})

	encoded := encodeCommand(t, comp, LiteralIndexedName(NoIndex, 3, "/sample/path"))
	expected := append([]byte{0x04, 0x0c}, []byte("/sample/path")...)
	assert.Equal(t, expected, encoded)
}

func TestEncodeStringHuffmanPolicies(t *testing.T) {
	value := "www.example.com" // 15 raw octets, 12 Huffman octets

	var buf bytes.Buffer
	NewCompressor(Options{Huffman: HuffmanNever}).encodeString(&buf, value)
	assert.Equal(t, append([]byte{0x0f}, []byte(value)...), buf.Bytes())

	buf.Reset()
	NewCompressor(Options{Huffman: HuffmanAlways}).encodeString(&buf, value)
	assert.Equal(t, byte(0x8c), buf.Bytes()[0])
	assert.Len(t, buf.Bytes(), 13)

	buf.Reset()
	NewCompressor(Options{Huffman: HuffmanShorter}).encodeString(&buf, value)
	assert.Equal(t, byte(0x8c), buf.Bytes()[0], "shorter must pick the Huffman form here")

	// ties favor the raw form for determinism
	tie := "zz" // two 7-bit codes pack into exactly 2 octets, same as raw
	buf.Reset()
	NewCompressor(Options{Huffman: HuffmanShorter}).encodeString(&buf, tie)
	assert.Equal(t, []byte{0x02, 'z', 'z'}, buf.Bytes())
}

func TestEncodePopulatesOwnTable(t *testing.T) {
	comp := NewCompressor(Options{Huffman: HuffmanNever})

	_, err := comp.Encode([]HeaderField{{Name: "x-custom", Value: "my-value"}})
	require.NoError(t, err)

	// self-mirroring: the encoder's table now holds the emitted field
	assert.Equal(t, 1, comp.Context().Len())
	assert.Equal(t, HeaderField{Name: "x-custom", Value: "my-value"}, comp.Context().DynamicEntries()[0])
}

func TestSetTableSizeQueuesCommand(t *testing.T) {
	comp := NewCompressor(Options{Huffman: HuffmanNever})
	comp.SetTableSize(10)

	block, err := comp.Encode([]HeaderField{{Name: ":method", Value: "GET"}})
	require.NoError(t, err)
	require.NotEmpty(t, block)

	// the queued size update leads the block, then the indexed field
	assert.Equal(t, byte(0x2a), block[0])
	assert.Equal(t, byte(0x82), block[1])

	// emitted once only
	block, err = comp.Encode([]HeaderField{{Name: ":method", Value: "GET"}})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x82}, block)
}

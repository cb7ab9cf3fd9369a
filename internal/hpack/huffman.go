package hpack

// Huffman string codec (RFC 7541 section 5.2 and Appendix B). Encoding packs
// each byte's code into a bit stream and pads the last byte with the leading
// bits of the EOS code, which are all ones. Decoding walks a prefix tree and
// insists that any trailing padding is at most 7 bits and lies on the EOS
// path, so malformed input never produces a partial result.

type huffmanNode struct {
	children [2]*huffmanNode
	symbol   int // -1 on internal nodes
}

var huffmanRoot = buildHuffmanTree()

func buildHuffmanTree() *huffmanNode {
	root := &huffmanNode{symbol: -1}

	for sym := range huffmanTable {
		entry := huffmanTable[sym]

		node := root
		for i := int(entry.nbits) - 1; i >= 0; i-- {
			bit := (entry.code >> uint(i)) & 1
			if node.children[bit] == nil {
				node.children[bit] = &huffmanNode{symbol: -1}
			}
			node = node.children[bit]
		}

		node.symbol = sym
	}

	return root
}

// HuffmanEncode returns the Huffman-coded form of data, byte aligned.
func HuffmanEncode(data []byte) []byte {
	out := make([]byte, 0, huffmanEncodedLen(data))
	var bits uint64
	var nbits uint8

	for _, b := range data {
		entry := huffmanTable[b]
		bits = (bits << entry.nbits) | uint64(entry.code)
		nbits += entry.nbits

		for nbits >= 8 {
			nbits -= 8
			out = append(out, byte(bits>>nbits))
			bits &= (1 << nbits) - 1
		}
	}

	// Pad the final byte with the high bits of EOS (all ones).
	if nbits > 0 {
		bits = (bits << (8 - nbits)) | ((1 << (8 - nbits)) - 1)
		out = append(out, byte(bits))
	}

	return out
}

// huffmanEncodedLen returns the exact octet length HuffmanEncode will produce.
func huffmanEncodedLen(data []byte) int {
	totalBits := 0
	for _, b := range data {
		totalBits += int(huffmanTable[b].nbits)
	}
	return (totalBits + 7) / 8
}

// HuffmanDecode returns the bytes whose Huffman coding is data.
func HuffmanDecode(data []byte) ([]byte, error) {
	out := make([]byte, 0, len(data)*2)
	node := huffmanRoot

	// depth counts bits consumed since the last emitted symbol, allOnes
	// tracks whether all of them were 1-bits (the EOS prefix).
	depth := 0
	allOnes := true

	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bit := (b >> uint(i)) & 1

			node = node.children[bit]
			if node == nil {
				return nil, compressionError("invalid huffman code")
			}

			depth++
			if bit == 0 {
				allOnes = false
			}

			if node.symbol >= 0 {
				if node.symbol == huffmanEOS {
					return nil, compressionError("huffman EOS in string")
				}
				out = append(out, byte(node.symbol))
				node = huffmanRoot
				depth = 0
				allOnes = true
			}
		}
	}

	// Anything left over must be valid padding: strictly shorter than one
	// octet and matching the EOS bit pattern.
	if depth > 7 || !allOnes {
		return nil, compressionError("invalid huffman padding")
	}

	return out, nil
}

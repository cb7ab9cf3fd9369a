package hpack

import (
	"bytes"
	"io"
)

// Decompressor parses HPACK byte blocks back into header lists, the inverse
// of Compressor. It owns the Context for its direction.
type Decompressor struct {
	context *Context
}

func NewDecompressor(options Options) *Decompressor {
	return &Decompressor{context: NewContext(options)}
}

// Context exposes the decompressor's table state, mainly for inspection.
func (d *Decompressor) Context() *Context {
	return d.context
}

// Decode consumes the whole block as a sequence of representations. A single
// malformed command aborts the decode; there is never a partial result.
func (d *Decompressor) Decode(block []byte) ([]HeaderField, error) {
	reader := bytes.NewReader(block)
	var headers []HeaderField

	for reader.Len() > 0 {
		cmd, err := d.DecodeCommand(reader)
		if err != nil {
			return nil, err
		}

		emitted, err := d.context.Decode(cmd)
		if err != nil {
			return nil, err
		}
		if emitted != nil {
			headers = append(headers, *emitted)
		}
	}

	return headers, nil
}

// DecodeCommand reads one command off the reader. The leading byte's high
// bits are matched longest-prefix-first: 1 bit for Indexed, 2 for
// Incremental, 3 for ChangeTableSize, 4 for NeverIndexed, with NoIndex
// (all-zero pattern) as the remainder.
func (d *Decompressor) DecodeCommand(r *bytes.Reader) (Command, error) {
	first, err := r.ReadByte()
	if err != nil {
		return nil, compressionError("truncated representation")
	}

	switch {
	case first&0x80 != 0:
		index, err := decodeInteger(r, first, 7)
		if err != nil {
			return nil, err
		}
		if index == 0 {
			// wire index 0 is reserved and must be rejected
			return nil, compressionError("indexed representation with index 0")
		}
		return Indexed{Index: index - 1}, nil

	case first&0x40 != 0:
		return d.decodeLiteral(r, first, Incremental, 6)

	case first&0x20 != 0:
		size, err := decodeInteger(r, first, 5)
		if err != nil {
			return nil, err
		}
		return ChangeTableSize{Size: size}, nil

	case first&0x10 != 0:
		return d.decodeLiteral(r, first, NeverIndexed, 4)

	default:
		return d.decodeLiteral(r, first, NoIndex, 4)
	}
}

// decodeLiteral parses the shared tail of the three literal representations:
// a name (integer 0 means a literal string follows, v means reference v-1)
// and the always-literal value string.
func (d *Decompressor) decodeLiteral(r *bytes.Reader, first byte, mode IndexingMode, prefixBits uint) (Command, error) {
	nameRef, err := decodeInteger(r, first, prefixBits)
	if err != nil {
		return nil, err
	}

	var cmd Literal
	if nameRef == 0 {
		name, err := d.decodeString(r)
		if err != nil {
			return nil, err
		}
		cmd = LiteralName(mode, name, "")
	} else {
		cmd = LiteralIndexedName(mode, nameRef-1, "")
	}

	value, err := d.decodeString(r)
	if err != nil {
		return nil, err
	}
	cmd.Value = value

	return cmd, nil
}

// decodeString parses one string representation: Huffman flag, 7-bit-prefixed
// length, then that many octets.
func (d *Decompressor) decodeString(r *bytes.Reader) (string, error) {
	first, err := r.ReadByte()
	if err != nil {
		return "", compressionError("truncated string")
	}

	huffman := first&0x80 != 0
	length, err := decodeInteger(r, first, 7)
	if err != nil {
		return "", err
	}

	octets := make([]byte, length)
	if _, err := io.ReadFull(r, octets); err != nil {
		return "", compressionError("truncated string")
	}

	if huffman {
		decoded, err := HuffmanDecode(octets)
		if err != nil {
			return "", err
		}
		return string(decoded), nil
	}
	return string(octets), nil
}

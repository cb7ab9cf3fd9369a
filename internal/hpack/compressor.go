package hpack

import "bytes"

// Compressor serializes header lists into HPACK byte blocks. It owns the
// Context for its direction; the per-command serialization itself is
// stateless apart from the buffer it appends to.
type Compressor struct {
	context          *Context
	pendingTableSize *int
}

func NewCompressor(options Options) *Compressor {
	return &Compressor{context: NewContext(options)}
}

// Context exposes the compressor's table state, mainly for inspection.
func (c *Compressor) Context() *Context {
	return c.context
}

// SetTableSize applies a new dynamic table bound locally and queues a
// ChangeTableSize command that is emitted at the start of the next block, so
// the peer's decoder learns about the bound before any entry relies on it.
func (c *Compressor) SetTableSize(size int) {
	c.context.SetTableSize(size)
	c.pendingTableSize = &size
}

// Encode turns a header list into a compressed header block.
func (c *Compressor) Encode(headers []HeaderField) ([]byte, error) {
	var buf bytes.Buffer

	if c.pendingTableSize != nil {
		if err := c.EncodeCommand(&buf, ChangeTableSize{Size: *c.pendingTableSize}); err != nil {
			return nil, err
		}
		c.pendingTableSize = nil
	}

	commands, err := c.context.Encode(headers)
	if err != nil {
		return nil, err
	}

	for _, cmd := range commands {
		if err := c.EncodeCommand(&buf, cmd); err != nil {
			return nil, err
		}
	}

	return buf.Bytes(), nil
}

// EncodeCommand appends one command's wire representation to buf. The first
// byte's high bits carry the representation pattern, the low bits start a
// prefixed integer (RFC 7541 section 6).
func (c *Compressor) EncodeCommand(buf *bytes.Buffer, cmd Command) error {
	switch cmd := cmd.(type) {
	case Indexed:
		// 1xxxxxxx, integer = index+1 (wire indices are 1-based)
		encodeInteger(buf, cmd.Index+1, 7, 0x80)
		return nil

	case Literal:
		var pattern byte
		var prefixBits uint
		switch cmd.Mode {
		case Incremental:
			pattern, prefixBits = 0x40, 6
		case NeverIndexed:
			pattern, prefixBits = 0x10, 4
		case NoIndex:
			pattern, prefixBits = 0x00, 4
		default:
			return compressionError("invalid indexing mode %d", cmd.Mode)
		}

		if cmd.NameIndex >= 0 {
			encodeInteger(buf, cmd.NameIndex+1, prefixBits, pattern)
		} else {
			// integer 0 announces that the name follows as a string
			buf.WriteByte(pattern)
			c.encodeString(buf, cmd.Name)
		}
		c.encodeString(buf, cmd.Value)
		return nil

	case ChangeTableSize:
		// 001xxxxx, integer = new maximum size
		encodeInteger(buf, cmd.Size, 5, 0x20)
		return nil

	default:
		return compressionError("invalid command type %T", cmd)
	}
}

// encodeString writes one string representation: a Huffman flag bit, a
// 7-bit-prefixed length and the octets. The Huffman policy decides the form;
// "shorter" encodes both and keeps the smaller one, ties favoring raw so the
// output stays deterministic.
func (c *Compressor) encodeString(buf *bytes.Buffer, s string) {
	switch c.context.options.Huffman {
	case HuffmanAlways:
		encoded := HuffmanEncode([]byte(s))
		encodeInteger(buf, len(encoded), 7, 0x80)
		buf.Write(encoded)

	case HuffmanNever:
		encodeInteger(buf, len(s), 7, 0x00)
		buf.WriteString(s)

	default:
		encoded := HuffmanEncode([]byte(s))
		if len(encoded) < len(s) {
			encodeInteger(buf, len(encoded), 7, 0x80)
			buf.Write(encoded)
		} else {
			encodeInteger(buf, len(s), 7, 0x00)
			buf.WriteString(s)
		}
	}
}

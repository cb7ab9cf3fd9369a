package hpack

import (
	"bytes"
	"errors"
	"io"
)

// Prefixed-integer representation (RFC 7541 section 5.1). Every command
// starts with one of these: a value that fits in the prefix bits is written
// directly, anything larger writes an all-ones prefix followed by the
// remainder as little-endian base-128 continuation bytes.

// Continuation sequences longer than this would overflow the decoded value;
// 28 bits of continuation plus the prefix is far beyond any sane header size.
const maxIntegerShift = 28

// encodeInteger appends value into buf using the given prefix width. pattern
// carries the representation's high bits and is OR-ed into the first byte.
func encodeInteger(buf *bytes.Buffer, value int, prefixBits uint, pattern byte) {
	maxPrefix := (1 << prefixBits) - 1

	if value < maxPrefix {
		buf.WriteByte(pattern | byte(value))
		return
	}

	buf.WriteByte(pattern | byte(maxPrefix))
	value -= maxPrefix

	for value >= 128 {
		buf.WriteByte(byte(value%128) | 0x80)
		value /= 128
	}
	buf.WriteByte(byte(value))
}

// decodeInteger reads a prefixed integer from r. The caller has already
// consumed the first byte and passes it in as first, with the pattern bits
// still present; only the low prefixBits are interpreted.
func decodeInteger(r *bytes.Reader, first byte, prefixBits uint) (int, error) {
	maxPrefix := (1 << prefixBits) - 1

	value := int(first) & maxPrefix
	if value < maxPrefix {
		return value, nil
	}

	shift := uint(0)
	for {
		b, err := r.ReadByte()
		if errors.Is(err, io.EOF) {
			return 0, compressionError("truncated integer")
		} else if err != nil {
			return 0, err
		}

		value += int(b&0x7f) << shift
		if b&0x80 == 0 {
			break
		}

		shift += 7
		if shift > maxIntegerShift {
			return 0, compressionError("integer overflow")
		}
	}

	return value, nil
}

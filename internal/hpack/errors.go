package hpack

import (
	"errors"
	"fmt"
)

// ErrProtocol is the base kind for every protocol-level failure.
var ErrProtocol = errors.New("protocol error")

// ErrCompression covers all codec-level violations: invalid representation
// types, out-of-range indices, malformed integers and strings, and table
// operations pushed into an inconsistent state. It wraps ErrProtocol, so
// errors.Is(err, ErrProtocol) also holds for every compression error.
var ErrCompression = fmt.Errorf("%w: compression", ErrProtocol)

func compressionError(format string, args ...interface{}) error {
	return fmt.Errorf("hpack: %s: %w", fmt.Sprintf(format, args...), ErrCompression)
}

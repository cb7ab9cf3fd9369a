package helper

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"hpackCodec/internal/hpack"
)

// ParseHexBlock turns a hex dump into raw bytes, tolerating whitespace and
// "0x" prefixes so pasted wireshark/curl output works unchanged.
func ParseHexBlock(s string) ([]byte, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\r', '\n':
			return -1
		}
		return r
	}, s)
	cleaned = strings.TrimPrefix(cleaned, "0x")

	block, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("invalid hex block: %v", err)
	}
	return block, nil
}

// ReadHeaderList parses "name: value" lines into header fields. A leading
// '!' marks the field never-indexed. Blank lines are skipped.
func ReadHeaderList(r io.Reader) ([]hpack.HeaderField, error) {
	var headers []hpack.HeaderField

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		neverIndexed := false
		if strings.HasPrefix(line, "!") {
			neverIndexed = true
			line = strings.TrimSpace(line[1:])
		}

		name, value, found := strings.Cut(line, ":")
		if !found && !strings.HasPrefix(line, ":") {
			return nil, errors.New("headerList: expected 'name: value', got '" + line + "'")
		}
		if strings.HasPrefix(line, ":") {
			// pseudo-header, the separator is the second colon
			name, value, found = strings.Cut(line[1:], ":")
			if !found {
				return nil, errors.New("headerList: expected ':name: value', got '" + line + "'")
			}
			name = ":" + name
		}

		headers = append(headers, hpack.NewHeaderField(strings.TrimSpace(name), strings.TrimSpace(value), neverIndexed))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return headers, nil
}

// FormatHeaderList is the inverse of ReadHeaderList.
func FormatHeaderList(headers []hpack.HeaderField) string {
	var b strings.Builder
	for _, h := range headers {
		if h.NeverIndexed {
			b.WriteString("! ")
		}
		b.WriteString(h.Name)
		b.WriteString(": ")
		b.WriteString(h.Value)
		b.WriteByte('\n')
	}
	return b.String()
}

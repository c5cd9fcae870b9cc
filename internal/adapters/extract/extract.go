// Package extract turns uploaded documents into plain text before the
// pipeline normalizes them.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// ErrUnsupportedFormat is returned for document types the service has
// no extractor for.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// Extractor converts an uploaded document to text.
type Extractor interface {
	Extract(filename string, data []byte) (string, error)
}

// PlainText extracts text-native formats and treats unknown extensions
// as text, dropping invalid UTF-8 the way a lossy decode would.
// Binary formats that need a real parser are rejected.
type PlainText struct{}

// NewPlainText creates the extractor.
func NewPlainText() *PlainText {
	return &PlainText{}
}

// Extract implements Extractor.
func (e *PlainText) Extract(filename string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf", ".docx", ".doc":
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	default:
		// .txt, .md, .csv and anything else decode as lossy UTF-8.
		return toValidUTF8(data), nil
	}
}

// toValidUTF8 drops bytes that do not form valid UTF-8 sequences.
func toValidUTF8(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}
	var b strings.Builder
	b.Grow(len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r != utf8.RuneError || size > 1 {
			b.WriteRune(r)
		}
		data = data[size:]
	}
	return b.String()
}

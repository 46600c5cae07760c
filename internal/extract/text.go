package extract

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// TextExtractor handles plain text files. Input that is not valid UTF-8 is
// decoded as ISO-8859-1.
type TextExtractor struct{}

func (e *TextExtractor) Extract(data []byte, filename string) (*Document, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("decode latin-1: %w", err)
		}
		data = decoded
	}
	return &Document{
		Title:  stem(filename),
		Text:   string(data),
		Format: "txt",
	}, nil
}

// Package extract pulls plain text out of uploaded documents.
package extract

import (
	"errors"
	"path/filepath"
	"slices"
	"strings"

	"github.com/dgallion1/bddgen/internal/apperr"
)

// Document is the plain-text rendition of an uploaded file.
type Document struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Format string `json:"format"`
}

// Extractor converts raw document bytes into a Document.
type Extractor interface {
	Extract(data []byte, filename string) (*Document, error)
}

// Options tune format-specific behavior.
type Options struct {
	// PDFFallback retries PDF extraction with the pdftotext binary when the
	// built-in reader fails.
	PDFFallback bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".docx":     true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".csv":      true,
}

// Extensions returns the supported extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(SupportedExtensions))
	for ext := range SupportedExtensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string, opts Options) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFExtractor{FallbackPdftotext: opts.PDFFallback}, nil
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".txt":
		return &TextExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	case ".csv":
		return &CSVExtractor{}, nil
	default:
		return nil, &apperr.InvalidArgumentError{
			Field:  "file format",
			Value:  ext,
			Reason: "unsupported file extension",
			Valid:  Extensions(),
		}
	}
}

// Text extracts a document with the given options. Unsupported extensions yield an
// InvalidArgumentError; decoding failures yield an ExtractionError.
func (o Options) Text(data []byte, filename string) (*Document, error) {
	ex, err := ForFile(filename, o)
	if err != nil {
		return nil, err
	}
	doc, err := ex.Extract(data, filename)
	if err != nil {
		var ee *apperr.ExtractionError
		if errors.As(err, &ee) {
			return nil, err
		}
		return nil, &apperr.ExtractionError{Filename: filename, Cause: err}
	}
	doc.Text = normalizeNewlines(doc.Text)
	if strings.TrimSpace(doc.Title) == "" {
		doc.Title = stem(filename)
	}
	return doc, nil
}

// Text extracts a document with the PDF fallback enabled.
func Text(data []byte, filename string) (*Document, error) {
	return Options{PDFFallback: true}.Text(data, filename)
}

func stem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(s, "\f", "\n")
}

// joinBlocks joins the non-empty trimmed blocks with newlines.
func joinBlocks(blocks []string) string {
	kept := blocks[:0]
	for _, b := range blocks {
		if b = strings.TrimSpace(b); b != "" {
			kept = append(kept, b)
		}
	}
	return strings.Join(kept, "\n")
}

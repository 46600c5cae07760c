// Package segment splits document text into lines and sentences.
package segment

import (
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// Segmenter finds sentence boundaries with a Punkt tokenizer trained on English.
// A Segmenter is read-only after construction and safe to share.
type Segmenter struct {
	tokenizer *sentences.DefaultSentenceTokenizer
}

// New loads the English sentence model.
func New() (*Segmenter, error) {
	tok, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("load sentence model: %w", err)
	}
	return &Segmenter{tokenizer: tok}, nil
}

var defaultSegmenter = sync.OnceValue(func() *Segmenter {
	s, err := New()
	if err != nil {
		panic(err)
	}
	return s
})

// Default returns a process-wide Segmenter, loading the model on first use.
func Default() *Segmenter {
	return defaultSegmenter()
}

// Sentences returns the trimmed, non-empty sentences of text in order.
// A line break always ends a sentence, so list items and headers stand alone.
func (s *Segmenter) Sentences(text string) []string {
	var out []string
	for _, line := range Lines(text) {
		for _, sent := range s.tokenizer.Tokenize(line) {
			if t := strings.TrimSpace(sent.Text); t != "" {
				out = append(out, t)
			}
		}
	}
	return out
}

// Lines returns the trimmed, non-blank lines of text.
func Lines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

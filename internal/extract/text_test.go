package extract

import (
	"testing"
)

func TestTextExtractor_Basic(t *testing.T) {
	input := "First line.\nSecond line.\n\nThird paragraph."
	doc, err := Text([]byte(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if doc.Format != "txt" {
		t.Errorf("expected format %q, got %q", "txt", doc.Format)
	}
	if doc.Text != input {
		t.Errorf("expected %q, got %q", input, doc.Text)
	}
}

func TestTextExtractor_EmptyInput(t *testing.T) {
	doc, err := Text(nil, "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestTextExtractor_StripsBOM(t *testing.T) {
	doc, err := Text([]byte("\xEF\xBB\xBFAs a user I want to log in"), "story.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "As a user I want to log in" {
		t.Errorf("expected BOM to be stripped, got %q", doc.Text)
	}
}

func TestTextExtractor_CRLF(t *testing.T) {
	doc, err := Text([]byte("Step 1: open\r\nStep 2: close\r"), "steps.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Step 1: open\nStep 2: close\n"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

func TestTextExtractor_Latin1Fallback(t *testing.T) {
	// "café" encoded as ISO-8859-1.
	doc, err := Text([]byte{'c', 'a', 'f', 0xE9}, "menu.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "café" {
		t.Errorf("expected %q, got %q", "café", doc.Text)
	}
}

func TestTextExtractor_UppercaseExtension(t *testing.T) {
	doc, err := Text([]byte("hello"), "dir/README.TXT")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "README" {
		t.Errorf("expected title %q, got %q", "README", doc.Title)
	}
}

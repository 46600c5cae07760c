package extract

import (
	"strings"
	"testing"
)

func TestHTMLExtractor_TitleAndBlocks(t *testing.T) {
	input := `<html><head><title>Checkout Test</title><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<h1>Test Case</h1>
<p>Precondition:   cart has items</p>
<ol><li>Open checkout</li><li>Pay   now</li></ol>
<script>alert("x")</script>
<p>Expected: receipt shown</p>
</body></html>`

	doc, err := Text([]byte(input), "checkout.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "Checkout Test" {
		t.Errorf("expected title %q, got %q", "Checkout Test", doc.Title)
	}

	want := []string{
		"Test Case",
		"Precondition: cart has items",
		"1. Open checkout",
		"2. Pay now",
		"Expected: receipt shown",
	}
	got := strings.Split(doc.Text, "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d: %q", len(want), len(got), doc.Text)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestHTMLExtractor_TitleFallsBackToFilename(t *testing.T) {
	doc, err := Text([]byte("<p>hello</p>"), "page.htm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "page" {
		t.Errorf("expected title %q, got %q", "page", doc.Title)
	}
	if doc.Text != "hello" {
		t.Errorf("expected %q, got %q", "hello", doc.Text)
	}
}

func TestHTMLExtractor_OrderedListStart(t *testing.T) {
	doc, err := Text([]byte(`<ol start="3"><li>three</li><li>four</li></ol><ul><li>bullet</li></ul>`), "list.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "3. three\n4. four\nbullet"
	if doc.Text != want {
		t.Errorf("expected %q, got %q", want, doc.Text)
	}
}

package extract

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// HTMLExtractor handles HTML files. Block elements become lines and the <title>
// element, when present, becomes the document title.
type HTMLExtractor struct{}

func (e *HTMLExtractor) Extract(data []byte, filename string) (*Document, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var lines []string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "head", "noscript":
				return
			case "p", "td", "th", "blockquote", "pre", "dt", "dd",
				"h1", "h2", "h3", "h4", "h5", "h6":
				lines = append(lines, textContent(n))
				return
			case "li":
				lines = append(lines, listPrefix(n)+textContent(n))
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	if body := findBody(doc); body != nil {
		walk(body)
	} else {
		walk(doc)
	}

	return &Document{
		Title:  findTitle(doc),
		Text:   joinBlocks(lines),
		Format: "html",
	}, nil
}

// listPrefix numbers items of ordered lists, honoring the start attribute.
func listPrefix(li *html.Node) string {
	parent := li.Parent
	if parent == nil || parent.Type != html.ElementNode || parent.Data != "ol" {
		return ""
	}
	n := 1
	for _, a := range parent.Attr {
		if a.Key == "start" {
			fmt.Sscanf(a.Val, "%d", &n)
		}
	}
	for s := parent.FirstChild; s != nil && s != li; s = s.NextSibling {
		if s.Type == html.ElementNode && s.Data == "li" {
			n++
		}
	}
	return fmt.Sprintf("%d. ", n)
}

// textContent returns the text under n with runs of whitespace collapsed.
func textContent(n *html.Node) string {
	var buf strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.Join(strings.Fields(buf.String()), " ")
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		return textContent(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

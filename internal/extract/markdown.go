package extract

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownExtractor handles Markdown files using goldmark. Each block becomes a
// line; ordered list items keep their numbers so step lists survive.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(data []byte, filename string) (*Document, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(data))

	var lines []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		lines = appendBlock(lines, n, data, "")
	}
	return &Document{
		Title:  stem(filename),
		Text:   joinBlocks(lines),
		Format: "markdown",
	}, nil
}

func appendBlock(lines []string, n ast.Node, src []byte, prefix string) []string {
	switch node := n.(type) {
	case *ast.List:
		i := 0
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			p := ""
			if node.IsOrdered() {
				p = fmt.Sprintf("%d. ", node.Start+i)
			}
			lines = appendBlock(lines, item, src, p)
			i++
		}
	case *ast.ListItem, *ast.Blockquote:
		for c := node.FirstChild(); c != nil; c = c.NextSibling() {
			lines = appendBlock(lines, c, src, prefix)
			prefix = ""
		}
	case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
		lines = append(lines, prefix+rawLines(n, src))
	case *ast.ThematicBreak:
	default:
		lines = append(lines, prefix+inlineText(n, src))
	}
	return lines
}

func rawLines(n ast.Node, src []byte) string {
	var buf strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		buf.Write(seg.Value(src))
	}
	return strings.TrimSpace(buf.String())
}

// inlineText gets the text content of a goldmark node, keeping soft and hard line
// breaks as newlines.
func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(buf.String())
}

package search

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gtext "github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// normalizeText flattens page content to plain text for indexing and
// previews: HTML tags are stripped, markdown structure is collapsed, and
// whitespace runs become single spaces.
func normalizeText(s string) string {
	if s == "" {
		return ""
	}
	s = stripHTML(s)
	s = markdownText(s)
	return strings.Join(strings.Fields(s), " ")
}

// markdownText renders markdown source as plain text by collecting the text
// leaves of goldmark's AST. Code blocks keep their raw lines.
func markdownText(src string) string {
	source := []byte(src)
	doc := goldmark.New().Parser().Parse(gtext.NewReader(source))

	var buf bytes.Buffer
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				buf.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			buf.Write(t.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.CodeBlock, *ast.FencedCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				line := lines.At(i)
				buf.Write(line.Value(source))
			}
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// stripHTML removes markup from embedded HTML, keeping text content. Input
// without tags passes through untouched.
func stripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := html.Parse(strings.NewReader(s))
	if err != nil {
		return s
	}

	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			}
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return buf.String()
}

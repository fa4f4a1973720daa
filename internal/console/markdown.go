package console

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// markdownRenderer turns the small markdown subset the assistant uses
// (headings, emphasis, lists, code) into terminal text.
type markdownRenderer struct {
	parser  goldmark.Markdown
	heading *color.Color
	bold    *color.Color
	italic  *color.Color
	code    *color.Color
}

func newMarkdownRenderer(colored bool) *markdownRenderer {
	r := &markdownRenderer{
		parser:  goldmark.New(),
		heading: color.New(color.FgCyan, color.Bold),
		bold:    color.New(color.Bold),
		italic:  color.New(color.Italic),
		code:    color.New(color.FgYellow),
	}
	if !colored {
		for _, c := range []*color.Color{r.heading, r.bold, r.italic, r.code} {
			c.DisableColor()
		}
	}
	return r
}

// Render returns src as terminal text without trailing newlines.
func (r *markdownRenderer) Render(src string) string {
	source := []byte(src)
	doc := r.parser.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		r.block(&b, n, source, "")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (r *markdownRenderer) block(b *strings.Builder, n ast.Node, source []byte, indent string) {
	switch n := n.(type) {
	case *ast.Heading:
		b.WriteString(indent + r.heading.Sprint(r.inline(n, source)) + "\n\n")
	case *ast.Paragraph:
		r.lines(b, r.inline(n, source), indent)
		b.WriteString("\n")
	case *ast.TextBlock:
		r.lines(b, r.inline(n, source), indent)
	case *ast.List:
		r.list(b, n, source, indent)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			line := strings.TrimRight(string(seg.Value(source)), "\n")
			b.WriteString(indent + "    " + r.code.Sprint(line) + "\n")
		}
		b.WriteString("\n")
	case *ast.ThematicBreak:
		b.WriteString(indent + strings.Repeat("─", 20) + "\n\n")
	default:
		r.lines(b, r.inline(n, source), indent)
	}
}

func (r *markdownRenderer) list(b *strings.Builder, list *ast.List, source []byte, indent string) {
	number := list.Start
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "• "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", number)
			number++
		}

		var body strings.Builder
		for c := item.FirstChild(); c != nil; c = c.NextSibling() {
			r.block(&body, c, source, "")
		}

		for i, line := range strings.Split(strings.TrimRight(body.String(), "\n"), "\n") {
			switch {
			case i == 0:
				b.WriteString(indent + "  " + marker + line + "\n")
			case line != "":
				b.WriteString(indent + "    " + line + "\n")
			}
		}
	}
	b.WriteString("\n")
}

func (r *markdownRenderer) lines(b *strings.Builder, s, indent string) {
	for _, line := range strings.Split(s, "\n") {
		b.WriteString(indent + line + "\n")
	}
}

func (r *markdownRenderer) inline(n ast.Node, source []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			b.Write(c.Value)
		case *ast.Emphasis:
			if c.Level >= 2 {
				b.WriteString(r.bold.Sprint(r.inline(c, source)))
			} else {
				b.WriteString(r.italic.Sprint(r.inline(c, source)))
			}
		case *ast.CodeSpan:
			b.WriteString(r.code.Sprint(r.inline(c, source)))
		case *ast.AutoLink:
			b.Write(c.URL(source))
		case *ast.Link:
			fmt.Fprintf(&b, "%s (%s)", r.inline(c, source), c.Destination)
		default:
			b.WriteString(r.inline(c, source))
		}
	}
	return b.String()
}

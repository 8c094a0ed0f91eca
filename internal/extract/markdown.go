package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// mdKind is the variant of an mdNode.
type mdKind int

const (
	mdText mdKind = iota
	mdLink
	mdImage
	mdContainer
)

// mdNode is the document tree the reader renders from. It is built fresh from each
// parse and never mutated; transforms return copies.
type mdNode struct {
	kind        mdKind
	text        string // mdText
	destination string // mdLink, mdImage
	block       bool   // mdContainer rendered on its own lines
	children    []*mdNode
}

// readMarkdown returns the file rendered as plain text with every link and image
// destination removed, as a single trimmed string.
func readMarkdown(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read markdown: %w", err)
	}
	return []string{MarkdownText([]byte(validUTF8(content)))}, nil
}

// MarkdownText parses src as Markdown and renders its visible text. Link and image
// text is kept; their URLs are dropped.
func MarkdownText(src []byte) string {
	doc := markdown.Parser().Parse(text.NewReader(src))
	tree := scrubDestinations(buildMarkdownTree(doc, src))
	var b strings.Builder
	renderMarkdownTree(&b, tree)
	return strings.TrimSpace(b.String())
}

func buildMarkdownTree(n ast.Node, src []byte) *mdNode {
	switch v := n.(type) {
	case *ast.Text:
		s := string(v.Segment.Value(src))
		if v.SoftLineBreak() || v.HardLineBreak() {
			s += "\n"
		}
		return &mdNode{kind: mdText, text: s}
	case *ast.String:
		return &mdNode{kind: mdText, text: string(v.Value)}
	case *ast.AutoLink:
		return &mdNode{
			kind:        mdLink,
			destination: string(v.URL(src)),
			children:    []*mdNode{{kind: mdText, text: string(v.Label(src))}},
		}
	case *ast.Link:
		return &mdNode{kind: mdLink, destination: string(v.Destination), children: buildChildren(n, src)}
	case *ast.Image:
		return &mdNode{kind: mdImage, destination: string(v.Destination), children: buildChildren(n, src)}
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return &mdNode{kind: mdContainer, block: true, children: []*mdNode{{kind: mdText, text: blockLines(n, src)}}}
	case *ast.HTMLBlock, *ast.RawHTML, *ast.ThematicBreak:
		return &mdNode{kind: mdContainer}
	}
	return &mdNode{kind: mdContainer, block: n.Type() == ast.TypeBlock || n.Type() == ast.TypeDocument, children: buildChildren(n, src)}
}

func buildChildren(n ast.Node, src []byte) []*mdNode {
	var children []*mdNode
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		children = append(children, buildMarkdownTree(c, src))
	}
	return children
}

func blockLines(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return b.String()
}

// scrubDestinations returns a copy of n with the destination of every link and image
// cleared. Child text is preserved.
func scrubDestinations(n *mdNode) *mdNode {
	c := &mdNode{kind: n.kind, text: n.text, destination: n.destination, block: n.block}
	if c.kind == mdLink || c.kind == mdImage {
		c.destination = ""
	}
	if len(n.children) > 0 {
		c.children = make([]*mdNode, len(n.children))
		for i, child := range n.children {
			c.children[i] = scrubDestinations(child)
		}
	}
	return c
}

func renderMarkdownTree(b *strings.Builder, n *mdNode) {
	switch n.kind {
	case mdText:
		b.WriteString(n.text)
	case mdLink, mdImage:
		for _, c := range n.children {
			renderMarkdownTree(b, c)
		}
		if n.destination != "" {
			b.WriteString(" (")
			b.WriteString(n.destination)
			b.WriteString(")")
		}
	case mdContainer:
		if n.block {
			endLine(b)
		}
		for _, c := range n.children {
			renderMarkdownTree(b, c)
		}
		if n.block {
			endLine(b)
		}
	}
}

func endLine(b *strings.Builder) {
	s := b.String()
	if s != "" && !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}

package extract

import (
	"archive/zip"
	"fmt"
	"io/fs"
	"strings"

	"github.com/beevik/etree"
)

// readZipXML parses the named entry of an open zip archive as XML.
func readZipXML(zr *zip.Reader, name string) (*etree.Document, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		doc := etree.NewDocument()
		if _, err := doc.ReadFrom(rc); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		return doc, nil
	}
	return nil, fmt.Errorf("%s: %w", name, fs.ErrNotExist)
}

// paragraphText concatenates the text runs beneath p. textTag names the run element
// (w:t, a:t); tab and line break elements become a space. Nested paragraphs are not
// descended into; they are visited on their own.
func paragraphText(p *etree.Element, space, textTag string) string {
	var b strings.Builder
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Space != space {
				walk(child)
				continue
			}
			switch child.Tag {
			case textTag:
				b.WriteString(child.Text())
			case "tab", "br":
				b.WriteByte(' ')
			case "p":
			default:
				walk(child)
			}
		}
	}
	walk(p)
	return strings.TrimSpace(b.String())
}

// paragraphLines returns the text of every space:p element under root in document
// order, dropping paragraphs with no text.
func paragraphLines(root *etree.Element, space, textTag string) []string {
	var lines []string
	for _, p := range root.FindElements("//" + space + ":p") {
		if text := paragraphText(p, space, textTag); text != "" {
			lines = append(lines, text)
		}
	}
	return lines
}

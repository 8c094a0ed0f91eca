package extract

import (
	"archive/zip"
	"fmt"
	"strings"

	"github.com/beevik/etree"
)

// odfContentPath is the body of every OpenDocument package.
const odfContentPath = "content.xml"

func readODFContent(path string) (*etree.Element, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("extract OpenDocument: not a zip: %w", err)
	}
	defer zr.Close()

	doc, err := readZipXML(&zr.Reader, odfContentPath)
	if err != nil {
		return nil, fmt.Errorf("extract OpenDocument: %w", err)
	}
	return doc.Root(), nil
}

// readODP returns one line per non-empty text:p or text:h element of a presentation.
func readODP(path string) ([]string, error) {
	root, err := readODFContent(path)
	if err != nil || root == nil {
		return nil, err
	}
	var lines []string
	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		for _, child := range el.ChildElements() {
			if child.Space == "text" && (child.Tag == "p" || child.Tag == "h") {
				if text := strings.TrimSpace(odfText(child)); text != "" {
					lines = append(lines, text)
				}
				continue
			}
			walk(child)
		}
	}
	walk(root)
	return lines, nil
}

// readODS returns one line per non-empty table row of a spreadsheet, cells joined
// with the CSV column policy.
func readODS(path string) ([]string, error) {
	root, err := readODFContent(path)
	if err != nil || root == nil {
		return nil, err
	}
	var lines []string
	for _, row := range root.FindElements("//table:table-row") {
		var cells []string
		for _, cell := range row.SelectElements("table:table-cell") {
			var paras []string
			for _, p := range cell.SelectElements("text:p") {
				paras = append(paras, strings.TrimSpace(odfText(p)))
			}
			cells = append(cells, joinColumns(paras))
		}
		if line := joinColumns(cells); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// odfText returns the character data under el, spans included. text:s, text:tab and
// text:line-break count as a single space.
func odfText(el *etree.Element) string {
	var b strings.Builder
	for _, tok := range el.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			if t.Space == "text" && (t.Tag == "s" || t.Tag == "tab" || t.Tag == "line-break") {
				b.WriteByte(' ')
				continue
			}
			b.WriteString(odfText(t))
		}
	}
	return b.String()
}

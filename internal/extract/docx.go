package extract

import (
	"archive/zip"
	"fmt"
	"strings"
)

// docxDocumentXMLPath is the default path to the main document body inside a .docx zip.
const docxDocumentXMLPath = "word/document.xml"

// contentTypesPath is the path to [Content_Types].xml in OOXML packages.
const contentTypesPath = "[Content_Types].xml"

// docxMainContentType is the content type for the main document in DOCX files.
const docxMainContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"

// findDocxMainDocumentPath finds the main document path from [Content_Types].xml.
// Returns the path without leading slash, or empty string if not found.
func findDocxMainDocumentPath(zr *zip.Reader) string {
	doc, err := readZipXML(zr, contentTypesPath)
	if err != nil || doc.Root() == nil {
		return ""
	}
	for _, o := range doc.Root().SelectElements("Override") {
		if o.SelectAttrValue("ContentType", "") == docxMainContentType {
			return strings.TrimPrefix(o.SelectAttrValue("PartName", ""), "/")
		}
	}
	return ""
}

// readDOCX returns one line per non-empty paragraph of the main document, table cell
// paragraphs included. Paragraph attributes are irrelevant; all w:t runs are joined.
func readDOCX(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: not a zip: %w", err)
	}
	defer zr.Close()

	docPath := findDocxMainDocumentPath(&zr.Reader)
	if docPath == "" {
		docPath = docxDocumentXMLPath
	}
	doc, err := readZipXML(&zr.Reader, docPath)
	if err != nil {
		return nil, fmt.Errorf("extract DOCX: %w", err)
	}
	if doc.Root() == nil {
		return nil, nil
	}
	return paragraphLines(doc.Root(), "w", "t"), nil
}

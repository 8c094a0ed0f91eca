package extract

import (
	"archive/zip"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// pptxSlidePathPrefix is the path prefix for slide XML files inside a .pptx zip.
const pptxSlidePathPrefix = "ppt/slides/slide"

// readPPTX returns one line per non-empty a:p paragraph, slide by slide in slide
// number order (slide2 before slide10).
func readPPTX(path string) ([]string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("extract PPTX: not a zip: %w", err)
	}
	defer zr.Close()

	var slides []string
	for _, f := range zr.File {
		if slideNumber(f.Name) > 0 {
			slides = append(slides, f.Name)
		}
	}
	sort.Slice(slides, func(i, j int) bool {
		return slideNumber(slides[i]) < slideNumber(slides[j])
	})

	var lines []string
	for _, name := range slides {
		doc, err := readZipXML(&zr.Reader, name)
		if err != nil {
			return nil, fmt.Errorf("extract PPTX: %w", err)
		}
		if doc.Root() == nil {
			continue
		}
		lines = append(lines, paragraphLines(doc.Root(), "a", "t")...)
	}
	return lines, nil
}

// slideNumber returns N for "ppt/slides/slideN.xml", or 0 for any other entry.
func slideNumber(name string) int {
	if !strings.HasPrefix(name, pptxSlidePathPrefix) || !strings.HasSuffix(name, ".xml") {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, pptxSlidePathPrefix), ".xml"))
	if err != nil {
		return 0
	}
	return n
}

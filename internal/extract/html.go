package extract

import (
	"fmt"
	"os"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
)

// htmlNoise lists elements that never carry document content.
const htmlNoise = "script, style, noscript, nav, header, footer, iframe"

var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(),
		table.NewTablePlugin(),
	),
)

// readHTML strips page chrome, converts the rest to Markdown and renders it through
// the Markdown reader, so link and image URLs are dropped the same way.
func readHTML(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open HTML: %w", err)
	}
	defer f.Close()

	doc, err := goquery.NewDocumentFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	doc.Find(htmlNoise).Remove()

	body := doc.Find("body")
	if body.Length() == 0 {
		body = doc.Selection
	}
	html, err := body.Html()
	if err != nil {
		return nil, fmt.Errorf("render HTML: %w", err)
	}
	if strings.TrimSpace(html) == "" {
		return nil, nil
	}

	md, err := htmlConverter.ConvertString(html)
	if err != nil {
		return nil, fmt.Errorf("convert HTML: %w", err)
	}
	text := MarkdownText([]byte(md))
	if text == "" {
		return nil, nil
	}
	return []string{text}, nil
}

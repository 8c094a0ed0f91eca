// Package extract reads document files into ordered lines of text.
//
// Every format is a Reader registered under one or more file extensions. Dispatch
// is a table lookup, so adding a format means registering one more Reader.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrUnsupportedFormat is returned by Registry.Read when no reader is registered
// for the file's extension.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Reader returns the semantic content of one file as ordered lines.
type Reader func(path string) ([]string, error)

// Registry maps file extensions to readers. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	readers map[string]Reader
}

// NewRegistry returns a registry holding the default readers.
func NewRegistry() *Registry {
	r := &Registry{readers: make(map[string]Reader)}
	for ext, reader := range defaultReaders() {
		r.Register(ext, reader)
	}
	return r
}

func defaultReaders() map[string]Reader {
	return map[string]Reader{
		".txt":      readPlain,
		".text":     readPlain,
		".rst":      readPlain,
		".log":      readPlain,
		".csv":      readCSV,
		".tsv":      readTSV,
		".json":     readJSON,
		".jsonl":    readJSON,
		".ndjson":   readJSON,
		".md":       readMarkdown,
		".markdown": readMarkdown,
		".pdf":      readPDF,
		".docx":     readDOCX,
		".xlsx":     readExcel,
		".pptx":     readPPTX,
		".odp":      readODP,
		".ods":      readODS,
		".odt":      readWithCat,
		".rtf":      readWithCat,
		".html":     readHTML,
		".htm":      readHTML,
	}
}

// Register adds or replaces the reader for ext. The extension is matched
// case-insensitively; the leading dot is optional.
func (r *Registry) Register(ext string, reader Reader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readers[normalizeExt(ext)] = reader
}

// Lookup returns the reader registered for ext.
func (r *Registry) Lookup(ext string) (Reader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reader, ok := r.readers[normalizeExt(ext)]
	return reader, ok
}

// Supports reports whether a reader is registered for the extension of path.
func (r *Registry) Supports(path string) bool {
	_, ok := r.Lookup(filepath.Ext(path))
	return ok
}

// Extensions returns the registered extensions, sorted.
func (r *Registry) Extensions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	exts := make([]string, 0, len(r.readers))
	for ext := range r.readers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Read dispatches path to the reader registered for its extension.
// Returns an error wrapping ErrUnsupportedFormat when there is none.
func (r *Registry) Read(path string) ([]string, error) {
	ext := filepath.Ext(path)
	reader, ok := r.Lookup(ext)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(ext))
	}
	return reader(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// splitLines splits text on "\n", accepting "\r\n" terminators.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// joinColumns drops columns that are blank after trimming and joins the rest with a single space.
func joinColumns(cols []string) string {
	kept := make([]string, 0, len(cols))
	for _, c := range cols {
		if strings.TrimSpace(c) != "" {
			kept = append(kept, c)
		}
	}
	return strings.Join(kept, " ")
}

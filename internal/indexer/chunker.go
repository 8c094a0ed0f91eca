package indexer

import "strings"

// Chunker splits long text into overlapping word windows.
type Chunker struct {
	chunkSize    int
	chunkOverlap int
}

// NewChunker creates a chunker with the given size and overlap (in words).
// A chunkSize of zero or less disables splitting.
func NewChunker(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
	}
}

// Enabled reports whether the chunker splits anything.
func (c *Chunker) Enabled() bool {
	return c != nil && c.chunkSize > 0
}

// Chunk returns text unchanged when it fits in one window, otherwise the overlapping
// windows joined by single spaces. Blank text yields nil.
func (c *Chunker) Chunk(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	if !c.Enabled() {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) <= c.chunkSize {
		return []string{text}
	}
	step := c.chunkSize - c.chunkOverlap
	if step <= 0 {
		step = 1
	}
	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + c.chunkSize
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[i:end], " "))
		if end >= len(words) {
			break
		}
	}
	return chunks
}

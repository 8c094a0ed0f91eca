package extract

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"
)

func readPlain(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return splitLines(validUTF8(content)), nil
}

// validUTF8 returns content as string, replacing invalid UTF-8 sequences with the
// replacement character.
func validUTF8(content []byte) string {
	if !utf8.Valid(content) {
		return strings.ToValidUTF8(string(content), "\ufffd")
	}
	return string(content)
}

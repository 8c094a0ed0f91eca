package extract

import (
	"fmt"

	"github.com/lu4p/cat"
)

// readWithCat handles the formats lu4p/cat understands natively (.odt, .rtf).
func readWithCat(path string) ([]string, error) {
	text, err := cat.File(path)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}
	return splitLines(text), nil
}

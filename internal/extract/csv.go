package extract

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

func readCSV(path string) ([]string, error) {
	return readDelimited(path, ',')
}

func readTSV(path string) ([]string, error) {
	return readDelimited(path, '\t')
}

// readDelimited returns one line per row: blank columns dropped, the rest joined with a
// space. Rows left empty are dropped.
func readDelimited(path string, comma rune) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	var rows []string
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse CSV: %w", err)
		}
		if row := joinColumns(record); row != "" {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

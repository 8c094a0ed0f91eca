package extract

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// readExcel returns one line per non-empty row across all sheets, in sheet order.
// Cells follow the same policy as CSV columns.
func readExcel(path string) ([]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open Excel: %w", err)
	}
	defer f.Close()

	var lines []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("get rows for sheet %q: %w", sheet, err)
		}
		for _, row := range rows {
			if line := joinColumns(row); line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines, nil
}

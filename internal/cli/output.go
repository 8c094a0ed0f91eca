// Package cli formats search and scan results for the terminal.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/pkg/utils"
)

// OutputFormat is the format for result output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputCompact is one result per line.
	OutputCompact OutputFormat = "compact"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// snippetLen is the longest unit text shown in text output.
const snippetLen = 200

// ParseOutputFormat returns the format named by s.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case "", OutputText:
		return OutputText, nil
	case OutputCompact, OutputJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text, compact, or json", s)
	}
}

// WriteSearchResults writes search results to w in the given format.
// Use OutputJSON for parseable output consumable by other apps.
func WriteSearchResults(w io.Writer, response *models.SearchResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCompact:
		for _, r := range response.Results {
			if _, err := fmt.Fprintf(w, "%.4f\t%s\t%s\n", r.Score, source(r.Unit), utils.OneLine(r.Unit.Text)); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeSearchResultsText(w, response)
	}
}

func writeSearchResultsText(w io.Writer, response *models.SearchResponse) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nFound %d units in %dms, showing %d\n", response.Total, response.QueryTime, len(response.Results))
	writeReportText(&b, response.Scan)
	b.WriteString("\n")
	for _, r := range response.Results {
		fmt.Fprintf(&b, "[%d] Score: %.4f", r.Rank, r.Score)
		if r.Unit.IsSegment() {
			fmt.Fprintf(&b, " | File: %s", r.Unit.Metadata.FileName)
		}
		fmt.Fprintf(&b, "\n    %s\n", utils.Truncate(utils.OneLine(r.Unit.Text), snippetLen))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// WriteScanResults writes the units of a scan to w in the given format.
func WriteScanResults(w io.Writer, response *models.ScanResponse, format OutputFormat) error {
	switch format {
	case OutputJSON:
		return writeJSON(w, response)
	case OutputCompact:
		for _, u := range response.Units {
			if _, err := fmt.Fprintf(w, "%s\t%s\n", source(u), utils.OneLine(u.Text)); err != nil {
				return err
			}
		}
		return nil
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "\nScanned %d units\n", len(response.Units))
		writeReportText(&b, response.Scan)
		b.WriteString("\n")
		for i, u := range response.Units {
			fmt.Fprintf(&b, "%4d  ", i+1)
			if u.IsSegment() {
				fmt.Fprintf(&b, "[%s] ", u.Metadata.FileName)
			}
			b.WriteString(utils.Truncate(utils.OneLine(u.Text), snippetLen))
			b.WriteString("\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	}
}

func writeReportText(b *strings.Builder, r *models.ScanReport) {
	if r == nil {
		return
	}
	fmt.Fprintf(b, "Directory: %s (%d files read", r.Directory, r.Files)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(b, ", %d skipped", len(r.Skipped))
	}
	b.WriteString(")\n")
	for _, f := range r.Failures {
		fmt.Fprintf(b, "  failed: %s\n", f.Error())
	}
}

func source(u models.Unit) string {
	if u.IsSegment() {
		return u.Metadata.FileName
	}
	return "-"
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

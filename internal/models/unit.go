// Package models defines core data structures for text units, scan reports, queries, and ranked results.
package models

import (
	"fmt"
	"strings"
)

// Mode selects the shape of the units a scan produces.
type Mode string

const (
	// ModeLine produces raw deduplicated lines without metadata.
	ModeLine Mode = "line"
	// ModeSegment produces one segment per line annotated with its originating file.
	ModeSegment Mode = "segment"
)

// ParseMode returns the Mode named by s. An empty string means ModeLine.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeLine:
		return ModeLine, nil
	case ModeSegment:
		return ModeSegment, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want %q or %q)", s, ModeLine, ModeSegment)
	}
}

// Metadata keys exposed by Metadata.Map.
const (
	MetaKeyFileName  = "file_name"
	MetaKeyExtension = "extension"
)

// Metadata annotates a segment with its origin. The zero value means "no metadata" (a raw line).
type Metadata struct {
	FileName  string `json:"file_name,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// IsZero reports whether m carries no annotations.
func (m Metadata) IsZero() bool {
	return m == Metadata{}
}

// Map returns the metadata as a key/value mapping. Empty values are omitted.
func (m Metadata) Map() map[string]string {
	out := make(map[string]string, 2)
	if m.FileName != "" {
		out[MetaKeyFileName] = m.FileName
	}
	if m.Extension != "" {
		out[MetaKeyExtension] = m.Extension
	}
	return out
}

// Unit is a deduplicated piece of ingested content eligible for ranking: either a raw
// line (zero Metadata) or a segment (Metadata.FileName set). Unit is comparable and is
// used directly as a map key in Ranked.
type Unit struct {
	Text     string   `json:"text"`
	Metadata Metadata `json:"metadata,omitzero"`
}

// Line returns a raw line unit.
func Line(text string) Unit {
	return Unit{Text: text}
}

// Segment returns a unit annotated with the name of the file it came from.
func Segment(text, fileName, ext string) Unit {
	return Unit{Text: text, Metadata: Metadata{FileName: fileName, Extension: ext}}
}

// IsSegment reports whether u carries segment metadata.
func (u Unit) IsSegment() bool {
	return u.Metadata.FileName != ""
}

// Texts returns the text of each unit, in order.
func Texts(units []Unit) []string {
	texts := make([]string, len(units))
	for i, u := range units {
		texts[i] = u.Text
	}
	return texts
}

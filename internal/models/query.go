package models

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidQuery is returned when a search or scan request is malformed.
var ErrInvalidQuery = errors.New("invalid query")

// SearchQuery is a request to rank the units of one directory against a query.
type SearchQuery struct {
	Directory string  `json:"directory"`
	Query     string  `json:"query"`
	Mode      Mode    `json:"mode,omitempty"`
	Limit     int     `json:"limit,omitempty"`
	// MinScore drops list entries scoring below it; nil keeps every score. The
	// ranked map is never filtered.
	MinScore *float64 `json:"min_score,omitempty"`
}

// Validate ensures the search query has valid fields and sets defaults.
// Limit <= 0 means the configured default; limits above maxLimit are capped.
func (q *SearchQuery) Validate(defaultLimit, maxLimit int) error {
	q.Query = strings.TrimSpace(q.Query)
	if q.Query == "" {
		return fmt.Errorf("%w: query cannot be empty", ErrInvalidQuery)
	}
	if strings.TrimSpace(q.Directory) == "" {
		return fmt.Errorf("%w: directory cannot be empty", ErrInvalidQuery)
	}
	mode, err := ParseMode(string(q.Mode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	q.Mode = mode
	if q.MinScore != nil && (*q.MinScore < -1 || *q.MinScore > 1) {
		return fmt.Errorf("%w: min_score must be within [-1, 1]", ErrInvalidQuery)
	}
	if q.Limit <= 0 {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return nil
}

// ScanQuery is a request to scan one directory without ranking.
type ScanQuery struct {
	Directory string `json:"directory"`
	Mode      Mode   `json:"mode,omitempty"`
}

// Validate ensures the scan query names a directory and a known mode.
func (q *ScanQuery) Validate() error {
	if strings.TrimSpace(q.Directory) == "" {
		return fmt.Errorf("%w: directory cannot be empty", ErrInvalidQuery)
	}
	mode, err := ParseMode(string(q.Mode))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidQuery, err)
	}
	q.Mode = mode
	return nil
}

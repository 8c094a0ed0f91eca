package models

import "sort"

// Ranked maps every input unit to its cosine similarity against the query.
// It carries no iteration order; use Sorted for a ranked list.
type Ranked map[Unit]float64

// Scored is one entry of a ranked list.
type Scored struct {
	Unit  Unit    `json:"unit"`
	Score float64 `json:"score"`
	Rank  int     `json:"rank"`
}

// Sorted returns the entries ordered by score descending. Ties are broken by text,
// then by file name, so the order is deterministic.
func (r Ranked) Sorted() []Scored {
	out := make([]Scored, 0, len(r))
	for u, s := range r {
		out = append(out, Scored{Unit: u, Score: s})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if out[i].Unit.Text != out[j].Unit.Text {
			return out[i].Unit.Text < out[j].Unit.Text
		}
		return out[i].Unit.Metadata.FileName < out[j].Unit.Metadata.FileName
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query   string      `json:"query"`
	Results []Scored    `json:"results"`
	Total   int         `json:"total"` // number of ranked units before limit/min_score
	Scan    *ScanReport `json:"scan"`
	// QueryTime covers scan plus rank.
	QueryTime int64 `json:"query_time_ms"`
}

// ScanResponse is the response for a scan request.
type ScanResponse struct {
	Units []Unit      `json:"units"`
	Scan  *ScanReport `json:"scan"`
}

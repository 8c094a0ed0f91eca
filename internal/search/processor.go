package search

import (
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/models"
)

// ProcessQuery validates and applies defaults to the search query. A nil cfg means
// no default limit and no cap.
func ProcessQuery(query *models.SearchQuery, cfg *config.SearchConfig) error {
	if cfg == nil {
		return query.Validate(0, 0)
	}
	return query.Validate(cfg.DefaultLimit, cfg.MaxLimit)
}

// Filter drops results scoring below minScore (nil disables the threshold) and keeps
// at most limit of the rest.
// A limit of zero or less keeps everything. results must already be sorted.
func Filter(results []models.Scored, minScore *float64, limit int) []models.Scored {
	filtered := make([]models.Scored, 0, len(results))
	for _, r := range results {
		if minScore != nil && r.Score < *minScore {
			continue
		}
		filtered = append(filtered, r)
	}
	if limit > 0 && len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered
}

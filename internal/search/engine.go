// Package search scans a directory and ranks its units against a query.
package search

import (
	"context"
	"time"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/embedding"
	"github.com/hyperjump/shirabe/internal/indexer"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/ranking"
	"github.com/hyperjump/shirabe/pkg/utils"
	"go.uber.org/zap"
)

// Engine runs scan-then-rank searches. It keeps nothing between calls.
type Engine struct {
	scanner  *indexer.Scanner
	embedder embedding.Embedder
	config   *config.SearchConfig
	logger   *zap.Logger
}

// NewEngine creates a search engine with the given dependencies. logger may be nil.
func NewEngine(scanner *indexer.Scanner, embedder embedding.Embedder, cfg *config.SearchConfig, logger *zap.Logger) *Engine {
	return &Engine{
		scanner:  scanner,
		embedder: embedder,
		config:   cfg,
		logger:   utils.OrNop(logger),
	}
}

// Scan returns the units of dir in the given mode with the scan diagnostics.
func (e *Engine) Scan(ctx context.Context, dir string, mode models.Mode) ([]models.Unit, *models.ScanReport, error) {
	return e.scanner.Scan(ctx, dir, mode)
}

// Rank scores units against query. See ranking.Rank.
func (e *Engine) Rank(ctx context.Context, query string, units []models.Unit) (models.Ranked, error) {
	return ranking.Rank(ctx, e.embedder, query, units)
}

// Search validates query, scans its directory, ranks every unit and returns them
// best first. MinScore and Limit only trim the returned list; Total counts every
// ranked unit.
func (e *Engine) Search(ctx context.Context, query *models.SearchQuery) (*models.SearchResponse, error) {
	startTime := time.Now()
	if err := ProcessQuery(query, e.config); err != nil {
		return nil, err
	}

	units, report, err := e.Scan(ctx, query.Directory, query.Mode)
	if err != nil {
		return nil, err
	}
	ranked, err := e.Rank(ctx, query.Query, units)
	if err != nil {
		return nil, err
	}
	sorted := ranked.Sorted()
	response := &models.SearchResponse{
		Query:     query.Query,
		Results:   Filter(sorted, query.MinScore, query.Limit),
		Total:     len(sorted),
		Scan:      report,
		QueryTime: time.Since(startTime).Milliseconds(),
	}
	e.logger.Debug("search finished",
		zap.String("scan_id", report.ScanID),
		zap.String("query", query.Query),
		zap.Int("units", len(units)),
		zap.Int("results", len(response.Results)),
		zap.Int64("query_time_ms", response.QueryTime),
	)
	return response, nil
}

// Package indexer scans a directory into deduplicated text units.
package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/extract"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/pkg/utils"
	"go.uber.org/zap"
)

// ErrNotDirectory is returned by Scan when the path exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Scanner reads every supported file directly inside a directory and turns their
// lines into deduplicated units. A Scanner holds no per-scan state and is safe for
// concurrent use.
type Scanner struct {
	registry *extract.Registry
	policy   config.UnsupportedPolicy
	chunker  *Chunker
	logger   *zap.Logger
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLogger sets a logger for per-file events and read failures.
func WithLogger(l *zap.Logger) ScannerOption {
	return func(s *Scanner) { s.logger = l }
}

// WithPolicy sets what happens to files with no registered reader. The default is
// config.UnsupportedSkip.
func WithPolicy(p config.UnsupportedPolicy) ScannerOption {
	return func(s *Scanner) { s.policy = p }
}

// WithChunker splits long lines into word windows before deduplication.
func WithChunker(c *Chunker) ScannerOption {
	return func(s *Scanner) { s.chunker = c }
}

// NewScanner creates a scanner reading through registry. A nil registry means
// extract.NewRegistry().
func NewScanner(registry *extract.Registry, opts ...ScannerOption) *Scanner {
	if registry == nil {
		registry = extract.NewRegistry()
	}
	s := &Scanner{
		registry: registry,
		policy:   config.UnsupportedSkip,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = utils.OrNop(s.logger)
	return s
}

// NewScannerFromConfig creates a scanner with the policy and window settings of cfg.
func NewScannerFromConfig(cfg *config.ScanConfig, registry *extract.Registry, logger *zap.Logger) *Scanner {
	return NewScanner(registry,
		WithLogger(logger),
		WithPolicy(cfg.UnsupportedPolicy),
		WithChunker(NewChunker(cfg.MaxUnitWords, cfg.UnitOverlapWords)),
	)
}

// Registry returns the reader registry the scanner dispatches through.
func (s *Scanner) Registry() *extract.Registry {
	return s.registry
}

// Scan reads the regular files directly inside dir (subdirectories are not visited),
// in name order. Each non-blank line becomes a unit; a text already seen in this scan,
// compared after trimming, is dropped so the first occurrence wins. In ModeSegment
// each unit carries the name of the file it came from.
//
// A file that fails to read contributes nothing and is recorded in the report; the
// scan continues. Files without a reader are skipped or abort the scan depending on
// the policy.
func (s *Scanner) Scan(ctx context.Context, dir string, mode models.Mode) ([]models.Unit, *models.ScanReport, error) {
	start := time.Now()
	if mode == "" {
		mode = models.ModeLine
	}
	if mode != models.ModeLine && mode != models.ModeSegment {
		return nil, nil, fmt.Errorf("%w: unknown mode %q", models.ErrInvalidQuery, mode)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("absolute path: %w", err)
	}
	info, err := os.Stat(absDir)
	if err != nil {
		return nil, nil, fmt.Errorf("stat directory: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrNotDirectory, absDir)
	}
	entries, err := os.ReadDir(absDir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory: %w", err)
	}

	report := &models.ScanReport{
		ScanID:    uuid.New().String(),
		Directory: absDir,
		Mode:      mode,
	}
	logger := s.logger.With(zap.String("scan_id", report.ScanID))
	logger.Debug("scan started", zap.String("dir", absDir), zap.String("mode", string(mode)))

	seen := make(map[string]struct{})
	units := make([]models.Unit, 0)
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		path := filepath.Join(absDir, entry.Name())
		// Resolve symlinks so only regular files are read.
		finfo, statErr := os.Stat(path)
		if statErr != nil || !finfo.Mode().IsRegular() {
			continue
		}
		if !s.registry.Supports(path) {
			if s.policy == config.UnsupportedFail {
				return nil, nil, fmt.Errorf("scan %s: %w: %q", entry.Name(), extract.ErrUnsupportedFormat, strings.ToLower(filepath.Ext(path)))
			}
			report.Skipped = append(report.Skipped, entry.Name())
			logger.Debug("skipping unsupported file", zap.String("path", path))
			continue
		}
		report.Files++
		lines, readErr := s.registry.Read(path)
		if readErr != nil {
			report.Failures = append(report.Failures, models.FileFailure{Path: path, Err: readErr})
			logger.Warn("failed to read file", zap.String("path", path), zap.Error(readErr))
			continue
		}
		before := len(units)
		for _, line := range lines {
			for _, piece := range s.chunker.Chunk(line) {
				text := strings.TrimSpace(piece)
				if text == "" {
					continue
				}
				if _, dup := seen[text]; dup {
					continue
				}
				seen[text] = struct{}{}
				units = append(units, newUnit(mode, text, entry.Name()))
			}
		}
		logger.Debug("file scanned", zap.String("path", path), zap.Int("lines", len(lines)), zap.Int("units", len(units)-before))
	}

	report.Units = len(units)
	report.Duration = time.Since(start)
	logger.Debug("scan finished",
		zap.Int("files", report.Files),
		zap.Int("units", report.Units),
		zap.Int("skipped", len(report.Skipped)),
		zap.Int("failures", len(report.Failures)),
		zap.Duration("duration", report.Duration),
	)
	return units, report, nil
}

func newUnit(mode models.Mode, text, fileName string) models.Unit {
	if mode == models.ModeSegment {
		return models.Segment(text, fileName, strings.ToLower(filepath.Ext(fileName)))
	}
	return models.Line(text)
}


package indexer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/extract"
	"github.com/hyperjump/shirabe/internal/models"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
	}
}

func TestScan_emptyDirectory(t *testing.T) {
	dir := t.TempDir()
	s := NewScanner(nil)
	for _, mode := range []models.Mode{models.ModeLine, models.ModeSegment} {
		units, report, err := s.Scan(context.Background(), dir, mode)
		if err != nil {
			t.Fatalf("Scan(%s): %v", mode, err)
		}
		if len(units) != 0 {
			t.Errorf("Scan(%s) = %v, want empty", mode, units)
		}
		if report.Files != 0 || report.Units != 0 {
			t.Errorf("report = %+v", report)
		}
	}
}

func TestScan_deduplicatesAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "I love baking bread\n",
		"b.txt": "  I love baking bread  \n\n   \n",
	})
	units, _, err := NewScanner(nil).Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Unit{models.Line("I love baking bread")}
	if !reflect.DeepEqual(units, want) {
		t.Errorf("got %+v, want %+v", units, want)
	}
}

func TestScan_firstOccurrenceOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.txt": "alpha\nbeta\n",
		"2.txt": "gamma\nalpha\n",
	})
	units, _, err := NewScanner(nil).Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatal(err)
	}
	got := models.Texts(units)
	want := []string{"alpha", "beta", "gamma"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScan_segmentMetadata(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"food.csv":  "name,desc\nTomato,Fruit\n",
		"notes.TXT": "Tomato Fruit\nshopping list\n",
	})
	units, _, err := NewScanner(nil).Scan(context.Background(), dir, models.ModeSegment)
	if err != nil {
		t.Fatal(err)
	}
	want := []models.Unit{
		models.Segment("name desc", "food.csv", ".csv"),
		models.Segment("Tomato Fruit", "food.csv", ".csv"),
		models.Segment("shopping list", "notes.TXT", ".txt"),
	}
	if !reflect.DeepEqual(units, want) {
		t.Errorf("got %+v, want %+v", units, want)
	}
	for _, u := range units {
		if u.Metadata.Map()[models.MetaKeyFileName] == "" {
			t.Errorf("unit %q has no file name", u.Text)
		}
	}
}

func TestScan_notRecursive(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"top.txt": "top"})
	sub := filepath.Join(dir, "nested")
	if err := os.Mkdir(sub, 0700); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, sub, map[string]string{"deep.txt": "deep"})

	units, report, err := NewScanner(nil).Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(models.Texts(units), []string{"top"}) {
		t.Errorf("got %v", units)
	}
	if report.Files != 1 {
		t.Errorf("Files = %d, want 1", report.Files)
	}
}

func TestScan_readFailureRecorded(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.json":  `{"a": [`,
		"good.json": `{"a": "kept"}`,
	})
	core, logs := observer.New(zap.WarnLevel)
	s := NewScanner(nil, WithLogger(zap.New(core)))

	units, report, err := s.Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatalf("read failures must not abort the scan: %v", err)
	}
	if !reflect.DeepEqual(models.Texts(units), []string{"kept"}) {
		t.Errorf("got %v", units)
	}
	if !report.HasFailures() || len(report.Failures) != 1 {
		t.Fatalf("failures = %v", report.Failures)
	}
	if filepath.Base(report.Failures[0].Path) != "bad.json" {
		t.Errorf("failure path = %s", report.Failures[0].Path)
	}
	if logs.FilterMessage("failed to read file").Len() != 1 {
		t.Errorf("expected one warning, got %v", logs.All())
	}
}

func TestScan_unsupportedPolicy(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"photo.png": "\x89PNG",
		"keep.txt":  "kept",
	})

	units, report, err := NewScanner(nil).Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 1 || !reflect.DeepEqual(report.Skipped, []string{"photo.png"}) {
		t.Errorf("units=%v skipped=%v", units, report.Skipped)
	}

	_, _, err = NewScanner(nil, WithPolicy(config.UnsupportedFail)).Scan(context.Background(), dir, models.ModeLine)
	if !errors.Is(err, extract.ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestScan_chunkerSplitsLongLines(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"long.txt": "a b c d e\nshort"})
	cfg := &config.ScanConfig{UnsupportedPolicy: config.UnsupportedSkip, MaxUnitWords: 3, UnitOverlapWords: 1}
	units, _, err := NewScannerFromConfig(cfg, nil, nil).Scan(context.Background(), dir, models.ModeLine)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a b c", "c d e", "short"}
	if got := models.Texts(units); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestScan_errors(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"f.txt": "x"})
	s := NewScanner(nil)
	ctx := context.Background()

	if _, _, err := s.Scan(ctx, filepath.Join(dir, "missing"), models.ModeLine); err == nil {
		t.Error("expected error for missing directory")
	}
	if _, _, err := s.Scan(ctx, filepath.Join(dir, "f.txt"), models.ModeLine); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("err = %v, want ErrNotDirectory", err)
	}
	if _, _, err := s.Scan(ctx, dir, models.Mode("words")); err == nil {
		t.Error("expected error for unknown mode")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, _, err := s.Scan(cancelled, dir, models.ModeLine); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

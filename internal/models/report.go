package models

import (
	"errors"
	"strings"
	"time"
)

// FileFailure records a file that could not be read or parsed during a scan.
// The file contributed no units; the scan continued.
type FileFailure struct {
	Path string
	Err  error
}

// Error implements error so failures can be inspected with errors.Is/As.
func (f FileFailure) Error() string {
	return f.Path + ": " + f.Err.Error()
}

// Unwrap returns the underlying read error.
func (f FileFailure) Unwrap() error {
	return f.Err
}

// MarshalText renders the failure for JSON output.
func (f FileFailure) MarshalText() ([]byte, error) {
	return []byte(f.Error()), nil
}

// UnmarshalText restores a failure rendered by MarshalText. The original error type
// is not recoverable; Err becomes a plain error with the same message.
func (f *FileFailure) UnmarshalText(text []byte) error {
	path, msg, ok := strings.Cut(string(text), ": ")
	if !ok {
		path, msg = "", string(text)
	}
	f.Path = path
	f.Err = errors.New(msg)
	return nil
}

// ScanReport carries the non-fatal diagnostics of one scan.
type ScanReport struct {
	ScanID    string        `json:"scan_id"`
	Directory string        `json:"directory"`
	Mode      Mode          `json:"mode"`
	Files     int           `json:"files"`
	Units     int           `json:"units"`
	Skipped   []string      `json:"skipped,omitempty"`
	Failures  []FileFailure `json:"failures,omitempty"`
	Duration  time.Duration `json:"duration_ns"`
}

// HasFailures reports whether any file failed to read.
func (r *ScanReport) HasFailures() bool {
	return r != nil && len(r.Failures) > 0
}

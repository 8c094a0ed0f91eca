package main

import (
	"context"
	"io"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/extract"
	"github.com/hyperjump/shirabe/internal/search"
	"go.uber.org/zap"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *config.Config
	Logger   *zap.Logger
	Registry *extract.Registry
	Engine   *search.Engine
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config string `short:"c" default:"${config_path}" help:"Config file path"`
	Debug  bool   `help:"Enable debug logging"`

	Search  SearchCmd  `cmd:"" help:"Rank the units of a directory against a query"`
	Scan    ScanCmd    `cmd:"" help:"List the deduplicated units of a directory"`
	Formats FormatsCmd `cmd:"" help:"List readable file extensions"`
	Serve   ServeCmd   `cmd:"" help:"Start the HTTP API"`
	Version VersionCmd `cmd:"" help:"Print the version"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Dir      string   `arg:"" help:"Directory to scan (not recursive)"`
	Query    []string `arg:"" help:"Query text; remaining arguments are joined by spaces"`
	Mode     string   `short:"m" help:"Unit mode: line or segment (default from config)"`
	Limit    int      `short:"n" help:"Number of results (default from config)"`
	MinScore *float64 `name:"min-score" help:"Drop results scoring below this value (unset keeps every score)"`
	Output   string   `short:"o" enum:"text,compact,json" default:"text" help:"Output format: text, compact, or json"`
	Server   string   `help:"Search through a running shirabe server at this URL instead of locally"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Dir    string `arg:"" help:"Directory to scan (not recursive)"`
	Mode   string `short:"m" help:"Unit mode: line or segment (default from config)"`
	Output string `short:"o" enum:"text,compact,json" default:"text" help:"Output format: text, compact, or json"`
}

// FormatsCmd is the "formats" subcommand.
type FormatsCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Host string `help:"Listen host (default from config)"`
	Port int    `help:"Listen port (default from config)"`
}

// VersionCmd is the "version" subcommand.
type VersionCmd struct{}

// Package main is the shirabe CLI entry point.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/hyperjump/shirabe/internal/config"
	"github.com/hyperjump/shirabe/internal/embedding"
	"github.com/hyperjump/shirabe/internal/extract"
	"github.com/hyperjump/shirabe/internal/indexer"
	"github.com/hyperjump/shirabe/internal/search"
	"github.com/hyperjump/shirabe/pkg/utils"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/shirabe/config.yaml"

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Default config path. Set before calling Run().
	ConfigPath string

	// Provider overrides the configured embedding provider. Set before calling Run().
	Provider embedding.Provider

	// provider built by Run, closed by Close.
	owned embedding.Provider
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{ConfigPath: defaultConfigPath}
}

// Close releases the embedding provider created by Run.
func (m *Main) Close() error {
	if m.owned != nil {
		err := m.owned.Close()
		m.owned = nil
		return err
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	_ = godotenv.Load()

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shirabe"),
		kong.Description("Rank the text of a directory's documents against a query by embedding similarity."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"config_path": m.ConfigPath, "version": version},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'shirabe --help' to see available commands")
	}
	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	command := commandName(kongCtx)
	if command == "version" {
		return kongCtx.Run(deps)
	}

	cfg, resolvedPath, err := loadConfig(cli.Config)
	if err != nil {
		return err
	}
	debug := cfg.Debug || cli.Debug
	logger, err := utils.NewCLILogger(debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Debug("config loaded", zap.String("config_path", resolvedPath), zap.Bool("debug", debug))

	registry := extract.NewRegistry()
	deps.Config = cfg
	deps.Logger = logger
	deps.Registry = registry

	var provider embedding.Provider
	if needsProvider(command, cli) {
		provider, err = m.provider(ctx, cfg, logger)
		if err != nil {
			if cfg.Embedding.APIKeyEnv != "" {
				fmt.Fprintf(stderr, "Hint: set %s in the environment or in .env\n", cfg.Embedding.APIKeyEnv)
			}
			return fmt.Errorf("failed to create embedding provider: %w", err)
		}
	}
	scanner := indexer.NewScannerFromConfig(&cfg.Scan, registry, logger)
	deps.Engine = search.NewEngine(scanner, provider, &cfg.Search, logger)

	return kongCtx.Run(deps)
}

func (m *Main) provider(ctx context.Context, cfg *config.Config, logger *zap.Logger) (embedding.Provider, error) {
	if m.Provider != nil {
		return m.Provider, nil
	}
	p, err := embedding.New(ctx, &cfg.Embedding, logger)
	if err != nil {
		return nil, err
	}
	m.owned = p
	return p, nil
}

// needsProvider reports whether the parsed command ranks units locally.
func needsProvider(command string, cli *CLI) bool {
	switch command {
	case "search":
		return cli.Search.Server == ""
	case "serve":
		return true
	}
	return false
}

// commandName returns the leaf command without its positional placeholders.
func commandName(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// loadConfig loads config from path. When path is the default, it first looks for
// config.yaml in the current directory (for development). A missing file yields defaults.
// Returns the config and the path that was actually loaded.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, err := os.Getwd(); err == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, err := os.Stat(fallback); err == nil {
				cfg, err := config.Load(fallback)
				if err != nil {
					return nil, "", err
				}
				return cfg, fallback, nil
			}
		}
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

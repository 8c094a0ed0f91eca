// Package config provides configuration loading and structs for shirabe.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug     bool            `yaml:"debug"`
	Server    ServerConfig    `yaml:"server"`
	Scan      ScanConfig      `yaml:"scan"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
}

// UnsupportedPolicy decides what a scan does with a file that has no registered reader.
type UnsupportedPolicy string

const (
	// UnsupportedSkip omits the file and lists it in the scan report.
	UnsupportedSkip UnsupportedPolicy = "skip"
	// UnsupportedFail aborts the scan.
	UnsupportedFail UnsupportedPolicy = "fail"
)

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// ScanConfig holds directory scanning settings.
type ScanConfig struct {
	Mode              string            `yaml:"mode"`
	UnsupportedPolicy UnsupportedPolicy `yaml:"unsupported_policy"`
	// MaxUnitWords splits lines longer than this many words into overlapping windows.
	// Zero disables splitting.
	MaxUnitWords     int `yaml:"max_unit_words"`
	UnitOverlapWords int `yaml:"unit_overlap_words"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider          string  `yaml:"provider"` // hash, openai, gemini, onnx
	Model             string  `yaml:"model"`
	BaseURL           string  `yaml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env"`
	Dimensions        int     `yaml:"dimensions"`
	BatchSize         int     `yaml:"batch_size"`
	Concurrency       int     `yaml:"concurrency"`
	RequestsPerSecond float64 `yaml:"requests_per_second"`
	MaxRetries        *int    `yaml:"max_retries"` // nil means 3; 0 disables retries
	TimeoutSecs       int     `yaml:"timeout_secs"`
	ModelPath         string  `yaml:"model_path"`
	MaxTokens         int     `yaml:"max_tokens"`
}

// APIKey returns the provider API key from the configured environment variable.
func (e *EmbeddingConfig) APIKey() string {
	if e.APIKeyEnv == "" {
		return ""
	}
	return os.Getenv(e.APIKeyEnv)
}

// RetriesOrDefault returns how many times a failed provider request is retried;
// defaults to 3 when unset.
func (e *EmbeddingConfig) RetriesOrDefault() int {
	if e.MaxRetries != nil {
		return max(*e.MaxRetries, 0)
	}
	return defaultMaxRetries
}

// SearchConfig holds result list settings.
type SearchConfig struct {
	DefaultLimit int `yaml:"default_limit"`
	MaxLimit     int `yaml:"max_limit"`
}

// Load reads and parses the config file at path, expands paths, and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Embedding.ModelPath != "" {
		cfg.Embedding.ModelPath = expandPath(cfg.Embedding.ModelPath, filepath.Dir(path))
	}
	return &cfg, nil
}

// LoadOrDefault loads path when it exists and returns defaults when it does not.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

// Default returns a config with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// Validate rejects values that defaults cannot repair.
func (c *Config) Validate() error {
	switch c.Scan.UnsupportedPolicy {
	case UnsupportedSkip, UnsupportedFail:
	default:
		return fmt.Errorf("invalid scan.unsupported_policy %q (want %q or %q)",
			c.Scan.UnsupportedPolicy, UnsupportedSkip, UnsupportedFail)
	}
	switch c.Embedding.Provider {
	case ProviderHash, ProviderOpenAI, ProviderGemini, ProviderONNX:
	default:
		return fmt.Errorf("invalid embedding.provider %q", c.Embedding.Provider)
	}
	if c.Scan.MaxUnitWords < 0 || c.Scan.UnitOverlapWords < 0 {
		return errors.New("scan word limits must not be negative")
	}
	return nil
}

// Save writes the config to path.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// expandPath converts a path to absolute. Paths starting with "./" are relative to configDir;
// other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
scan:
  mode: segment
  unsupported_policy: fail
embedding:
  provider: openai
  base_url: "https://api.groq.com/openai/v1"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Scan.Mode != "segment" || cfg.Scan.UnsupportedPolicy != UnsupportedFail {
		t.Errorf("unexpected scan config: %+v", cfg.Scan)
	}
	if cfg.Embedding.BaseURL != "https://api.groq.com/openai/v1" {
		t.Errorf("base_url: got %s", cfg.Embedding.BaseURL)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" || cfg.Embedding.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("openai defaults not applied: %+v", cfg.Embedding)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_invalidPolicy(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("scan:\n  unsupported_policy: abort\n"), 0600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "unsupported_policy") {
		t.Fatalf("expected unsupported_policy error, got %v", err)
	}
}

func TestLoad_invalidProvider(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("embedding:\n  provider: word2vec\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestLoad_expandModelPathRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
embedding:
  provider: onnx
  model_path: "./models/minilm.onnx"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, "models", "minilm.onnx")
	if cfg.Embedding.ModelPath != want {
		t.Errorf("model_path = %s, want %s", cfg.Embedding.ModelPath, want)
	}
	if cfg.Embedding.MaxTokens != 256 {
		t.Errorf("max_tokens default: got %d", cfg.Embedding.MaxTokens)
	}
}

func TestLoad_malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadOrDefault_missingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if cfg.Embedding.Provider != ProviderHash {
		t.Errorf("default provider: got %s", cfg.Embedding.Provider)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := Default()
	cfg.Scan.MaxUnitWords = 128
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Scan.MaxUnitWords != 128 {
		t.Errorf("max_unit_words: got %d", loaded.Scan.MaxUnitWords)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Server.Host != "localhost" {
		t.Errorf("default host: got %s", cfg.Server.Host)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("default port: got %d", cfg.Server.Port)
	}
	if cfg.Search.DefaultLimit != 10 || cfg.Search.MaxLimit != 100 {
		t.Errorf("default limits: got %+v", cfg.Search)
	}
	if cfg.Scan.UnsupportedPolicy != UnsupportedSkip {
		t.Errorf("unsupported files should be skipped by default; got %q", cfg.Scan.UnsupportedPolicy)
	}
	if cfg.Scan.MaxUnitWords != 0 {
		t.Error("unit splitting should be disabled by default")
	}
	if cfg.Embedding.Provider != ProviderHash || cfg.Embedding.Dimensions != 384 {
		t.Errorf("embedding defaults: got %+v", cfg.Embedding)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestEmbeddingConfig_APIKey(t *testing.T) {
	t.Setenv("SHIRABE_TEST_KEY", "secret")
	e := EmbeddingConfig{APIKeyEnv: "SHIRABE_TEST_KEY"}
	if e.APIKey() != "secret" {
		t.Errorf("APIKey: got %q", e.APIKey())
	}
	if (&EmbeddingConfig{}).APIKey() != "" {
		t.Error("APIKey without env name should be empty")
	}
}

func TestEmbeddingConfig_RetriesOrDefault(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want int
	}{
		{"unset defaults to 3", "embedding:\n  provider: openai\n", 3},
		{"zero disables retries", "embedding:\n  provider: openai\n  max_retries: 0\n", 0},
		{"explicit count", "embedding:\n  provider: openai\n  max_retries: 5\n", 5},
		{"negative treated as zero", "embedding:\n  provider: openai\n  max_retries: -2\n", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0600); err != nil {
				t.Fatal(err)
			}
			cfg, err := Load(path)
			if err != nil {
				t.Fatal(err)
			}
			if got := cfg.Embedding.RetriesOrDefault(); got != tt.want {
				t.Errorf("RetriesOrDefault() = %d, want %d", got, tt.want)
			}
		})
	}
}

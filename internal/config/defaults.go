package config

// Embedding provider names.
const (
	ProviderHash   = "hash"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
	ProviderONNX   = "onnx"
)

const defaultMaxRetries = 3

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Scan.Mode == "" {
		cfg.Scan.Mode = "line"
	}
	if cfg.Scan.UnsupportedPolicy == "" {
		cfg.Scan.UnsupportedPolicy = UnsupportedSkip
	}
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = ProviderHash
	}
	applyEmbeddingDefaults(&cfg.Embedding)
	if cfg.Search.DefaultLimit == 0 {
		cfg.Search.DefaultLimit = 10
	}
	if cfg.Search.MaxLimit == 0 {
		cfg.Search.MaxLimit = 100
	}
}

func applyEmbeddingDefaults(e *EmbeddingConfig) {
	switch e.Provider {
	case ProviderOpenAI:
		if e.Model == "" {
			e.Model = "text-embedding-3-small"
		}
		if e.BaseURL == "" {
			e.BaseURL = "https://api.openai.com/v1"
		}
		if e.APIKeyEnv == "" {
			e.APIKeyEnv = "OPENAI_API_KEY"
		}
	case ProviderGemini:
		if e.Model == "" {
			e.Model = "gemini-embedding-001"
		}
		if e.APIKeyEnv == "" {
			e.APIKeyEnv = "GEMINI_API_KEY"
		}
	case ProviderONNX:
		if e.ModelPath == "" {
			e.ModelPath = "/usr/local/var/shirabe/models/all-MiniLM-L6-v2.onnx"
		}
		if e.MaxTokens == 0 {
			e.MaxTokens = 256
		}
	}
	if e.Dimensions == 0 {
		e.Dimensions = 384
	}
	if e.BatchSize == 0 {
		e.BatchSize = 64
	}
	if e.Concurrency == 0 {
		e.Concurrency = 4
	}
	if e.TimeoutSecs == 0 {
		e.TimeoutSecs = 30
	}
}

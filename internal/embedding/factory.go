package embedding

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperjump/shirabe/internal/config"
	"go.uber.org/zap"
)

// New returns the provider selected by cfg.Provider. Remote providers are wrapped in
// a Resilient limiter and retrier.
func New(ctx context.Context, cfg *config.EmbeddingConfig, logger *zap.Logger) (Provider, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderHash, "":
		return NewHashEmbedder(cfg.Dimensions), nil
	case config.ProviderONNX:
		e, err := NewONNXEmbedder(cfg.ModelPath, cfg.Dimensions, cfg.MaxTokens)
		if err != nil {
			return nil, err
		}
		return e, nil
	case config.ProviderOpenAI:
		p, err = NewOpenAIEmbedder(OpenAIOptions{
			APIKey:      cfg.APIKey(),
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Dimensions:  cfg.Dimensions,
			BatchSize:   cfg.BatchSize,
			Concurrency: cfg.Concurrency,
			Timeout:     timeout,
		})
	case config.ProviderGemini:
		p, err = NewGeminiEmbedder(ctx, GeminiOptions{
			APIKey:      cfg.APIKey(),
			Model:       cfg.Model,
			Dimensions:  cfg.Dimensions,
			BatchSize:   cfg.BatchSize,
			Concurrency: cfg.Concurrency,
			Timeout:     timeout,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Provider)
	}
	if err != nil {
		if cfg.APIKey() == "" && cfg.APIKeyEnv != "" {
			return nil, fmt.Errorf("%w (set %s)", err, cfg.APIKeyEnv)
		}
		return nil, err
	}
	return NewResilient(p,
		WithRateLimit(cfg.RequestsPerSecond),
		WithRetryDelays(DefaultRetryDelays(cfg.RetriesOrDefault())),
		WithRetryLogger(logger),
	), nil
}

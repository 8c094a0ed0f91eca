package embedding

import (
	"context"
	"testing"

	"github.com/hyperjump/shirabe/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_hashDefault(t *testing.T) {
	cfg := config.Default()
	p, err := New(context.Background(), &cfg.Embedding, nil)
	require.NoError(t, err)
	assert.IsType(t, &HashEmbedder{}, p)
	assert.Equal(t, 384, p.Dimensions())
}

func TestNew_openAIWrappedInResilient(t *testing.T) {
	t.Setenv("SHIRABE_TEST_KEY", "k")
	cfg := &config.EmbeddingConfig{Provider: config.ProviderOpenAI, APIKeyEnv: "SHIRABE_TEST_KEY", Model: "m", BaseURL: "http://127.0.0.1:1"}
	p, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &Resilient{}, p)
}

func TestNew_missingKeyNamesVariable(t *testing.T) {
	t.Setenv("SHIRABE_MISSING_KEY", "")
	cfg := &config.EmbeddingConfig{Provider: config.ProviderOpenAI, APIKeyEnv: "SHIRABE_MISSING_KEY", Model: "m"}
	_, err := New(context.Background(), cfg, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHIRABE_MISSING_KEY")
}

func TestNew_unknownProvider(t *testing.T) {
	_, err := New(context.Background(), &config.EmbeddingConfig{Provider: "word2vec"}, nil)
	assert.Error(t, err)
}

func TestNew_retryCountFromConfig(t *testing.T) {
	t.Setenv("SHIRABE_TEST_KEY", "k")
	zero := 0
	tests := []struct {
		name       string
		maxRetries *int
		want       int
	}{
		{"unset", nil, 3},
		{"disabled", &zero, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.EmbeddingConfig{
				Provider:   config.ProviderOpenAI,
				APIKeyEnv:  "SHIRABE_TEST_KEY",
				Model:      "m",
				BaseURL:    "http://127.0.0.1:1",
				MaxRetries: tt.maxRetries,
			}
			p, err := New(context.Background(), cfg, nil)
			require.NoError(t, err)
			require.IsType(t, &Resilient{}, p)
			assert.Len(t, p.(*Resilient).delays, tt.want)
		})
	}
}

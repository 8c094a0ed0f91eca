package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/hyperjump/shirabe/pkg/utils"
	"google.golang.org/genai"
)

// GeminiOptions configures a GeminiEmbedder.
type GeminiOptions struct {
	APIKey      string
	Model       string
	Dimensions  int
	BatchSize   int
	Concurrency int
	Timeout     time.Duration
}

// GeminiEmbedder embeds text with the Gemini API.
type GeminiEmbedder struct {
	client      *genai.Client
	model       string
	dimensions  int
	batchSize   int
	concurrency int
}

// NewGeminiEmbedder creates a Gemini embedder. An API key is required.
func NewGeminiEmbedder(ctx context.Context, opts GeminiOptions) (*GeminiEmbedder, error) {
	if opts.APIKey == "" {
		return nil, errors.New("gemini: API key not set. Get a key at https://aistudio.google.com/apikey")
	}
	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return &GeminiEmbedder{
		client:      client,
		model:       opts.Model,
		dimensions:  opts.Dimensions,
		batchSize:   opts.BatchSize,
		concurrency: opts.Concurrency,
	}, nil
}

// Embed generates an embedding for a single text.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.request(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vecs[0], nil
}

// EmbedBatch embeds texts in requests of at most BatchSize contents.
func (e *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	return embedInBatches(ctx, texts, e.batchSize, e.concurrency, e.request)
}

func (e *GeminiEmbedder) request(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, len(texts))
	for i, text := range texts {
		contents[i] = genai.NewContentFromText(text, genai.RoleUser)
	}
	var cfg *genai.EmbedContentConfig
	if e.dimensions > 0 {
		cfg = &genai.EmbedContentConfig{OutputDimensionality: genai.Ptr(int32(e.dimensions))}
	}
	resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}
	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("gemini embeddings: got %d vectors for %d inputs", len(resp.Embeddings), len(texts))
	}
	out := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		if emb == nil {
			return nil, fmt.Errorf("gemini embeddings: missing vector %d", i)
		}
		v := emb.Values
		utils.NormalizeL2(v)
		out[i] = v
	}
	return out, nil
}

// Dimensions returns the requested dimension, or 0 when the model decides.
func (e *GeminiEmbedder) Dimensions() int {
	return e.dimensions
}

// Close is a no-op; the client holds no open connections of its own.
func (e *GeminiEmbedder) Close() error {
	return nil
}

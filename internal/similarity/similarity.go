// Package similarity embeds text through a provider and compares vectors by cosine.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/hyperjump/shirabe/internal/embedding"
)

var (
	// ErrDimensionMismatch is returned when two vectors of different lengths are compared.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrProviderFailure wraps any error from the embedding provider.
	ErrProviderFailure = errors.New("embedding provider failure")
)

// Engine delegates embedding to a provider and normalizes its failures.
type Engine struct {
	embedder embedding.Embedder
}

// NewEngine returns an engine using embedder.
func NewEngine(embedder embedding.Embedder) *Engine {
	return &Engine{embedder: embedder}
}

// Embed returns the vector for text. Provider errors are wrapped with ErrProviderFailure.
func (e *Engine) Embed(ctx context.Context, text string) ([]float32, error) {
	v, err := e.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	return v, nil
}

// EmbedBatch returns one vector per text, in order. A provider error, or a result of
// the wrong length, is an ErrProviderFailure.
func (e *Engine) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs, err := e.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProviderFailure, err)
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrProviderFailure, len(vecs), len(texts))
	}
	return vecs, nil
}

// CosineSimilarity returns dot(a, b) / (|a| |b|), accumulated in float64 and clamped
// to [-1, 1]. If either vector has zero magnitude the result is 0. Vectors of
// different lengths are an ErrDimensionMismatch.
func CosineSimilarity(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d != %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	s := dot / (math.Sqrt(na) * math.Sqrt(nb))
	return math.Max(-1, math.Min(1, s)), nil
}

// MustCosineSimilarity is CosineSimilarity for vectors already known to match in
// length. It panics on a mismatch.
func MustCosineSimilarity(a, b []float32) float64 {
	s, err := CosineSimilarity(a, b)
	if err != nil {
		panic(err)
	}
	return s
}

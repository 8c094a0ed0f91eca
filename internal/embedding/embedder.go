// Package embedding turns text into vectors through a pluggable provider.
package embedding

import "context"

// Embedder produces vector embeddings for text. EmbedBatch returns one vector per
// input, in input order.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Provider is an Embedder that owns resources and knows its output size.
// Dimensions returns 0 when the size is decided by the remote model.
type Provider interface {
	Embedder
	Dimensions() int
	Close() error
}

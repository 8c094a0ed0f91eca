package embedding

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// batchFunc embeds one request's worth of texts.
type batchFunc func(ctx context.Context, texts []string) ([][]float32, error)

// embedInBatches splits texts into requests of at most size texts, runs up to
// concurrency of them at once and reassembles the vectors in input order. The first
// failing request cancels the rest and fails the whole call.
func embedInBatches(ctx context.Context, texts []string, size, concurrency int, fn batchFunc) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if size <= 0 {
		size = len(texts)
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	out := make([][]float32, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for start := 0; start < len(texts); start += size {
		end := min(start+size, len(texts))
		g.Go(func() error {
			vecs, err := fn(gctx, texts[start:end])
			if err != nil {
				return err
			}
			if len(vecs) != end-start {
				return fmt.Errorf("batch %d-%d: got %d embeddings for %d texts", start, end, len(vecs), end-start)
			}
			copy(out[start:end], vecs)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

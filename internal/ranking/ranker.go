// Package ranking scores text units against a query by embedding similarity.
package ranking

import (
	"context"
	"fmt"

	"github.com/hyperjump/shirabe/internal/embedding"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/similarity"
)

// Rank embeds query and every unit with embedder and scores each unit by the cosine
// similarity of its vector to the query vector. The result holds exactly one entry
// per distinct unit; nothing is filtered.
//
// Empty units return an empty result without calling the provider. Units are embedded
// with one EmbedBatch call, or one Embed call when there is a single unit. Any
// provider failure aborts the call with no partial result.
func Rank(ctx context.Context, embedder embedding.Embedder, query string, units []models.Unit) (models.Ranked, error) {
	ranked := make(models.Ranked, len(units))
	if len(units) == 0 {
		return ranked, nil
	}
	engine := similarity.NewEngine(embedder)

	queryVec, err := engine.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	vecs, err := embedUnits(ctx, engine, units)
	if err != nil {
		return nil, fmt.Errorf("embed units: %w", err)
	}
	for i, u := range units {
		score, err := similarity.CosineSimilarity(vecs[i], queryVec)
		if err != nil {
			return nil, fmt.Errorf("score %q: %w", u.Text, err)
		}
		ranked[u] = score
	}
	return ranked, nil
}

func embedUnits(ctx context.Context, engine *similarity.Engine, units []models.Unit) ([][]float32, error) {
	if len(units) == 1 {
		v, err := engine.Embed(ctx, units[0].Text)
		if err != nil {
			return nil, err
		}
		return [][]float32{v}, nil
	}
	return engine.EmbedBatch(ctx, models.Texts(units))
}

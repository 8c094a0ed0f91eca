package ranking

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/hyperjump/shirabe/internal/embedding"
	"github.com/hyperjump/shirabe/internal/models"
	"github.com/hyperjump/shirabe/internal/similarity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingEmbedder maps text to [len, vowels, 1] and counts calls.
type countingEmbedder struct {
	embedCalls int
	batchCalls int
	dims       int
	err        error
}

func (c *countingEmbedder) vector(text string) []float32 {
	var vowels float32
	for _, r := range text {
		switch r {
		case 'a', 'e', 'i', 'o', 'u', 'A', 'E', 'I', 'O', 'U':
			vowels++
		}
	}
	v := []float32{float32(len(text)), vowels, 1}
	if c.dims > 0 {
		v = v[:c.dims]
	}
	return v
}

func (c *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	c.embedCalls++
	if c.err != nil {
		return nil, c.err
	}
	return c.vector(text), nil
}

func (c *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	c.batchCalls++
	if c.err != nil {
		return nil, c.err
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = c.vector(text)
	}
	return out, nil
}

// mismatchEmbedder returns a shorter vector for the query than for units.
type mismatchEmbedder struct{ countingEmbedder }

func (m *mismatchEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	v, err := m.countingEmbedder.Embed(ctx, text)
	return v[:2], err
}

var _ embedding.Embedder = (*countingEmbedder)(nil)

func TestRank_emptyMakesNoCalls(t *testing.T) {
	e := &countingEmbedder{}
	got, err := Rank(context.Background(), e, "anything", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, e.embedCalls)
	assert.Zero(t, e.batchCalls)
}

func TestRank_singleUnitUsesEmbed(t *testing.T) {
	e := &countingEmbedder{}
	u := models.Line("bread")
	got, err := Rank(context.Background(), e, "bread", []models.Unit{u})
	require.NoError(t, err)
	assert.Equal(t, 2, e.embedCalls)
	assert.Zero(t, e.batchCalls)
	assert.InDelta(t, 1.0, got[u], 1e-9)
}

func TestRank_manyUnitsUseOneBatch(t *testing.T) {
	e := &countingEmbedder{}
	units := []models.Unit{
		models.Line("I love baking bread"),
		models.Segment("Tomato Fruit", "food.csv", ".csv"),
		models.Line("zzz"),
	}
	got, err := Rank(context.Background(), e, "Pasta", units)
	require.NoError(t, err)
	assert.Equal(t, 1, e.embedCalls)
	assert.Equal(t, 1, e.batchCalls)

	require.Len(t, got, len(units))
	for _, u := range units {
		score, ok := got[u]
		require.True(t, ok, "missing %q", u.Text)
		assert.GreaterOrEqual(t, score, -1.0)
		assert.LessOrEqual(t, score, 1.0)
		assert.False(t, math.IsNaN(score))
	}
}

func TestRank_csvUnitKeptForUnrelatedQuery(t *testing.T) {
	u := models.Line("Tomato Fruit")
	got, err := Rank(context.Background(), embedding.NewHashEmbedder(64), "Pasta", []models.Unit{models.Line("name desc"), u})
	require.NoError(t, err)
	_, ok := got[u]
	assert.True(t, ok)
	assert.Len(t, got, 2)
}

func TestRank_duplicateUnitsCollapse(t *testing.T) {
	u := models.Line("same")
	got, err := Rank(context.Background(), &countingEmbedder{}, "q", []models.Unit{u, u})
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestRank_providerFailureAborts(t *testing.T) {
	boom := errors.New("connection refused")
	e := &countingEmbedder{err: boom}
	got, err := Rank(context.Background(), e, "q", []models.Unit{models.Line("a"), models.Line("b")})
	assert.Nil(t, got)
	assert.ErrorIs(t, err, similarity.ErrProviderFailure)
	assert.ErrorIs(t, err, boom)
}

func TestRank_dimensionMismatch(t *testing.T) {
	e := &mismatchEmbedder{}
	_, err := Rank(context.Background(), e, "q", []models.Unit{models.Line("a"), models.Line("b")})
	assert.ErrorIs(t, err, similarity.ErrDimensionMismatch)
}

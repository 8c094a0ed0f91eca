package embedding

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbedInBatches_preservesOrder(t *testing.T) {
	texts := []string{"a", "bb", "ccc", "dddd", "eeeee"}
	var mu sync.Mutex
	var sizes []int
	fn := func(_ context.Context, batch []string) ([][]float32, error) {
		mu.Lock()
		sizes = append(sizes, len(batch))
		mu.Unlock()
		out := make([][]float32, len(batch))
		for i, s := range batch {
			out[i] = []float32{float32(len(s))}
		}
		return out, nil
	}

	got, err := embedInBatches(context.Background(), texts, 2, 3, fn)
	require.NoError(t, err)
	require.Len(t, got, len(texts))
	for i, text := range texts {
		assert.Equal(t, float32(len(text)), got[i][0])
	}
	assert.ElementsMatch(t, []int{2, 2, 1}, sizes)
}

func TestEmbedInBatches_failureFailsAll(t *testing.T) {
	boom := errors.New("boom")
	fn := func(_ context.Context, batch []string) ([][]float32, error) {
		if batch[0] == "bad" {
			return nil, boom
		}
		return make([][]float32, len(batch)), nil
	}
	_, err := embedInBatches(context.Background(), []string{"ok", "bad", "ok"}, 1, 2, fn)
	assert.ErrorIs(t, err, boom)
}

func TestEmbedInBatches_shortResponse(t *testing.T) {
	fn := func(_ context.Context, batch []string) ([][]float32, error) {
		return make([][]float32, len(batch)-1), nil
	}
	_, err := embedInBatches(context.Background(), []string{"a", "b"}, 0, 0, fn)
	assert.Error(t, err)
}

func TestEmbedInBatches_empty(t *testing.T) {
	called := false
	got, err := embedInBatches(context.Background(), nil, 2, 2, func(context.Context, []string) ([][]float32, error) {
		called = true
		return nil, nil
	})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}

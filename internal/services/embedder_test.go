package services

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"screenerpro/engine/internal/screening"
)

func TestLocalEmbedder(t *testing.T) {
	embedder := NewLocalEmbedder()
	ctx := context.Background()

	t.Run("fixed dimensions", func(t *testing.T) {
		vec, err := embedder.EmbedText(ctx, "python developer")
		require.NoError(t, err)
		assert.Len(t, vec, embedder.Dimensions())
	})

	t.Run("deterministic", func(t *testing.T) {
		a, err := embedder.EmbedText(ctx, "backend engineer with go and postgres")
		require.NoError(t, err)
		b, err := embedder.EmbedText(ctx, "backend engineer with go and postgres")
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("unit norm", func(t *testing.T) {
		vec, err := embedder.EmbedText(ctx, "some resume text with several words")
		require.NoError(t, err)
		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		assert.InDelta(t, 1.0, math.Sqrt(norm), 0.001)
	})

	t.Run("shared vocabulary ranks closer", func(t *testing.T) {
		job, err := embedder.EmbedText(ctx, "python developer with postgresql and docker")
		require.NoError(t, err)
		similar, err := embedder.EmbedText(ctx, "experienced python and postgresql engineer, knows docker")
		require.NoError(t, err)
		unrelated, err := embedder.EmbedText(ctx, "pastry chef specializing in croissants")
		require.NoError(t, err)

		assert.Greater(t,
			screening.CosineSimilarity(job, similar),
			screening.CosineSimilarity(job, unrelated))
	})

	t.Run("empty text yields zero vector", func(t *testing.T) {
		vec, err := embedder.EmbedText(ctx, "")
		require.NoError(t, err)
		for _, v := range vec {
			assert.Zero(t, v)
		}
	})

	t.Run("batch matches singles", func(t *testing.T) {
		texts := []string{"first resume", "second resume"}
		batch, err := embedder.EmbedBatch(ctx, texts)
		require.NoError(t, err)
		require.Len(t, batch, 2)

		for i, text := range texts {
			single, err := embedder.EmbedText(ctx, text)
			require.NoError(t, err)
			assert.Equal(t, single, batch[i])
		}
	})
}

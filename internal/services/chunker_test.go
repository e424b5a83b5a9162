package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkText(t *testing.T) {
	chunker := NewTextChunker()

	t.Run("short text is a single chunk", func(t *testing.T) {
		chunks := chunker.ChunkText("a short resume", 1000, 100)
		require.Len(t, chunks, 1)
		assert.Equal(t, "a short resume", chunks[0])
	})

	t.Run("empty text yields no chunks", func(t *testing.T) {
		assert.Empty(t, chunker.ChunkText("", 1000, 100))
		assert.Empty(t, chunker.ChunkText("\n\n  \n\n", 1000, 100))
	})

	t.Run("paragraphs split into bounded chunks", func(t *testing.T) {
		para := strings.Repeat("word ", 40)
		text := strings.TrimSpace(strings.Repeat(para+"\n\n", 10))

		chunks := chunker.ChunkText(text, 500, 0)
		require.Greater(t, len(chunks), 1)
		for _, c := range chunks {
			assert.LessOrEqual(t, len(c), 500)
		}
	})

	t.Run("overlap carries tail into next chunk", func(t *testing.T) {
		text := strings.Repeat("alpha bravo charlie delta echo. ", 60)
		chunks := chunker.ChunkText(text, 300, 50)
		require.Greater(t, len(chunks), 1)

		tail := chunks[0][len(chunks[0])-20:]
		assert.Contains(t, chunks[1], strings.TrimSpace(tail))
	})

	t.Run("defaults applied for bad parameters", func(t *testing.T) {
		chunks := chunker.ChunkText("plain text", -5, -5)
		require.Len(t, chunks, 1)
	})
}

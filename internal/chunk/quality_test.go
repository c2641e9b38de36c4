package chunk_test

import (
	"context"
	"testing"

	"github.com/dociq/ragforge/internal/chunk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkWithStrategy_QualityScoreInRange(t *testing.T) {
	text := "Sentence one is here. Sentence two follows. Sentence three wraps it up."
	input := chunk.ContentInput{SourceURL: "https://example.com", Text: text}
	opts := chunk.DefaultOptions()
	opts.MaxSize = 40

	c := chunk.NewChunker(&stubSink{})
	chunks, err := c.ChunkWithStrategy(context.Background(), chunk.StrategyFixedSize, input, opts)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, ch := range chunks {
		assert.GreaterOrEqual(t, ch.QualityScore, 0.0)
		assert.LessOrEqual(t, ch.QualityScore, 100.0)
	}
}

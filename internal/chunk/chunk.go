// Package chunk slices reconstructed content into bounded, ordered,
// uniquely identified chunks via one of six interchangeable strategies
// (FixedSize, Paragraph, Smart, Semantic, Intelligent, MemoryOptimized) or
// a heuristic Auto selector, scoring each emitted chunk's quality.
package chunk

import (
	"context"
	"strings"
	"time"

	"github.com/dociq/ragforge/internal/telemetry"
)

type Chunker struct {
	metadataSink telemetry.MetadataSink
}

func NewChunker(metadataSink telemetry.MetadataSink) Chunker {
	return Chunker{metadataSink: metadataSink}
}

// ChunkWithStrategy runs an explicitly named strategy.
func (c *Chunker) ChunkWithStrategy(ctx context.Context, name StrategyName, input ContentInput, opts Options) ([]Chunk, error) {
	if strings.TrimSpace(input.Text) == "" {
		err := &ChunkError{Message: "no content to chunk", Cause: ErrCauseNoContent}
		c.recordError(input.SourceURL, err)
		return nil, err
	}

	strategy := resolveStrategy(name, input, opts)

	chunks, err := strategy.Chunk(ctx, input, opts)
	if err != nil {
		wrapped := &ChunkError{Message: err.Error(), Cause: ErrCauseCapabilityError}
		c.recordError(input.SourceURL, wrapped)
		return nil, wrapped
	}

	scoreChunks(chunks)
	return chunks, nil
}

// ChunkAuto runs AutoSelect's chosen strategy.
func (c *Chunker) ChunkAuto(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	if strings.TrimSpace(input.Text) == "" {
		err := &ChunkError{Message: "no content to chunk", Cause: ErrCauseNoContent}
		c.recordError(input.SourceURL, err)
		return nil, err
	}

	strategy := AutoSelect(input, opts)
	chunks, err := strategy.Chunk(ctx, input, opts)
	if err != nil {
		wrapped := &ChunkError{Message: err.Error(), Cause: ErrCauseCapabilityError}
		c.recordError(input.SourceURL, wrapped)
		return nil, wrapped
	}

	scoreChunks(chunks)
	return chunks, nil
}

func resolveStrategy(name StrategyName, input ContentInput, opts Options) Strategy {
	switch name {
	case StrategyFixedSize:
		return FixedSizeStrategy{}
	case StrategyParagraph:
		return ParagraphStrategy{}
	case StrategySmart:
		return SmartStrategy{}
	case StrategySemantic:
		return SemanticStrategy{}
	case StrategyIntelligent:
		return IntelligentStrategy{}
	case StrategyMemoryOptimized:
		return MemoryOptimizedStrategy{}
	default:
		return AutoSelect(input, opts)
	}
}

func (c *Chunker) recordError(sourceURL string, err *ChunkError) {
	c.metadataSink.RecordError(
		time.Now(),
		"chunk",
		"Chunker.Chunk",
		mapChunkErrorToMetadataCause(err.Cause),
		err.Error(),
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrURL, sourceURL),
		},
	)
}

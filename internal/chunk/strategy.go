package chunk

import (
	"context"
	"fmt"

	"github.com/dociq/ragforge/pkg/hashutil"
)

// Strategy is implemented by each of the six chunking strategies. A small
// interface with free functions (AutoSelect) picking an implementation,
// not a branching class hierarchy.
type Strategy interface {
	Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error)
}

func newChunk(sourceURL string, sequence int, content string, overlapPrev, overlapNext int, metadata map[string]any) Chunk {
	if metadata == nil {
		metadata = map[string]any{}
	}
	return Chunk{
		ID:            chunkID(sourceURL, sequence, content),
		SourceURL:     sourceURL,
		Sequence:      sequence,
		Content:       content,
		TokenEstimate: estimateTokens(content),
		OverlapPrev:   overlapPrev,
		OverlapNext:   overlapNext,
		Metadata:      metadata,
	}
}

// chunkID derives a stable identity from source URL, position, and content.
// Re-chunking the same page produces the same IDs, so a downstream store can
// tell an unchanged chunk from a genuinely new one without comparing content
// itself.
func chunkID(sourceURL string, sequence int, content string) string {
	digest, err := hashutil.HashBytes([]byte(fmt.Sprintf("%s#%d#%s", sourceURL, sequence, content)), hashutil.HashAlgoBLAKE3)
	if err != nil {
		return fmt.Sprintf("%s#%d", sourceURL, sequence)
	}
	return digest
}

func estimateTokens(content string) int {
	return (len(content) + 3) / 4
}

func finalizeSequence(chunks []Chunk) {
	for i := range chunks {
		chunks[i].Sequence = i
	}
	for i := range chunks {
		if i+1 < len(chunks) {
			chunks[i].OverlapNext = chunks[i+1].OverlapPrev
		}
	}
}

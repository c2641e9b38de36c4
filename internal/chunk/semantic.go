package chunk

import (
	"context"
	"errors"
	"math"
)

// SemanticStrategy requires an Embedder. It computes paragraph embeddings
// and starts a new chunk when cosine similarity to the running chunk
// centroid drops below SemanticThreshold or the chunk reaches max_size.
// The centroid update rule is a running mean over the chunk's paragraphs
// so far (not a batch re-centroid): this resolves the spec's open
// question in favor of the cheaper, streaming-friendly option.
type SemanticStrategy struct{}

var ErrNoEmbedder = errors.New("semantic chunking requires an embedder")

func (SemanticStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	if opts.Embedder == nil {
		return nil, ErrNoEmbedder
	}

	paragraphs := splitParagraphs(input.Text)
	if len(paragraphs) == 0 {
		return nil, nil
	}

	embeddings, err := opts.Embedder.Embed(ctx, paragraphs)
	if err != nil {
		return nil, err
	}

	threshold := opts.SemanticThreshold
	if threshold <= 0 {
		threshold = 0.7
	}
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}

	var chunks []Chunk
	var currentParas []string
	var centroid []float64
	count := 0

	flush := func() {
		if len(currentParas) == 0 {
			return
		}
		content := joinParagraphs(currentParas)
		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), content, 0, 0, nil))
		currentParas = nil
		centroid = nil
		count = 0
	}

	for i, p := range paragraphs {
		vec := embeddings[i]
		currentLen := len(joinParagraphs(currentParas))

		if centroid != nil {
			sim := cosineSimilarity(centroid, vec)
			if sim < threshold || currentLen+len(p) > maxSize {
				flush()
			}
		}

		currentParas = append(currentParas, p)
		centroid = runningMean(centroid, vec, count)
		count++
	}
	flush()

	finalizeSequence(chunks)
	return chunks, nil
}

func joinParagraphs(paragraphs []string) string {
	out := ""
	for i, p := range paragraphs {
		if i > 0 {
			out += "\n\n"
		}
		out += p
	}
	return out
}

func runningMean(centroid, vec []float64, n int) []float64 {
	if centroid == nil {
		out := make([]float64, len(vec))
		copy(out, vec)
		return out
	}
	out := make([]float64, len(centroid))
	for i := range centroid {
		out[i] = (centroid[i]*float64(n) + vec[i]) / float64(n+1)
	}
	return out
}

func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

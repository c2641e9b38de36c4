package chunk

import (
	"context"
	"unicode"
)

// FixedSizeStrategy greedily slices at max_size character boundaries with
// overlap characters of carry-over, never splitting inside a word.
type FixedSizeStrategy struct{}

func (FixedSizeStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}
	overlap := opts.Overlap
	if overlap >= maxSize {
		overlap = maxSize / 4
	}

	text := input.Text
	var chunks []Chunk
	start := 0

	for start < len(text) {
		end := start + maxSize
		if end >= len(text) {
			end = len(text)
		} else {
			end = backToWordBoundary(text, end)
			if end <= start {
				end = start + maxSize
			}
		}

		content := text[start:end]
		overlapPrev := 0
		if start > 0 {
			overlapPrev = min(overlap, start)
		}

		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), content, overlapPrev, 0, nil))

		if end >= len(text) {
			break
		}
		start = end - overlap
		if start < 0 {
			start = end
		}
	}

	finalizeSequence(chunks)
	return chunks, nil
}

// backToWordBoundary walks backward from idx to the nearest preceding
// whitespace so a chunk boundary never splits inside a word.
func backToWordBoundary(text string, idx int) int {
	for i := idx; i > 0; i-- {
		if unicode.IsSpace(rune(text[i])) {
			return i
		}
	}
	return idx
}

package chunk

import (
	"bufio"
	"context"
	"strings"
)

// MemoryOptimizedStrategy processes input in bounded windows, emitting
// chunks as soon as they are complete without materializing the full
// document beyond a small multiple of max_size. Used when input size
// exceeds MemoryThreshold.
type MemoryOptimizedStrategy struct{}

func (MemoryOptimizedStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}
	overlap := opts.Overlap

	scanner := bufio.NewScanner(strings.NewReader(input.Text))
	scanner.Buffer(make([]byte, 0, 64*1024), maxSize*4)
	scanner.Split(bufio.ScanWords)

	var chunks []Chunk
	var window strings.Builder
	var carry string

	flush := func() {
		if window.Len() == 0 {
			return
		}
		content := window.String()
		overlapPrev := 0
		if carry != "" {
			overlapPrev = len(carry)
		}
		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), content, overlapPrev, 0, nil))

		if overlap > 0 && len(content) > overlap {
			carry = content[len(content)-overlap:]
		} else {
			carry = content
		}
		window.Reset()
		window.WriteString(carry)
	}

	for scanner.Scan() {
		word := scanner.Text()
		if window.Len() > 0 {
			window.WriteString(" ")
		}
		window.WriteString(word)
		if window.Len() >= maxSize {
			flush()
		}
	}
	if window.Len() > 0 && window.String() != carry {
		flush()
	}

	finalizeSequence(chunks)
	return chunks, nil
}

package chunk

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// IntelligentStrategy requires a TextCompletion. It presents the section
// tree to the LLM with a "propose chunk boundaries" prompt, validates the
// returned offsets (monotonically increasing, sizes within bounds), and
// falls back to Smart on any validation failure.
type IntelligentStrategy struct{}

func (IntelligentStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	if opts.Completion == nil || !opts.Completion.IsAvailable(ctx) {
		return SmartStrategy{}.Chunk(ctx, input, opts)
	}

	prompt := boundaryPrompt(input)
	response, err := opts.Completion.Complete(ctx, prompt, CompletionOptions{MaxTokens: 256})
	if err != nil {
		return SmartStrategy{}.Chunk(ctx, input, opts)
	}

	offsets, ok := parseBoundaryOffsets(response, len(input.Text))
	if !ok || !validOffsets(offsets, len(input.Text), opts) {
		return SmartStrategy{}.Chunk(ctx, input, opts)
	}

	var chunks []Chunk
	start := 0
	for _, end := range offsets {
		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), input.Text[start:end], 0, 0, nil))
		start = end
	}
	if start < len(input.Text) {
		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), input.Text[start:], 0, 0, nil))
	}

	finalizeSequence(chunks)
	return chunks, nil
}

func boundaryPrompt(input ContentInput) string {
	return fmt.Sprintf("Propose chunk boundary character offsets (ascending, comma-separated) for the following %d-character document:\n\n%s", len(input.Text), input.Text)
}

func parseBoundaryOffsets(response string, textLen int) ([]int, bool) {
	fields := strings.Split(strings.TrimSpace(response), ",")
	offsets := make([]int, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, false
		}
		offsets = append(offsets, n)
	}
	if len(offsets) == 0 {
		return nil, false
	}
	sort.Ints(offsets)
	return offsets, true
}

func validOffsets(offsets []int, textLen int, opts Options) bool {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}
	minSize := opts.MinSize

	prev := 0
	for _, o := range offsets {
		if o <= prev || o > textLen {
			return false
		}
		size := o - prev
		if size > maxSize || (minSize > 0 && size < minSize && o != offsets[len(offsets)-1]) {
			return false
		}
		prev = o
	}
	return true
}

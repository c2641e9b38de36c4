package chunk

import (
	"context"
	"strings"
)

// ParagraphStrategy splits on blank-line boundaries and packs paragraphs
// into chunks up to max_size, falling back to FixedSize within any single
// paragraph too large to fit on its own.
type ParagraphStrategy struct{}

func (ParagraphStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}

	paragraphs := splitParagraphs(input.Text)

	var chunks []Chunk
	var current strings.Builder
	pendingHeading := ""

	flush := func() {
		if current.Len() == 0 {
			return
		}
		metadata := map[string]any{}
		if pendingHeading != "" {
			metadata["heading"] = pendingHeading
			pendingHeading = ""
		}
		chunks = append(chunks, newChunk(input.SourceURL, len(chunks), strings.TrimSpace(current.String()), 0, 0, metadata))
		current.Reset()
	}

	for _, p := range paragraphs {
		if opts.PreserveHeaders && isHeadingLine(p) {
			pendingHeading = p
			continue
		}

		if len(p) > maxSize {
			flush()
			sub, _ := FixedSizeStrategy{}.Chunk(ctx, ContentInput{SourceURL: input.SourceURL, Text: p}, opts)
			chunks = append(chunks, sub...)
			continue
		}

		if current.Len()+len(p) > maxSize && current.Len() > 0 {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	flush()

	finalizeSequence(chunks)
	return chunks, nil
}

func splitParagraphs(text string) []string {
	raw := strings.Split(text, "\n\n")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func isHeadingLine(p string) bool {
	return strings.HasPrefix(strings.TrimSpace(p), "#")
}

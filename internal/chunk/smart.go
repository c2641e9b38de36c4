package chunk

import (
	"context"
	"strings"

	"github.com/dociq/ragforge/internal/analyzer"
)

// SmartStrategy walks the section tree depth-first, emitting one chunk per
// leaf section, merging small leaves with siblings until min_size is
// reached, and splitting oversize leaves at paragraph then word
// boundaries. Code blocks and tables are kept whole while they fit within
// 2*max_size.
type SmartStrategy struct{}

func (SmartStrategy) Chunk(ctx context.Context, input ContentInput, opts Options) ([]Chunk, error) {
	if len(input.Sections) == 0 {
		return ParagraphStrategy{}.Chunk(ctx, input, opts)
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = 512
	}
	minSize := opts.MinSize

	var leaves []leafSection
	collectLeaves(input.Sections, nil, &leaves)

	var chunks []Chunk
	var pendingText strings.Builder
	var pendingPath []string

	flush := func() {
		if pendingText.Len() == 0 {
			return
		}
		metadata := map[string]any{}
		if len(pendingPath) > 0 {
			metadata["headingPath"] = strings.Join(pendingPath, " > ")
		}
		content := strings.TrimSpace(pendingText.String())
		if len(content) > maxSize {
			split := splitOversizeContent(content, maxSize)
			for _, s := range split {
				chunks = append(chunks, newChunk(input.SourceURL, len(chunks), s, 0, 0, cloneMeta(metadata)))
			}
		} else {
			chunks = append(chunks, newChunk(input.SourceURL, len(chunks), content, 0, 0, metadata))
		}
		pendingText.Reset()
		pendingPath = nil
	}

	for _, leaf := range leaves {
		if isAtomicBlock(leaf.text) && len(leaf.text) <= 2*maxSize {
			flush()
			chunks = append(chunks, newChunk(input.SourceURL, len(chunks), leaf.text, 0, 0, map[string]any{
				"headingPath": strings.Join(leaf.path, " > "),
				"isCodeBlock": strings.Contains(leaf.text, "```"),
				"isTable":     strings.Contains(leaf.text, "|"),
			}))
			continue
		}

		if pendingText.Len() > 0 {
			pendingText.WriteString("\n\n")
		}
		pendingText.WriteString(leaf.text)
		pendingPath = leaf.path

		if pendingText.Len() >= minSize {
			flush()
		}
	}
	flush()

	finalizeSequence(chunks)
	return chunks, nil
}

type leafSection struct {
	text string
	path []string
}

func collectLeaves(sections []*analyzer.Section, path []string, out *[]leafSection) {
	for _, s := range sections {
		sectionPath := append(append([]string{}, path...), s.Heading)
		if len(s.Children) == 0 {
			*out = append(*out, leafSection{text: s.Text, path: sectionPath})
			continue
		}
		collectLeaves(s.Children, sectionPath, out)
	}
}

func isAtomicBlock(text string) bool {
	return strings.Contains(text, "```") || strings.Count(text, "|") > 4
}

func cloneMeta(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// splitOversizeContent splits at paragraph boundaries, falling back to
// sentence then word boundaries, marking continuations explicitly.
func splitOversizeContent(content string, maxSize int) []string {
	paragraphs := splitParagraphs(content)
	var parts []string
	var current strings.Builder

	appendPart := func() {
		if current.Len() == 0 {
			return
		}
		parts = append(parts, strings.TrimSpace(current.String()))
		current.Reset()
	}

	for _, p := range paragraphs {
		if len(p) > maxSize {
			appendPart()
			parts = append(parts, splitBySentenceOrWord(p, maxSize)...)
			continue
		}
		if current.Len()+len(p) > maxSize && current.Len() > 0 {
			appendPart()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(p)
	}
	appendPart()

	if len(parts) > 1 {
		for i := range parts {
			parts[i] = parts[i] + " [continued]"
		}
		parts[len(parts)-1] = strings.TrimSuffix(parts[len(parts)-1], " [continued]")
	}
	return parts
}

func splitBySentenceOrWord(text string, maxSize int) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool { return r == '.' || r == '!' || r == '?' })
	var parts []string
	var current strings.Builder
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if len(s) > maxSize {
			if current.Len() > 0 {
				parts = append(parts, strings.TrimSpace(current.String()))
				current.Reset()
			}
			parts = append(parts, splitByWord(s, maxSize)...)
			continue
		}
		if current.Len()+len(s) > maxSize && current.Len() > 0 {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(s + ". ")
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

func splitByWord(text string, maxSize int) []string {
	words := strings.Fields(text)
	var parts []string
	var current strings.Builder
	for _, w := range words {
		if current.Len()+len(w)+1 > maxSize && current.Len() > 0 {
			parts = append(parts, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(w)
		current.WriteString(" ")
	}
	if current.Len() > 0 {
		parts = append(parts, strings.TrimSpace(current.String()))
	}
	return parts
}

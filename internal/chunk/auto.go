package chunk

import "github.com/dociq/ragforge/internal/analyzer"

// AutoSelect picks a strategy by heuristics: size threshold takes
// precedence (MemoryOptimized), then rich heading structure (Smart), then
// long narrative prose with an embedding capability available (Semantic),
// otherwise Paragraph.
func AutoSelect(input ContentInput, opts Options) Strategy {
	if opts.MemoryThreshold > 0 && len(input.Text) > opts.MemoryThreshold {
		return MemoryOptimizedStrategy{}
	}
	if hasRichHeadingStructure(input.Sections) {
		return SmartStrategy{}
	}
	if opts.Embedder != nil && looksLikeNarrativeProse(input.Text) {
		return SemanticStrategy{}
	}
	return ParagraphStrategy{}
}

func hasRichHeadingStructure(sections []*analyzer.Section) bool {
	return countAllSections(sections) >= 4
}

func countAllSections(sections []*analyzer.Section) int {
	n := len(sections)
	for _, s := range sections {
		n += countAllSections(s.Children)
	}
	return n
}

// looksLikeNarrativeProse is a crude heuristic: long average paragraph
// length without heavy Markdown structural markup (headings, lists, code
// fences) suggests flowing prose rather than a structured document.
func looksLikeNarrativeProse(text string) bool {
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return false
	}
	total := 0
	for _, p := range paragraphs {
		total += len(p)
	}
	avg := total / len(paragraphs)
	return avg > 200
}

package quality

import (
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// markdownValidityScore parses content and rewards the same structural
// invariants the cleaning pipeline enforces upstream (exactly one H1, no
// skipped heading levels, no content before the first heading, no heading
// inside a code block), scored as the fraction of checks satisfied rather
// than a hard pass/fail — this dimension is a regression signal, not a
// gate.
func markdownValidityScore(content string) float64 {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return 0
	}

	p := parser.New()
	doc := markdown.Parse([]byte(content), p)

	var headings []*ast.Heading
	var contentBeforeH1 bool
	var headingInsideCode bool
	var insideCode bool

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		switch n := node.(type) {
		case *ast.Heading:
			if entering {
				if insideCode {
					headingInsideCode = true
				}
				headings = append(headings, n)
			}
		case *ast.CodeBlock:
			insideCode = entering
		case *ast.Text, *ast.Paragraph, *ast.List, *ast.Table:
			if entering && len(headings) == 0 {
				contentBeforeH1 = true
			}
		}
		return ast.GoToNext
	})

	checks := 0
	passed := 0

	checks++
	if h1Count(headings) == 1 {
		passed++
	}
	checks++
	if !contentBeforeH1 {
		passed++
	}
	checks++
	if !headingInsideCode {
		passed++
	}
	checks++
	if !hasSkippedLevels(headings) {
		passed++
	}

	return float64(passed) / float64(checks)
}

func h1Count(headings []*ast.Heading) int {
	count := 0
	for _, h := range headings {
		if h.Level == 1 {
			count++
		}
	}
	return count
}

func hasSkippedLevels(headings []*ast.Heading) bool {
	prev := 0
	for _, h := range headings {
		if prev != 0 && h.Level > prev+1 {
			return true
		}
		prev = h.Level
	}
	return false
}

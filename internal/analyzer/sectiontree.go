package analyzer

import (
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

// headingNode pairs a heading level with the text run until the next
// heading of equal or lesser level.
type headingNode struct {
	level int
	text  string
	body  strings.Builder
}

// buildSectionTree walks the Markdown AST depth-first, collecting each
// heading and the text that follows it, then folds the flat run into a
// tree capped at maxDepth. Headings deeper than maxDepth flatten into the
// deepest kept level rather than being dropped.
func buildSectionTree(markdownContent []byte, maxDepth int) []*Section {
	nodes := flattenHeadings(markdownContent)
	if len(nodes) == 0 {
		return nil
	}
	return foldSections(nodes, maxDepth)
}

func flattenHeadings(markdownContent []byte) []*headingNode {
	extensions := parser.CommonExtensions
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse(markdownContent)

	var nodes []*headingNode
	var current *headingNode

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}
		switch n := node.(type) {
		case *ast.Heading:
			current = &headingNode{level: n.Level, text: headingText(n)}
			nodes = append(nodes, current)
			return ast.SkipChildren
		case *ast.Text:
			if current != nil {
				current.body.Write(n.Literal)
				current.body.WriteString(" ")
			}
		}
		return ast.GoToNext
	})

	return nodes
}

func headingText(h *ast.Heading) string {
	var sb strings.Builder
	ast.WalkFunc(h, func(node ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if t, ok := node.(*ast.Text); ok {
				sb.Write(t.Literal)
			}
		}
		return ast.GoToNext
	})
	return strings.TrimSpace(sb.String())
}

// foldSections turns the flat, DOM-order heading run into a tree, capping
// depth at maxDepth: any heading deeper than maxDepth attaches at the
// deepest level actually kept, rather than being dropped or panicking on
// an out-of-range level.
func foldSections(nodes []*headingNode, maxDepth int) []*Section {
	if maxDepth < 1 {
		maxDepth = 1
	}

	var roots []*Section
	stack := make([]*Section, 0, maxDepth)

	for _, n := range nodes {
		level := n.level
		if level > maxDepth {
			level = maxDepth
		}

		section := &Section{
			HeadingLevel: level,
			Heading:      n.text,
			Text:         strings.TrimSpace(n.body.String()),
		}

		for len(stack) > 0 && stack[len(stack)-1].HeadingLevel >= level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, section)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, section)
		}
		stack = append(stack, section)
	}

	return roots
}

// mergeShortSections folds any section whose text is shorter than minLen
// into its predecessor sibling, recursively. A short section with no
// predecessor sibling is kept as it is. A section with children is never
// merged away even if its own text is short, since its children may carry
// the substance.
func mergeShortSections(sections []*Section, minLen int) []*Section {
	var merged []*Section

	for _, s := range sections {
		s.Children = mergeShortSections(s.Children, minLen)

		if len(s.Children) == 0 && len(s.Text) < minLen && len(merged) > 0 {
			prev := merged[len(merged)-1]
			prev.Text = strings.TrimSpace(prev.Text + "\n\n" + s.Text)
			continue
		}

		merged = append(merged, s)
	}

	return merged
}

func sectionDepth(sections []*Section) int {
	max := 0
	for _, s := range sections {
		d := 1 + sectionDepth(s.Children)
		if d > max {
			max = d
		}
	}
	return max
}

// Package quality implements the post-hoc Quality Measurer: a deterministic,
// side-effect-free scorer used by the test harness and optional reports,
// never consulted by the production pipeline's control flow.
package quality

import (
	"strings"

	"golang.org/x/net/html"
)

// Measure computes Structure (0.25), Content (0.35), Noise (0.25), and
// Markdown-validity (0.15) weighted into an overall [0,1] score.
func Measure(input Input) Score {
	structure := structureScore(input)
	content := contentScore(input)
	noise := noiseScore(input)
	validity := markdownValidityScore(input.ExtractedMarkdown)

	overall := weightStructure*structure +
		weightContent*content +
		weightNoise*noise +
		weightMarkdownValidity*validity

	return Score{
		Structure:        structure,
		Content:          content,
		Noise:            noise,
		MarkdownValidity: validity,
		Overall:          clamp01(overall),
	}
}

// structureScore rewards extractions that preserved multiple distinct
// sections rather than collapsing everything into one undifferentiated
// block.
func structureScore(input Input) float64 {
	if input.SectionCount <= 0 {
		return 0
	}
	return clamp01(float64(input.SectionCount) / 6.0)
}

// contentScore compares extracted word count against the original,
// rewarding extractions that retained a substantial, but not excessive
// (i.e. not still full of chrome), share of the source text.
func contentScore(input Input) float64 {
	if input.OriginalWordCount <= 0 {
		return 0
	}
	ratio := float64(input.WordCount) / float64(input.OriginalWordCount)
	switch {
	case ratio <= 0:
		return 0
	case ratio < 0.05:
		return ratio / 0.05 * 0.5
	case ratio <= 0.8:
		return 1.0
	default:
		return clamp01(1.0 - (ratio-0.8)/0.2*0.5)
	}
}

// noiseScore estimates how much of the original HTML's element count was
// chrome (nav/footer/aside/script/style/iframe/noscript), scored as 1 minus
// that chrome ratio. The extraction itself is not consulted.
func noiseScore(input Input) float64 {
	chromeElements, totalElements := countChrome(input.OriginalHTML)
	if totalElements == 0 {
		return 1
	}
	return clamp01(1.0 - float64(chromeElements)/float64(totalElements))
}

func countChrome(htmlContent string) (chrome, total int) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return 0, 0
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			total++
			switch n.Data {
			case "nav", "footer", "aside", "script", "style", "iframe", "noscript":
				chrome++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return chrome, total
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package analyzer

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripNoise removes every node matched by noiseSelectors from the parsed
// document, mutating it in place.
func stripNoise(doc *goquery.Document, noiseSelectors []string) {
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}
}

// htmlNoiseRatio parses an HTML-subset fragment and reports what fraction
// of its elements match the configured noise selectors. Used only when
// ExtractedContent still carries an HTML-subset main_content alongside its
// Markdown rendering (the data model allows either); the Markdown path
// already had its CSS-selector noise removed upstream during cleaning.
func htmlNoiseRatio(htmlFragment string, noiseSelectors []string) float64 {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlFragment))
	if err != nil {
		return 0
	}

	total := doc.Find("*").Length()
	if total == 0 {
		return 0
	}

	noisy := 0
	for _, sel := range noiseSelectors {
		noisy += doc.Find(sel).Length()
	}

	return clamp01(float64(noisy) / float64(total))
}

// scoreNoise estimates how much of a section's text looks like boilerplate
// rather than substantive content: short lines, link-heavy lines, and
// all-caps lines all push the score toward 1 (noisier).
func scoreNoise(text string) float64 {
	lines := strings.Split(text, "\n")
	if len(lines) == 0 {
		return 0
	}

	noisy := 0
	counted := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		counted++
		if looksLikeBoilerplate(trimmed) {
			noisy++
		}
	}

	if counted == 0 {
		return 0
	}
	return float64(noisy) / float64(counted)
}

func looksLikeBoilerplate(line string) bool {
	if len(line) < 8 {
		return true
	}
	words := strings.Fields(line)
	if len(words) == 0 {
		return true
	}
	upper := strings.ToUpper(line)
	if upper == line && len(words) < 6 {
		return true
	}
	linkish := strings.Count(line, "http") + strings.Count(line, "]( ")
	return linkish > 0 && len(words) < 4
}

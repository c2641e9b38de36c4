package pagemeta

import (
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
)

const wordsPerMinute = 220.0

// inferStructure walks the content node and derives heading/paragraph
// counts, a reading-time estimate, and a coarse complexity score from
// average sentence length and heading density.
func inferStructure(doc *goquery.Document) StructureStats {
	headingCount := doc.Find("h1, h2, h3, h4, h5, h6").Length()
	paragraphCount := doc.Find("p").Length()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	words := strings.FieldsFunc(text, func(r rune) bool { return unicode.IsSpace(r) })
	wordCount := len(words)

	readingMins := float64(wordCount) / wordsPerMinute

	sentences := countSentences(text)
	avgSentenceLen := 0.0
	if sentences > 0 {
		avgSentenceLen = float64(wordCount) / float64(sentences)
	}
	headingDensity := 0.0
	if paragraphCount > 0 {
		headingDensity = float64(headingCount) / float64(paragraphCount)
	}
	complexity := normalizeComplexity(avgSentenceLen, headingDensity)

	return StructureStats{
		HeadingCount:     headingCount,
		ParagraphCount:   paragraphCount,
		WordCount:        wordCount,
		ReadingTimeMins:  readingMins,
		ComplexityScore:  complexity,
		HasAccessibility: hasAccessibilitySignals(doc),
	}
}

func countSentences(text string) int {
	count := 0
	for _, r := range text {
		if r == '.' || r == '!' || r == '?' {
			count++
		}
	}
	if count == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return count
}

// normalizeComplexity maps average sentence length (longer = more complex)
// and heading density (more headings = better broken up, less complex) into
// a single [0,1] score.
func normalizeComplexity(avgSentenceLen, headingDensity float64) float64 {
	lengthComponent := clamp01(avgSentenceLen / 40.0)
	densityComponent := clamp01(1.0 - headingDensity)
	return clamp01(0.6*lengthComponent + 0.4*densityComponent)
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

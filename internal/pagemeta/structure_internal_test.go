package pagemeta

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferStructure_CountsHeadingsAndParagraphs(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<html><body><h1>A</h1><h2>B</h2><p>One.</p><p>Two.</p></body></html>`))
	require.NoError(t, err)

	stats := inferStructure(doc)

	assert.Equal(t, 2, stats.HeadingCount)
	assert.Equal(t, 2, stats.ParagraphCount)
	assert.Greater(t, stats.WordCount, 0)
	assert.Greater(t, stats.ReadingTimeMins, 0.0)
}

func TestNormalizeComplexity_ClampedToUnitRange(t *testing.T) {
	assert.Equal(t, 0.0, normalizeComplexity(0, 1))
	assert.InDelta(t, 1.0, normalizeComplexity(1000, 0), 0.01)
}

func TestCountSentences(t *testing.T) {
	assert.Equal(t, 3, countSentences("One. Two! Three?"))
	assert.Equal(t, 1, countSentences("no terminal punctuation"))
	assert.Equal(t, 0, countSentences(""))
}

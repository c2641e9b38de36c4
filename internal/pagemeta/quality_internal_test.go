package pagemeta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreCompleteness_WeightsSumToOne(t *testing.T) {
	total := 0.0
	for _, w := range dimensionWeight {
		total += w
	}
	assert.InDelta(t, 1.0, total, 0.0001)
}

func TestScoreCompleteness_EmptyMetaHasZeroOverall(t *testing.T) {
	quality := scoreCompleteness(PageMetadata{})
	assert.Equal(t, 0.0, quality.Overall)
	assert.Contains(t, quality.MissingCritical, "title")
	assert.Contains(t, quality.MissingCritical, "description")
}

func TestScoreCompleteness_FullBasicFieldsScoreOne(t *testing.T) {
	meta := PageMetadata{
		Title:       SourcedField{Value: "t"},
		Description: SourcedField{Value: "d"},
		Author:      SourcedField{Value: "a"},
		Canonical:   SourcedField{Value: "c"},
	}
	quality := scoreCompleteness(meta)
	assert.Equal(t, 1.0, quality.PerDimension[DimensionBasic])
}

func TestPresenceScore_PartialFields(t *testing.T) {
	fields := map[string]SourcedField{
		"title": {Value: "x"},
	}
	score := presenceScore(fields, []string{"title", "description", "image", "url"})
	assert.Equal(t, 0.25, score)
}

func TestSchemaOrgScore_PresenceOnly(t *testing.T) {
	assert.Equal(t, 0.0, schemaOrgScore(nil))
	assert.Equal(t, 1.0, schemaOrgScore([]map[string]any{{"@type": "Article"}}))
}

func TestGapsFor_RecommendsMissingSocialAndStructuredData(t *testing.T) {
	_, recs := gapsFor(PageMetadata{}, map[Dimension]float64{
		DimensionOpenGraph:     0,
		DimensionSchemaOrg:     0,
		DimensionAccessibility: 0,
	})
	assert.Contains(t, recs, "add og:title/og:description/og:image/og:url tags for social sharing")
	assert.Contains(t, recs, "add Schema.org JSON-LD structured data")
	assert.Contains(t, recs, "set an html lang attribute and alt text on images")
}

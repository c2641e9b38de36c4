// Package analyzer scores residual noise, builds a depth-capped section
// tree from heading structure, scores overall content quality, and
// classifies the page's content type.
package analyzer

import (
	"strings"
	"time"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
)

type Analyzer struct {
	metadataSink telemetry.MetadataSink
	opts         Options
}

func NewAnalyzer(metadataSink telemetry.MetadataSink, opts Options) Analyzer {
	return Analyzer{metadataSink: metadataSink, opts: opts}
}

// Analyze runs the five-step pipeline: noise scoring, section-tree
// construction, short-section merge, quality scoring, and content-type
// classification. Noise is scored per section, and an HTML-subset
// MainContent is penalized by the share of its elements matching
// NoiseSelectors; no text is removed from the input.
func (a *Analyzer) Analyze(content ExtractedContent) (AnalyzedContent, failure.ClassifiedError) {
	if strings.TrimSpace(content.FitMarkdown) == "" && strings.TrimSpace(content.MainContent) == "" {
		err := &AnalysisError{
			Message:   "extracted content has no body to analyze",
			Retryable: false,
			Cause:     ErrCauseEmptyContent,
		}
		a.recordError(content.URL, err)
		return AnalyzedContent{}, err
	}

	fitMarkdown := content.FitMarkdown
	if fitMarkdown == "" {
		fitMarkdown = content.MainContent
	}

	sections := buildSectionTree([]byte(fitMarkdown), a.opts.MaxDepth)
	for _, s := range sections {
		assignNoiseScores(s)
	}
	sections = mergeShortSections(sections, a.opts.MinSectionLen)

	analyzed := AnalyzedContent{
		ExtractedContent: content,
		Sections:         sections,
	}
	analyzed.QualityScore = scoreQuality(content, sections)
	if strings.Contains(content.MainContent, "<") {
		htmlMalus := htmlNoiseRatio(content.MainContent, a.opts.NoiseSelectors)
		analyzed.QualityScore = clamp01(analyzed.QualityScore * (1 - 0.2*htmlMalus))
	}
	analyzed.ContentType = classifyContentType(content, sections)

	return analyzed, nil
}

func assignNoiseScores(s *Section) {
	s.NoiseScore = scoreNoise(s.Text)
	for _, child := range s.Children {
		assignNoiseScores(child)
	}
}

func (a *Analyzer) recordError(sourceURL string, err *AnalysisError) {
	a.metadataSink.RecordError(
		time.Now(),
		"analyzer",
		"Analyzer.Analyze",
		mapAnalysisErrorToMetadataCause(err),
		err.Error(),
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrURL, sourceURL),
		},
	)
}

package analyzer_test

import (
	"testing"
	"time"

	"github.com/dociq/ragforge/internal/analyzer"
	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSink struct {
	errCount int
}

func (s *stubSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int) {
}

func (s *stubSink) RecordAssetFetch(fetchUrl string, httpStatus int, duration time.Duration, retryCount int) {
}

func (s *stubSink) RecordArtifact(kind telemetry.ArtifactKind, path string, attrs []telemetry.Attribute) {
}

func (s *stubSink) RecordError(at time.Time, packageName string, action string, cause telemetry.ErrorCause, errorString string, attrs []telemetry.Attribute) {
	s.errCount++
}

func TestAnalyze_BuildsSectionsAndScoresQuality(t *testing.T) {
	content := analyzer.ExtractedContent{
		URL:   "https://example.com/articles/widgets",
		Title: "How To Configure Widgets",
		FitMarkdown: `# How To Configure Widgets

This guide walks through configuring widgets end to end with real examples.

## Step 1: Install

Run the installer and follow the prompts to complete the setup process.

## Step 2: Configure

Edit the configuration file and set the options relevant to your deployment.
`,
		WordCount: 400,
	}

	a := analyzer.NewAnalyzer(&stubSink{}, analyzer.DefaultOptions())
	result, err := a.Analyze(content)
	require.NoError(t, err)

	require.Len(t, result.Sections, 1)
	assert.Equal(t, "How To Configure Widgets", result.Sections[0].Heading)
	require.Len(t, result.Sections[0].Children, 2)
	assert.GreaterOrEqual(t, result.QualityScore, 0.0)
	assert.LessOrEqual(t, result.QualityScore, 1.0)
	assert.Equal(t, analyzer.ContentTutorial, result.ContentType)
}

func TestAnalyze_EmptyContentFails(t *testing.T) {
	sink := &stubSink{}
	a := analyzer.NewAnalyzer(sink, analyzer.DefaultOptions())

	_, err := a.Analyze(analyzer.ExtractedContent{URL: "https://example.com/empty"})

	require.Error(t, err)
	assert.Equal(t, 1, sink.errCount)
}

func TestAnalyze_ClassifiesDocumentationFromURL(t *testing.T) {
	content := analyzer.ExtractedContent{
		URL:         "https://example.com/docs/api-reference",
		Title:       "API Reference",
		FitMarkdown: "# API Reference\n\nFull reference for every endpoint exposed by the service.\n",
		WordCount:   200,
	}

	a := analyzer.NewAnalyzer(&stubSink{}, analyzer.DefaultOptions())
	result, err := a.Analyze(content)
	require.NoError(t, err)

	assert.Equal(t, analyzer.ContentDocumentation, result.ContentType)
}

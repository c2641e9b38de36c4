// Package pagemeta harvests and merges page metadata from <meta> tags,
// OpenGraph, Twitter Cards, Dublin Core, and Schema.org JSON-LD, infers
// document structure, scores completeness, and optionally augments missing
// fields through a TextCompletion capability.
package pagemeta

import (
	"context"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
	"golang.org/x/net/html"
)

// Extractor runs the Metadata Extractor stage.
type Extractor struct {
	metadataSink telemetry.MetadataSink
}

func NewExtractor(metadataSink telemetry.MetadataSink) Extractor {
	return Extractor{metadataSink: metadataSink}
}

// Extract parses contentNode for metadata, infers structure, scores
// completeness, and — when opts.Completion is set — augments missing fields.
// An AI-augmentation failure is recorded and otherwise ignored: the
// HTML-derived metadata is still returned and scored.
func (e *Extractor) Extract(ctx context.Context, sourceURL url.URL, contentNode *html.Node, opts Options) (PageMetadata, failure.ClassifiedError) {
	if contentNode == nil {
		err := &MetadataError{
			Message:   "cannot extract metadata from nil content node",
			Retryable: false,
			Cause:     ErrCauseNoDocument,
		}
		e.recordError(sourceURL, err)
		return PageMetadata{}, err
	}

	doc := goquery.NewDocumentFromNode(contentNode)

	title, description, author, canonical := extractBasicMeta(doc)
	meta := PageMetadata{
		Title:       SourcedField{Value: title, Source: SourceHTML},
		Description: SourcedField{Value: description, Source: SourceHTML},
		Author:      SourcedField{Value: author, Source: SourceHTML},
		Canonical:   SourcedField{Value: canonical, Source: SourceHTML},
		OpenGraph:   extractOpenGraph(doc),
		Twitter:     extractTwitter(doc),
		DublinCore:  extractDublinCore(doc),
		SchemaOrg:   extractSchemaOrg(doc),
		Structure:   inferStructure(doc),
	}

	if opts.Completion != nil {
		augmented, augErr := augmentWithAI(ctx, meta, opts)
		if augErr != nil {
			e.recordError(sourceURL, augErr)
		} else {
			meta = augmented
		}
	}

	meta.Quality = scoreCompleteness(meta)
	return meta, nil
}

func (e *Extractor) recordError(sourceURL url.URL, err *MetadataError) {
	e.metadataSink.RecordError(
		time.Now(),
		"pagemeta",
		"Extractor.Extract",
		mapMetadataErrorToMetadataCause(err),
		err.Error(),
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrURL, sourceURL.String()),
		},
	)
}

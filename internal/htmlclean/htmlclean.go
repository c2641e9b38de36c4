// Package htmlclean selects and repairs the main-content region of a fetched
// page: noise stripping, main-content selection, and structural repair,
// merged from the document-extraction and DOM-sanitation concerns into one
// pipeline stage.
package htmlclean

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
	"golang.org/x/net/html"
)

// Cleaner runs the HTML Cleaner stage: parse, select the main content
// region (or strip noise only, in Keep-all mode), repair DOM structure, and
// resolve relative URLs.
type Cleaner struct {
	metadataSink telemetry.MetadataSink
	opts         Options
}

func NewCleaner(metadataSink telemetry.MetadataSink, opts Options) Cleaner {
	return Cleaner{metadataSink: metadataSink, opts: opts}
}

// Clean parses pageHTML, selects the content region per Options, strips
// noise, repairs structure, and resolves relative hrefs/srcs/srcsets
// against sourceURL.
func (c *Cleaner) Clean(sourceURL url.URL, pageHTML []byte) (CleanResult, failure.ClassifiedError) {
	result, err := c.clean(sourceURL, pageHTML)
	if err != nil {
		var cleanErr *CleanError
		errors.As(err, &cleanErr)
		c.metadataSink.RecordError(
			time.Now(),
			"htmlclean",
			"Cleaner.Clean",
			mapCleanErrorToMetadataCause(cleanErr),
			err.Error(),
			[]telemetry.Attribute{
				telemetry.NewAttr(telemetry.AttrURL, fmt.Sprintf("%v", sourceURL)),
			},
		)
		return CleanResult{}, cleanErr
	}
	return result, nil
}

func (c *Cleaner) clean(sourceURL url.URL, pageHTML []byte) (CleanResult, error) {
	doc, err := html.Parse(bytes.NewReader(pageHTML))
	if err != nil {
		return CleanResult{}, &CleanError{
			Message:   fmt.Sprintf("failed to parse HTML: %v", err),
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}
	if !isValidHTML(doc) {
		return CleanResult{}, &CleanError{
			Message:   "input is not valid HTML document",
			Retryable: false,
			Cause:     ErrCauseNotHTML,
		}
	}

	stripNoise(doc, c.opts.NoiseSelectors, c.opts.KeepSelectors)

	contentNode := doc
	if c.opts.OnlyMainContent {
		selector := newMainContentSelector(c.opts)
		selected := selector.selectContent(doc)
		if selected == nil {
			return CleanResult{}, &CleanError{
				Message:   "no meaningful content container found",
				Retryable: false,
				Cause:     ErrCauseNoContent,
			}
		}
		contentNode = selected
	}

	repaired, cerr := repairStructure(contentNode)
	if cerr != nil {
		return CleanResult{}, cerr
	}

	base := sourceURL.String()
	resolveRelativeURLs(repaired, base)

	rawURLs := extractUrl(repaired)
	discovered := make([]DiscoveredURL, 0, len(rawURLs))
	for _, u := range rawURLs {
		resolved, ok := resolveURL(base, u.String())
		if !ok {
			resolved = u.String()
		}
		discovered = append(discovered, DiscoveredURL{Raw: u.String(), Resolved: resolved})
	}

	return CleanResult{ContentNode: repaired, DiscoveredURLs: discovered}, nil
}

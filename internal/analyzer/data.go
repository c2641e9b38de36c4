package analyzer

/*
Responsibilities
- Score residual noise per section by line heuristics and, for HTML-subset
  main content, by configured CSS selectors (scored, not removed)
- Build a depth-capped section tree from heading levels, merging short
  sections into their predecessor
- Score content quality and classify content type
*/

// ExtractedContent is the stage boundary handed to the Analyzer: the cleaned
// Markdown/HTML-subset produced upstream plus the metadata harvested
// alongside it.
type ExtractedContent struct {
	URL         string
	Title       string
	MainContent string
	RawMarkdown string
	FitMarkdown string
	WordCount   int
	Language    string
	ImageURLs   []string
	LinkURLs    []string
	Metadata    map[string]string
}

// Section is one node of the heading-derived content tree.
type Section struct {
	HeadingLevel int
	Heading      string
	Text         string
	NoiseScore   float64
	Children     []*Section
}

// ContentType is the Analyzer's coarse classification of page purpose.
type ContentType string

const (
	ContentArticle       ContentType = "article"
	ContentDocumentation ContentType = "documentation"
	ContentProduct       ContentType = "product"
	ContentTutorial      ContentType = "tutorial"
	ContentBlog          ContentType = "blog"
)

// AnalyzedContent extends ExtractedContent with the section tree, a
// quality score in [0,1], and a content-type classification.
type AnalyzedContent struct {
	ExtractedContent
	Sections      []*Section
	QualityScore  float64
	ContentType   ContentType
}

// Options bounds the Analyzer's tree-shaping behavior.
type Options struct {
	MaxDepth        int // tree depth cap; beyond this, headings flatten into the deepest kept level
	MinSectionLen   int // sections shorter than this merge into their predecessor
	NoiseSelectors  []string
}

// DefaultOptions mirrors the defaults used across the rest of the pipeline:
// a six-level cap (h1-h6) and a conservative minimum section length.
func DefaultOptions() Options {
	return Options{
		MaxDepth:      6,
		MinSectionLen: 40,
		NoiseSelectors: []string{
			".advertisement", ".ads", ".social-share", ".cookie-banner",
			".newsletter-signup", ".related-posts", ".comments",
		},
	}
}

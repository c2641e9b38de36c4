package quality

/*
Responsibilities
- Score a completed extraction against its original HTML for regression
  tests: a deterministic, side-effect-free post-hoc metric, not something
  the production pipeline consults at run time.
*/

// Input bundles what the Quality Measurer needs: the extracted Markdown
// result and the original HTML it was derived from.
type Input struct {
	OriginalHTML      string
	ExtractedMarkdown string
	SectionCount      int
	WordCount         int
	OriginalWordCount int
}

// Score is the per-dimension breakdown plus the weighted overall result.
type Score struct {
	Structure        float64
	Content          float64
	Noise            float64
	MarkdownValidity float64
	Overall          float64
}

const (
	weightStructure        = 0.25
	weightContent          = 0.35
	weightNoise            = 0.25
	weightMarkdownValidity = 0.15
)

package reconstruct

/*
Responsibilities
- Optionally rewrite, summarize, expand, or enrich analyzed content through
  a TextCompletion capability
- Fall back to pass-through whenever no strategy is selected, no
  capability is wired, or the capability call fails mid-stage
*/

// Strategy is a closed enumeration of the five reconstruction strategies;
// not a class hierarchy.
type Strategy int

const (
	None Strategy = iota
	Summarize
	Expand
	Rewrite
	Enrich
)

func (s Strategy) String() string {
	switch s {
	case None:
		return "none"
	case Summarize:
		return "summarize"
	case Expand:
		return "expand"
	case Rewrite:
		return "rewrite"
	case Enrich:
		return "enrich"
	default:
		return "unknown"
	}
}

// ParseStrategy maps a config/CLI strategy name to its Strategy value,
// defaulting to None for an empty or unrecognized name.
func ParseStrategy(name string) Strategy {
	switch name {
	case "summarize":
		return Summarize
	case "expand":
		return Expand
	case "rewrite":
		return Rewrite
	case "enrich":
		return Enrich
	default:
		return None
	}
}

// Style parameterizes the Rewrite strategy.
type Style string

const (
	StyleFormal    Style = "formal"
	StyleCasual    Style = "casual"
	StyleTechnical Style = "technical"
	StyleSimple    Style = "simple"
)

// EnrichSection names one of the section kinds the Enrich strategy may add.
type EnrichSection string

const (
	EnrichContext     EnrichSection = "context"
	EnrichDefinitions EnrichSection = "definitions"
	EnrichExamples    EnrichSection = "examples"
	EnrichRelatedInfo EnrichSection = "related_info"
)

// Options configures a Reconstruct call.
type Options struct {
	Strategy       Strategy
	SummaryRatio   float64 // default 0.3, used by Summarize
	ExpansionRatio float64 // default 1.5, used by Expand
	RewriteStyle   Style
	EnrichSections []EnrichSection
	Completion     TextCompletion
	MaxTokens      int
}

// DefaultOptions mirrors the ratios named in the reconstruction strategy
// descriptions.
func DefaultOptions() Options {
	return Options{
		Strategy:       None,
		SummaryRatio:   0.3,
		ExpansionRatio: 1.5,
		RewriteStyle:   StyleFormal,
		MaxTokens:      1024,
	}
}

// Metrics reports the outcome of a reconstruction attempt.
type Metrics struct {
	Quality          float64
	CompressionRatio float64
	TokensUsed       int
}

// ReconstructedContent holds the reconstructed text and bookkeeping about
// how it was produced. If Strategy is None,
// ReconstructedText equals the input's cleaned content unchanged.
type ReconstructedContent struct {
	ReconstructedText string
	StrategyUsed      Strategy
	UsedLLM           bool
	Enhancements      []string
	Metrics           Metrics
}

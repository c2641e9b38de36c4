package chunk

import "github.com/dociq/ragforge/internal/analyzer"

/*
Responsibilities
- Slice analyzed content into bounded, ordered, uniquely identified chunks
  via one of six interchangeable strategies, or a heuristic Auto selector
- Score each chunk's quality on emission
*/

// StrategyName identifies one of the six chunking strategies for
// configuration and the Auto selector's decision.
type StrategyName string

const (
	StrategyFixedSize        StrategyName = "fixed_size"
	StrategyParagraph        StrategyName = "paragraph"
	StrategySmart            StrategyName = "smart"
	StrategySemantic         StrategyName = "semantic"
	StrategyIntelligent      StrategyName = "intelligent"
	StrategyMemoryOptimized  StrategyName = "memory_optimized"
)

// Options bounds every chunking strategy; each strategy reads the subset
// relevant to it.
type Options struct {
	MaxSize          int // characters
	MinSize          int // characters
	Overlap          int // characters of carry-over between adjacent chunks
	Language         string
	PreserveHeaders  bool
	SplitTables      bool
	SplitCodeBlocks  bool
	SemanticThreshold float64 // default 0.7, used by Semantic
	KeepTogether     bool    // atomic blocks may exceed MaxSize when set
	MemoryThreshold  int     // characters; above this Auto picks MemoryOptimized
	Embedder         Embedder
	Completion       TextCompletion
}

// DefaultOptions sets the canonical overlap and thresholds. The overlap
// default is resolved to 64 characters: the spec's two competing option
// classes disagreed (50 vs 64); 64 is adopted as the single canonical
// default across this package.
func DefaultOptions() Options {
	return Options{
		MaxSize:           512,
		MinSize:           64,
		Overlap:           64,
		PreserveHeaders:   true,
		SplitTables:       true,
		SplitCodeBlocks:   true,
		SemanticThreshold: 0.7,
		MemoryThreshold:   1 << 20, // 1 MiB
	}
}

// ContentInput is the common argument every strategy chunks: the
// reconstructed text plus the section tree that structure-aware strategies
// walk.
type ContentInput struct {
	SourceURL string
	Text      string
	Sections  []*analyzer.Section
}

// Chunk is a single bounded, ordered, uniquely identified content slice.
// Struct tags are the wire format: JSON with camelCase keys, emitted
// directly from this struct with no separate DTO layer.
type Chunk struct {
	ID            string         `json:"id"`
	SourceURL     string         `json:"sourceUrl"`
	Sequence      int            `json:"sequence"`
	Content       string         `json:"content"`
	TokenEstimate int            `json:"tokenEstimate"`
	OverlapPrev   int            `json:"overlapPrev"`
	OverlapNext   int            `json:"overlapNext"`
	QualityScore  float64        `json:"qualityScore"` // 0-100
	Metadata      map[string]any `json:"metadata"`
}

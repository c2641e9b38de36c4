package pagemeta

/*
Responsibilities
- Parse and merge basic <meta>, OpenGraph, Twitter Card, Dublin Core, and
  Schema.org JSON-LD metadata
- Infer document structure (heading/paragraph counts, reading time, complexity)
- Score completeness across seven dimensions
- Optionally augment missing fields through a TextCompletion capability
*/

// FieldSource records where a metadata field's value came from, for the
// HTML-precedence / AI-fills-gaps merge policy.
type FieldSource string

const (
	SourceHTML   FieldSource = "html"
	SourceAI     FieldSource = "ai"
	SourceMerged FieldSource = "merged"
)

// SourcedField pairs a value with the provenance of that value.
type SourcedField struct {
	Value  string
	Source FieldSource
}

// PageMetadata is the merged result of every extraction dimension.
type PageMetadata struct {
	Title       SourcedField
	Description SourcedField
	Author      SourcedField
	Canonical   SourcedField

	OpenGraph  map[string]SourcedField
	Twitter    map[string]SourcedField
	DublinCore map[string]SourcedField

	SchemaOrg []map[string]any

	Structure StructureStats

	Quality Completeness
}

// StructureStats is the document structure inferred from the content tree:
// heading/paragraph counts, a words/220-per-minute reading-time estimate, and
// a complexity score.
type StructureStats struct {
	HeadingCount     int
	ParagraphCount   int
	WordCount        int
	ReadingTimeMins  float64
	ComplexityScore  float64
	HasAccessibility bool
}

// Dimension is one of the seven completeness dimensions scored for Quality.
type Dimension string

const (
	DimensionBasic         Dimension = "basic"
	DimensionOpenGraph     Dimension = "opengraph"
	DimensionTwitter       Dimension = "twitter"
	DimensionSchemaOrg     Dimension = "schemaorg"
	DimensionDublinCore    Dimension = "dublincore"
	DimensionStructure     Dimension = "structure"
	DimensionAccessibility Dimension = "accessibility"
)

// dimensionWeight assigns each dimension an equal share of the [0,1] quality
// score; all seven dimensions are weighted uniformly.
var dimensionWeight = map[Dimension]float64{
	DimensionBasic:         1.0 / 7,
	DimensionOpenGraph:     1.0 / 7,
	DimensionTwitter:       1.0 / 7,
	DimensionSchemaOrg:     1.0 / 7,
	DimensionDublinCore:    1.0 / 7,
	DimensionStructure:     1.0 / 7,
	DimensionAccessibility: 1.0 / 7,
}

// Completeness is the per-dimension breakdown plus the weighted overall score.
type Completeness struct {
	Overall          float64
	PerDimension     map[Dimension]float64
	MissingCritical  []string
	Recommendations  []string
}

// Schema names a caller-chosen extraction schema for the optional AI
// extractor augmentation pass.
type Schema string

const (
	SchemaGeneral       Schema = "general"
	SchemaTechnicalDoc  Schema = "technical_doc"
	SchemaProductManual Schema = "product_manual"
	SchemaArticle       Schema = "article"
	SchemaCustom        Schema = "custom"
)

// Options configures an Extract call.
type Options struct {
	Schema       Schema
	CustomPrompt string // used only when Schema == SchemaCustom
	Completion   TextCompletion
}

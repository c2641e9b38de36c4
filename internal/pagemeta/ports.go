package pagemeta

import "context"

// CompletionOptions bounds a single TextCompletion call.
type CompletionOptions struct {
	MaxTokens        int
	Temperature      float64 // [0,2]
	TopP             float64 // [0,1]
	FrequencyPenalty float64 // [-2,2]
	PresencePenalty  float64 // [-2,2]
	SystemPrompt     string
}

// CompletionHealth reports the backing model's availability.
type CompletionHealth struct {
	Status           string
	Model            string
	ResponseTimeMs   int64
	AvailableModels  []string
}

// TextCompletion is the capability port consumed by the AI-augmented
// extractor to fill metadata fields the HTML couldn't supply. No concrete
// provider adapter is wired in this repo; callers inject their own.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	CompleteStream(ctx context.Context, prompt string, opts CompletionOptions) (<-chan string, error)
	CompleteBatch(ctx context.Context, prompts []string, opts CompletionOptions) ([]string, error)
	IsAvailable(ctx context.Context) bool
	Health(ctx context.Context) (CompletionHealth, error)
}

// ImageDescriber is the optional multimodal capability port consumed when
// describing images found in the page. No concrete provider adapter is
// wired in this repo.
type ImageDescriber interface {
	Describe(ctx context.Context, imageBytes []byte, opts DescribeOptions) (ImageDescription, error)
}

type DetailLevel string

const (
	DetailLow    DetailLevel = "low"
	DetailMedium DetailLevel = "medium"
	DetailHigh   DetailLevel = "high"
)

type DescribeOptions struct {
	DetailLevel DetailLevel
	MaxLength   int
	Perspective string
	Language    string
	Context     string
}

type ImageDescription struct {
	Text       string
	Confidence float64
}

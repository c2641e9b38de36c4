package reconstruct

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
	Status          string
	Model           string
	ResponseTimeMs  int64
	AvailableModels []string
}

// TextCompletion is the capability port the Reconstructor invokes for every
// strategy but None. No concrete provider adapter is wired in this repo;
// callers inject their own.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	CompleteStream(ctx context.Context, prompt string, opts CompletionOptions) (<-chan string, error)
	CompleteBatch(ctx context.Context, prompts []string, opts CompletionOptions) ([]string, error)
	IsAvailable(ctx context.Context) bool
	Health(ctx context.Context) (CompletionHealth, error)
}

package chunk

import "context"

// Embedder is the capability port Semantic chunking consumes to compute
// fixed-dimension unit-norm paragraph embeddings. No concrete provider
// adapter is wired in this repo; callers inject their own.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// CompletionOptions bounds a single TextCompletion call.
type CompletionOptions struct {
	MaxTokens        int
	Temperature      float64
	TopP             float64
	FrequencyPenalty float64
	PresencePenalty  float64
	SystemPrompt     string
}

// TextCompletion is the capability port Intelligent chunking consumes to
// propose chunk boundaries. No concrete provider adapter is wired in this
// repo; callers inject their own.
type TextCompletion interface {
	Complete(ctx context.Context, prompt string, opts CompletionOptions) (string, error)
	IsAvailable(ctx context.Context) bool
}

package pagemeta

import (
	"context"
	"fmt"
)

// augmentWithAI fills only empty fields via the TextCompletion port under the
// caller-chosen schema. HTML-originated values always take precedence;
// AI-originated values fill empty slots only. A field touched by both
// sources is recorded as SourceMerged.
func augmentWithAI(ctx context.Context, meta PageMetadata, opts Options) (PageMetadata, *MetadataError) {
	if opts.Completion == nil || !opts.Completion.IsAvailable(ctx) {
		return meta, nil
	}

	prompt := promptFor(meta, opts)
	text, err := opts.Completion.Complete(ctx, prompt, CompletionOptions{MaxTokens: 512, Temperature: 0.2})
	if err != nil {
		return meta, &MetadataError{
			Message:   fmt.Sprintf("ai augmentation failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseAIExtraction,
		}
	}

	if meta.Description.Value == "" && text != "" {
		meta.Description = SourcedField{Value: text, Source: SourceAI}
	} else if meta.Description.Value != "" && text != "" {
		meta.Description.Source = SourceMerged
	}

	return meta, nil
}

func promptFor(meta PageMetadata, opts Options) string {
	if opts.Schema == SchemaCustom && opts.CustomPrompt != "" {
		return opts.CustomPrompt
	}
	return fmt.Sprintf("Given the extracted metadata for this %s page, propose a concise description for any missing fields.", opts.Schema)
}

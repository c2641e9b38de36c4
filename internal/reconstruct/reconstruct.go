// Package reconstruct optionally rewrites, summarizes, expands, or enriches
// analyzed content through a TextCompletion capability, always falling back
// to pass-through when no strategy or capability applies or the capability
// fails mid-stage.
package reconstruct

import (
	"context"
	"time"

	"github.com/dociq/ragforge/internal/telemetry"
)

type Reconstructor struct {
	metadataSink telemetry.MetadataSink
}

func NewReconstructor(metadataSink telemetry.MetadataSink) Reconstructor {
	return Reconstructor{metadataSink: metadataSink}
}

// Reconstruct applies opts.Strategy to content. With Strategy == None, or
// no TextCompletion wired, or the capability reporting itself unavailable,
// it returns content unchanged with UsedLLM=false. A capability failure
// mid-call falls back to pass-through and records the failure in
// Enhancements rather than returning an error.
func (r *Reconstructor) Reconstruct(ctx context.Context, sourceURL string, content string, opts Options) ReconstructedContent {
	passthrough := ReconstructedContent{
		ReconstructedText: content,
		StrategyUsed:      None,
		UsedLLM:           false,
		Metrics:           Metrics{Quality: 1.0, CompressionRatio: 1.0},
	}

	if opts.Strategy == None {
		return passthrough
	}
	if opts.Completion == nil || !opts.Completion.IsAvailable(ctx) {
		passthrough.StrategyUsed = opts.Strategy
		passthrough.Enhancements = append(passthrough.Enhancements, "llm unavailable, pass-through used")
		return passthrough
	}

	prompt := promptFor(content, opts)
	text, err := opts.Completion.Complete(ctx, prompt, CompletionOptions{MaxTokens: opts.MaxTokens, Temperature: 0.3})
	if err != nil {
		r.recordError(sourceURL, ErrCauseLLMFailure, err.Error())
		passthrough.StrategyUsed = opts.Strategy
		passthrough.Enhancements = append(passthrough.Enhancements, "llm call failed, pass-through used: "+err.Error())
		return passthrough
	}

	compression := 1.0
	if len(content) > 0 {
		compression = float64(len(text)) / float64(len(content))
	}

	return ReconstructedContent{
		ReconstructedText: text,
		StrategyUsed:      opts.Strategy,
		UsedLLM:           true,
		Enhancements:      enhancementsFor(opts),
		Metrics: Metrics{
			Quality:          scoreReconstruction(content, text, opts),
			CompressionRatio: compression,
			TokensUsed:       approxTokens(text),
		},
	}
}

func enhancementsFor(opts Options) []string {
	switch opts.Strategy {
	case Enrich:
		return []string{"added sections: " + enrichSectionList(opts.EnrichSections)}
	case Rewrite:
		return []string{"rewritten in style: " + string(opts.RewriteStyle)}
	default:
		return nil
	}
}

// scoreReconstruction checks the output landed near the strategy's target
// length; a wildly over/under-shot result scores lower even though it was
// still produced by the LLM.
func scoreReconstruction(original, reconstructed string, opts Options) float64 {
	target := targetLength(len(original), opts)
	if target <= 0 {
		return 1.0
	}
	ratio := float64(len(reconstructed)) / float64(target)
	if ratio > 1 {
		ratio = 1 / ratio
	}
	return clamp01(ratio)
}

func approxTokens(text string) int {
	return len(text) / 4
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (r *Reconstructor) recordError(sourceURL string, cause ReconstructErrorCause, message string) {
	r.metadataSink.RecordError(
		time.Now(),
		"reconstruct",
		"Reconstructor.Reconstruct",
		mapReconstructErrorToMetadataCause(cause),
		message,
		[]telemetry.Attribute{
			telemetry.NewAttr(telemetry.AttrURL, sourceURL),
		},
	)
}

package pipeline

import (
	"fmt"

	"github.com/dociq/ragforge/pkg/failure"
)

type PipelineErrorCause string

const (
	ErrCauseNoSeedURLs     PipelineErrorCause = "no seed urls"
	ErrCauseInvalidOptions PipelineErrorCause = "invalid options"
)

// PipelineError reports a run-level failure that never reached a specific
// URL's stage chain: bad Options, an empty seed list. Per-URL stage
// failures stay wrapped in their own package's ClassifiedError and are
// never re-wrapped here; they surface as URLResult.Err and an
// EventURLFailed.
type PipelineError struct {
	Message string
	Cause   PipelineErrorCause
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error: %s: %s", e.Cause, e.Message)
}

func (e *PipelineError) Severity() failure.Severity {
	return failure.SeverityFatal
}

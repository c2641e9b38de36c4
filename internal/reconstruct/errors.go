package reconstruct

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
)

type ReconstructErrorCause string

const (
	ErrCauseLLMUnavailable ReconstructErrorCause = "llm unavailable"
	ErrCauseLLMFailure     ReconstructErrorCause = "llm call failed"
)

// reconstructError is recorded in Enhancements and via telemetry; it never
// aborts the stage — the caller always gets a pass-through result back.
type reconstructError struct {
	cause   ReconstructErrorCause
	message string
}

func (e *reconstructError) Error() string {
	return fmt.Sprintf("reconstruct: %s: %s", e.cause, e.message)
}

func mapReconstructErrorToMetadataCause(cause ReconstructErrorCause) telemetry.ErrorCause {
	switch cause {
	case ErrCauseLLMUnavailable, ErrCauseLLMFailure:
		return telemetry.CauseNetworkFailure
	default:
		return telemetry.CauseUnknown
	}
}

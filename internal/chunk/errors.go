package chunk

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
)

type ChunkErrorCause string

const (
	ErrCauseNoContent       ChunkErrorCause = "no content"
	ErrCauseCapabilityError ChunkErrorCause = "capability error"
)

type ChunkError struct {
	Message string
	Cause   ChunkErrorCause
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("chunk error: %s", e.Message)
}

func mapChunkErrorToMetadataCause(cause ChunkErrorCause) telemetry.ErrorCause {
	switch cause {
	case ErrCauseNoContent:
		return telemetry.CauseContentInvalid
	case ErrCauseCapabilityError:
		return telemetry.CauseNetworkFailure
	default:
		return telemetry.CauseUnknown
	}
}

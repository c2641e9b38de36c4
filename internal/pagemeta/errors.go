package pagemeta

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
)

type MetadataErrorCause string

const (
	ErrCauseNoDocument   MetadataErrorCause = "no document"
	ErrCauseMalformedLD  MetadataErrorCause = "malformed json-ld"
	ErrCauseAIExtraction MetadataErrorCause = "ai extraction failed"
)

type MetadataError struct {
	Message   string
	Retryable bool
	Cause     MetadataErrorCause
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("pagemeta error: %s", e.Cause)
}

func (e *MetadataError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapMetadataErrorToMetadataCause(err *MetadataError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseNoDocument, ErrCauseMalformedLD:
		return telemetry.CauseContentInvalid
	case ErrCauseAIExtraction:
		return telemetry.CauseNetworkFailure
	default:
		return telemetry.CauseUnknown
	}
}

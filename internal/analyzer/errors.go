package analyzer

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
)

type AnalysisErrorCause string

const (
	ErrCauseEmptyContent  AnalysisErrorCause = "empty content"
	ErrCauseUnparseableMD AnalysisErrorCause = "unparseable markdown"
)

type AnalysisError struct {
	Message   string
	Retryable bool
	Cause     AnalysisErrorCause
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis error: %s", e.Message)
}

func (e *AnalysisError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapAnalysisErrorToMetadataCause(err *AnalysisError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseEmptyContent, ErrCauseUnparseableMD:
		return telemetry.CauseContentInvalid
	default:
		return telemetry.CauseUnknown
	}
}

package fetcher

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseTimeout               = "timeout"
	ErrCauseNetworkFailure        = "network issues"
	ErrCauseReadResponseBodyError = "failed to read response body"
	ErrCauseContentTypeInvalid    = "non-HTML content"
	ErrCauseRedirectLimitExceeded = "reached redirect limit"
	ErrCauseRequestPageForbidden  = "forbidden"
	ErrCauseRequestTooMany        = "too many requests"
	ErrCauseRequest5xx            = "5xx"
	ErrCauseRepeated403           = "repeated 403s"
)

type FetchError struct {
	Message   string
	Retryable bool
	Cause     FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetcher error: %s", e.Cause)
}

func (e *FetchError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *FetchError) IsRetryable() bool {
	return e.Retryable
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical telemetry.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseTimeout:
		return telemetry.CauseNetworkFailure
	case ErrCauseRequestTooMany:
		return telemetry.CausePolicyDisallow
	case ErrCauseRepeated403:
		return telemetry.CausePolicyDisallow
	default:
		return telemetry.CauseUnknown
	}
}

package robots

import (
	"fmt"

	"github.com/dociq/ragforge/pkg/failure"
	"github.com/dociq/ragforge/internal/telemetry"
)

type RobotsErrorCause string

const (
	// ErrCauseRepeatedFetchFailure = "repeated fetch failure"
	ErrCauseDisallowRoot         = "root disallowed to be crawled"
	ErrCauseInvalidRobotsUrl     = "invalid robots.txt URL"
	ErrCausePreFetchFailure      = "failed before making fetch"
	ErrCauseHttpFetchFailure     = "failed to fetch"
	ErrCauseHttpTooManyRequests  = "too many requests"
	ErrCauseHttpTooManyRedirects = "too many redirects"
	ErrCauseHttpServerError      = "http server error"
	ErrCauseHttpUnexpectedStatus = "unexpected http status"
	ErrCauseParseError           = "failed to parse robots.txt"
)

type RobotsError struct {
	Message   string
	Retryable bool
	Cause     RobotsErrorCause
}

func (e *RobotsError) Error() string {
	return fmt.Sprintf("robots error: %s", e.Cause)
}

func (e *RobotsError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapRobotsErrorToMetadataCause maps robots-local error semantics
// to the canonical telemetry.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRobotsErrorToMetadataCause(err *RobotsError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseDisallowRoot:
		return telemetry.CausePolicyDisallow
	case ErrCauseInvalidRobotsUrl:
		return telemetry.CauseInvariantViolation
	case ErrCausePreFetchFailure:
		return telemetry.CauseUnknown
	case ErrCauseHttpFetchFailure:
		return telemetry.CauseNetworkFailure
	case ErrCauseHttpTooManyRequests:
		return telemetry.CauseNetworkFailure
	case ErrCauseHttpTooManyRedirects:
		return telemetry.CauseNetworkFailure
	case ErrCauseHttpServerError:
		return telemetry.CauseNetworkFailure
	case ErrCauseHttpUnexpectedStatus:
		return telemetry.CauseNetworkFailure
	case ErrCauseParseError:
		return telemetry.CauseContentInvalid
	default:
		return telemetry.CauseUnknown
	}
}

package htmlclean

import (
	"fmt"

	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
)

type CleanErrorCause string

const (
	ErrCauseNotHTML             CleanErrorCause = "not html"
	ErrCauseNoContent           CleanErrorCause = "no content"
	ErrCauseUnparseableHTML     CleanErrorCause = "unparseable html"
	ErrCauseCompetingRoots      CleanErrorCause = "competing roots"
	ErrCauseNoStructuralAnchor  CleanErrorCause = "no structural anchor"
	ErrCauseMultipleH1NoRoot    CleanErrorCause = "multiple h1 without root"
	ErrCauseImpliedMultipleDocs CleanErrorCause = "implied multiple documents"
	ErrCauseAmbiguousDOM        CleanErrorCause = "ambiguous dom"
)

type CleanError struct {
	Message   string
	Retryable bool
	Cause     CleanErrorCause
}

func (e *CleanError) Error() string {
	return fmt.Sprintf("htmlclean error: %s", e.Cause)
}

func (e *CleanError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapReasonToErrorCause maps an UnrepairabilityReason (repair.go) to the
// package's own CleanErrorCause.
func mapReasonToErrorCause(reason UnrepairabilityReason) CleanErrorCause {
	switch reason {
	case ReasonCompetingRoots:
		return ErrCauseCompetingRoots
	case ReasonNoStructuralAnchor:
		return ErrCauseNoStructuralAnchor
	case ReasonMultipleH1NoRoot:
		return ErrCauseMultipleH1NoRoot
	case ReasonImpliedMultipleDocs:
		return ErrCauseImpliedMultipleDocs
	case ReasonAmbiguousDOM:
		return ErrCauseAmbiguousDOM
	default:
		return ErrCauseUnparseableHTML
	}
}

// mapCleanErrorToMetadataCause maps htmlclean-local error semantics to the
// canonical telemetry.ErrorCause table. Observational only.
func mapCleanErrorToMetadataCause(err *CleanError) telemetry.ErrorCause {
	switch err.Cause {
	case ErrCauseNoContent, ErrCauseNotHTML, ErrCauseUnparseableHTML:
		return telemetry.CauseContentInvalid
	case ErrCauseCompetingRoots, ErrCauseNoStructuralAnchor, ErrCauseMultipleH1NoRoot,
		ErrCauseImpliedMultipleDocs, ErrCauseAmbiguousDOM:
		return telemetry.CauseContentInvalid
	default:
		return telemetry.CauseUnknown
	}
}

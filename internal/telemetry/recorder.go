package telemetry

/*
Metadata Collected
- Fetch timestamps
- HTTP status codes
- Content hashes
- Crawl depth

Logging Goals
- Debuggable crawl behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Hashes
- Status codes
- Durations
- Identifiers (page ID, crawl ID)
*/

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Recorder is the zerolog-backed MetadataSink/CrawlFinalizer implementation.
// It never returns an error and never influences control flow; every method
// is a pure side-effecting log emission.
type Recorder struct {
	runName string
	log     zerolog.Logger
}

// NewRecorder constructs a Recorder tagged with runName, which appears on
// every emitted log line as "run".
func NewRecorder(runName string) *Recorder {
	return &Recorder{
		runName: runName,
		log:     zerolog.New(os.Stderr).With().Timestamp().Str("run", runName).Logger(),
	}
}

func (r *Recorder) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int) {
	ev := FetchEvent{
		fetchUrl:    fetchUrl,
		httpStatus:  httpStatus,
		duration:    duration,
		contentType: contentType,
		retryCount:  retryCount,
		crawlDepth:  crawlDepth,
	}
	r.log.Info().
		Str("event", "fetch").
		Str("url", ev.fetchUrl).
		Int("http_status", ev.httpStatus).
		Dur("duration", ev.duration).
		Str("content_type", ev.contentType).
		Int("retry_count", ev.retryCount).
		Int("crawl_depth", ev.crawlDepth).
		Msg("fetch completed")
}

func (r *Recorder) RecordAssetFetch(fetchUrl string, httpStatus int, duration time.Duration, retryCount int) {
	ev := FetchEvent{
		fetchUrl:   fetchUrl,
		httpStatus: httpStatus,
		duration:   duration,
		retryCount: retryCount,
	}
	r.log.Info().
		Str("event", "asset_fetch").
		Str("url", ev.fetchUrl).
		Int("http_status", ev.httpStatus).
		Dur("duration", ev.duration).
		Int("retry_count", ev.retryCount).
		Msg("asset fetch completed")
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	rec := ArtifactRecord{paths: path}
	event := r.log.Info().
		Str("event", "artifact").
		Str("kind", kind.String()).
		Str("path", rec.paths)
	for _, a := range attrs {
		event = event.Str(string(a.Key), a.Value)
	}
	event.Msg("artifact written")
}

func (r *Recorder) RecordError(at time.Time, packageName string, action string, cause ErrorCause, errorString string, attrs []Attribute) {
	rec := ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  at,
		attrs:       attrs,
	}
	event := r.log.Warn().
		Str("event", "error").
		Time("observed_at", rec.observedAt).
		Str("package", rec.packageName).
		Str("action", rec.action).
		Str("cause", causeString(rec.cause)).
		Str("error", rec.errorString)
	for _, a := range rec.attrs {
		event = event.Str(string(a.Key), a.Value)
	}
	event.Msg("recorded error")
}

func (r *Recorder) RecordFinalCrawlStats(totalPages, totalErrors, totalAssets int, duration time.Duration) {
	stats := crawlStats{
		totalPages:  totalPages,
		totalErrors: totalErrors,
		totalAssets: totalAssets,
		durationMs:  duration.Milliseconds(),
	}
	r.log.Info().
		Str("event", "crawl_finished").
		Int("total_pages", stats.totalPages).
		Int("total_errors", stats.totalErrors).
		Int("total_assets", stats.totalAssets).
		Int64("duration_ms", stats.durationMs).
		Msg("crawl finished")
}

func causeString(c ErrorCause) string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CausePolicyDisallow:
		return "policy_disallow"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	case CauseRetryFailure:
		return "retry_failure"
	default:
		return "unknown"
	}
}

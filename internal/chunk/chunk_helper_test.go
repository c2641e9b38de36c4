package chunk_test

import (
	"time"

	"github.com/dociq/ragforge/internal/telemetry"
)

type stubSink struct {
	errCount int
}

func (s *stubSink) RecordFetch(fetchUrl string, httpStatus int, duration time.Duration, contentType string, retryCount int, crawlDepth int) {
}

func (s *stubSink) RecordAssetFetch(fetchUrl string, httpStatus int, duration time.Duration, retryCount int) {
}

func (s *stubSink) RecordArtifact(kind telemetry.ArtifactKind, path string, attrs []telemetry.Attribute) {
}

func (s *stubSink) RecordError(at time.Time, packageName string, action string, cause telemetry.ErrorCause, errorString string, attrs []telemetry.Attribute) {
	s.errCount++
}

package pipeline

import (
	"time"

	"github.com/dociq/ragforge/internal/chunk"
	"github.com/dociq/ragforge/internal/reconstruct"
)

/*
Responsibilities
- Coordinate the Extract -> Analyze -> Reconstruct -> Chunk stage order for
  every admitted URL
- Enforce global limits (pages, depth) through the frontier
- Bound overall fetch concurrency with a fixed-size worker pool
- Aggregate per-URL results in memory; writing them anywhere is outside
  this package's job
*/

// Options bounds a Run call: everything the orchestrator and its stages
// need that isn't wired in as a capability.
type Options struct {
	MaxDepth          int
	MaxPages          int
	Concurrency       int
	BaseDelay         time.Duration
	Jitter            time.Duration
	RandomSeed        int64
	MaxAttempt        int
	BackoffInitial    time.Duration
	BackoffMultiplier float64
	BackoffMax        time.Duration
	Timeout           time.Duration
	UserAgent         string
	AllowedHosts      map[string]struct{}
	AllowedPathPrefix []string

	OnlyMainContent      bool
	LinkDensityThreshold float64
	BodySpecificityBias  float64

	ReconstructStrategy reconstruct.Strategy

	ChunkStrategy string // "auto" or one of chunk.StrategyName
	ChunkMaxSize  int
	ChunkMinSize  int
	ChunkOverlap  int
}

// StageName identifies which pipeline stage produced an Event or failed.
type StageName string

const (
	StageFetch       StageName = "fetch"
	StageClean       StageName = "clean"
	StageMetadata    StageName = "metadata"
	StageAnalyze     StageName = "analyze"
	StageReconstruct StageName = "reconstruct"
	StageChunk       StageName = "chunk"
)

// EventKind is a closed set of lifecycle events a Run emits on its channel.
type EventKind string

const (
	EventStarted        EventKind = "started"
	EventURLProcessing   EventKind = "url_processing"
	EventURLDone         EventKind = "url_done"
	EventURLFailed       EventKind = "url_failed"
	EventChunkingStarted EventKind = "chunking_started"
	EventChunkGenerated  EventKind = "chunk_generated"
	EventChunkingDone    EventKind = "chunking_done"
	EventCompleted       EventKind = "completed"
	EventFailed          EventKind = "failed"
)

// Event is one tagged lifecycle notification emitted on the Run channel.
// Consumers switch on Kind; the other fields are populated only where they
// make sense for that Kind.
type Event struct {
	Kind      EventKind
	At        time.Time
	URL       string
	Depth     int
	Stage     StageName
	Err       error
	Chunk     *chunk.Chunk
	ChunkSeq  int
	ChunkOf   int
}

// URLResult is the in-memory outcome of running one URL through every
// stage. There is no storage/indexing step downstream of this: callers
// that need the chunks persisted or embedded own that themselves.
type URLResult struct {
	URL    string
	Depth  int
	Chunks []chunk.Chunk
	Err    error
}

// Result aggregates every URLResult produced during a Run, plus terminal
// crawl statistics.
type Result struct {
	URLResults  []URLResult
	TotalPages  int
	TotalErrors int
	Duration    time.Duration
}

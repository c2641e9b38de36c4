// Package pipeline is the sole control-plane authority of a crawl: the
// Pipeline Orchestrator. It is the only component allowed to decide
// whether a URL may enter the crawl frontier, and the only authority on
// retry, continuation, and abort. Downstream stages detect and classify
// failure but never decide what happens next.
package pipeline

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dociq/ragforge/internal/analyzer"
	"github.com/dociq/ragforge/internal/chunk"
	"github.com/dociq/ragforge/internal/config"
	"github.com/dociq/ragforge/internal/fetcher"
	"github.com/dociq/ragforge/internal/frontier"
	"github.com/dociq/ragforge/internal/htmlclean"
	"github.com/dociq/ragforge/internal/mdconvert"
	"github.com/dociq/ragforge/internal/pagemeta"
	"github.com/dociq/ragforge/internal/reconstruct"
	"github.com/dociq/ragforge/internal/robots"
	"github.com/dociq/ragforge/internal/telemetry"
	"github.com/dociq/ragforge/pkg/failure"
	"github.com/dociq/ragforge/pkg/limiter"
	"github.com/dociq/ragforge/pkg/resilience"
	"github.com/dociq/ragforge/pkg/retry"
	"github.com/dociq/ragforge/pkg/timeutil"
)

// drainPollInterval is how often an idle worker rechecks the frontier
// while other workers may still be discovering new URLs for it to drain.
const drainPollInterval = 2 * time.Millisecond

// Pipeline wires every stage (Fetcher, HTML Cleaner, Markdown Converter,
// Metadata Extractor, Analyzer, Reconstructor, Chunker) behind the single
// admission choke point and worker pool that drive a crawl.
//
// No other code path may call frontier.Submit: only Pipeline imports
// frontier, and only Pipeline constructs CrawlAdmissionCandidate. Stage
// implementations never see frontier types.
type Pipeline struct {
	metadataSink      telemetry.MetadataSink
	crawlFinalizer    telemetry.CrawlFinalizer
	robot             robots.Robot
	frontier          frontier.CrawlFrontier
	htmlFetcher       fetcher.Fetcher
	cleaner           htmlclean.Cleaner
	converter         mdconvert.ConvertRule
	metadataExtractor pagemeta.Extractor
	analyzer          analyzer.Analyzer
	reconstructor     reconstruct.Reconstructor
	chunker           chunk.Chunker
	rateLimiter       limiter.RateLimiter
	sleeper           timeutil.Sleeper
}

// NewPipeline wires the default production stack: a zerolog-backed
// recorder, cached per-host robots.txt evaluation, a real HTTP fetcher,
// and the Extract->Analyze->Reconstruct->Chunk chain built from opts.
func NewPipeline(opts Options) Pipeline {
	recorder := telemetry.NewRecorder("ragforge-pipeline")
	cachedRobot := robots.NewCachedRobot(recorder)
	htmlFetcher := fetcher.NewHtmlFetcher(recorder)
	cleaner := htmlclean.NewCleaner(recorder, htmlclean.Options{
		OnlyMainContent:      opts.OnlyMainContent,
		LinkDensityThreshold: opts.LinkDensityThreshold,
		BodySpecificityBias:  opts.BodySpecificityBias,
	})
	converter := mdconvert.NewRule(recorder)
	metadataExtractor := pagemeta.NewExtractor(recorder)
	contentAnalyzer := analyzer.NewAnalyzer(recorder, analyzer.DefaultOptions())
	reconstructor := reconstruct.NewReconstructor(recorder)
	chunker := chunk.NewChunker(recorder)
	rateLimiter := limiter.NewConcurrentRateLimiter()
	sleeper := timeutil.NewRealSleeper()

	return Pipeline{
		metadataSink:      recorder,
		crawlFinalizer:    recorder,
		robot:             &cachedRobot,
		frontier:          frontier.NewCrawlFrontier(),
		htmlFetcher:       &htmlFetcher,
		cleaner:           cleaner,
		converter:         converter,
		metadataExtractor: metadataExtractor,
		analyzer:          contentAnalyzer,
		reconstructor:     reconstructor,
		chunker:           chunker,
		rateLimiter:       rateLimiter,
		sleeper:           sleeper,
	}
}

// NewPipelineWithDeps builds a Pipeline from injected dependencies, for
// tests that need mock capabilities in place of the real stack.
func NewPipelineWithDeps(
	metadataSink telemetry.MetadataSink,
	crawlFinalizer telemetry.CrawlFinalizer,
	robot robots.Robot,
	htmlFetcher fetcher.Fetcher,
	cleaner htmlclean.Cleaner,
	converter mdconvert.ConvertRule,
	metadataExtractor pagemeta.Extractor,
	contentAnalyzer analyzer.Analyzer,
	reconstructor reconstruct.Reconstructor,
	chunker chunk.Chunker,
	rateLimiter limiter.RateLimiter,
	sleeper timeutil.Sleeper,
) Pipeline {
	return Pipeline{
		metadataSink:      metadataSink,
		crawlFinalizer:    crawlFinalizer,
		robot:             robot,
		frontier:          frontier.NewCrawlFrontier(),
		htmlFetcher:       htmlFetcher,
		cleaner:           cleaner,
		converter:         converter,
		metadataExtractor: metadataExtractor,
		analyzer:          contentAnalyzer,
		reconstructor:     reconstructor,
		chunker:           chunker,
		rateLimiter:       rateLimiter,
		sleeper:           sleeper,
	}
}

// runState carries the mutable, cross-worker bookkeeping for a single Run
// call: how many admitted-but-unprocessed tokens remain, the aggregated
// per-URL results, and the first fatal failure observed (if any).
type runState struct {
	pending     int64
	mu          sync.Mutex
	results     []URLResult
	totalErrors int
	fatal       failure.ClassifiedError
	fatalOnce   sync.Once
	events      chan Event
	fetchPolicy *resilience.Policy[fetcher.FetchResult]
}

func (rs *runState) emit(e Event) {
	select {
	case rs.events <- e:
	default:
		// A slow/absent consumer must never stall the crawl; the channel
		// is best-effort progress reporting, not a delivery guarantee.
		go func() { rs.events <- e }()
	}
}

func (rs *runState) recordResult(r URLResult) {
	rs.mu.Lock()
	rs.results = append(rs.results, r)
	if r.Err != nil {
		rs.totalErrors++
	}
	rs.mu.Unlock()
}

func (rs *runState) recordFatal(err failure.ClassifiedError) {
	rs.fatalOnce.Do(func() {
		rs.fatal = err
	})
}

// Run drives a full crawl from seedURLs to completion: admission,
// fetch/clean/convert/extract/analyze/reconstruct/chunk for every admitted
// URL, bounded by opts.Concurrency workers. It returns a channel of
// lifecycle Events, closed once every admitted URL has either finished or
// the run has aborted on a fatal error, and a second channel that receives
// exactly one aggregated Result right before the Events channel closes.
func (p *Pipeline) Run(ctx context.Context, seedURLs []url.URL, opts Options) (<-chan Event, <-chan Result, error) {
	if len(seedURLs) == 0 {
		return nil, nil, &PipelineError{Message: "at least one seed URL is required", Cause: ErrCauseNoSeedURLs}
	}

	cfg, err := buildFrontierConfig(seedURLs, opts)
	if err != nil {
		return nil, nil, err
	}

	fetchPolicy, err := newFetchPolicy(opts)
	if err != nil {
		return nil, nil, &PipelineError{Message: err.Error(), Cause: ErrCauseInvalidOptions}
	}

	p.robot.Init(opts.UserAgent)
	p.frontier.Init(cfg)
	p.rateLimiter.SetBaseDelay(opts.BaseDelay)
	p.rateLimiter.SetJitter(opts.Jitter)
	p.rateLimiter.SetRandomSeed(opts.RandomSeed)

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	runCtx, cancel := context.WithCancel(ctx)

	rs := &runState{events: make(chan Event, concurrency*4), fetchPolicy: fetchPolicy}
	start := time.Now()

	rs.emit(Event{Kind: EventStarted, At: start})

	for _, seed := range seedURLs {
		p.submit(seed, frontier.SourceSeed, 0, rs)
	}

	var wg sync.WaitGroup
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			p.worker(runCtx, cancel, opts, rs)
		}()
	}

	resultCh := make(chan Result, 1)

	go func() {
		wg.Wait()
		cancel()

		kind := EventCompleted
		if rs.fatal != nil {
			kind = EventFailed
		}
		rs.emit(Event{Kind: kind, At: time.Now(), Err: errOrNil(rs.fatal)})

		rs.mu.Lock()
		resultCh <- Result{
			URLResults:  rs.results,
			TotalPages:  p.frontier.VisitedCount(),
			TotalErrors: rs.totalErrors,
			Duration:    time.Since(start),
		}
		rs.mu.Unlock()
		close(resultCh)
		close(rs.events)
	}()

	return rs.events, resultCh, nil
}

// worker repeatedly dequeues the next BFS-ordered token and runs it through
// every stage. It exits once the frontier is empty AND no outstanding
// token could still produce new work — `pending` is the single source of
// truth for that, since frontier.Dequeue alone can't distinguish
// "temporarily empty" from "permanently drained" under concurrency.
func (p *Pipeline) worker(ctx context.Context, cancel context.CancelFunc, opts Options, rs *runState) {
	for {
		if ctx.Err() != nil {
			return
		}

		token, ok := p.frontier.Dequeue()
		if !ok {
			if atomic.LoadInt64(&rs.pending) == 0 {
				return
			}
			time.Sleep(drainPollInterval)
			continue
		}

		p.processToken(ctx, cancel, token, opts, rs)
		atomic.AddInt64(&rs.pending, -1)
	}
}

// submit is the single admission choke point. It returns whether the
// candidate was actually admitted, so callers can keep an accurate count
// of outstanding work — a robots-disallowed or frontier-rejected
// (duplicate/over-limit) candidate must never be counted as pending.
func (p *Pipeline) submit(target url.URL, source frontier.SourceContext, depth int, rs *runState) bool {
	decision, robotsErr := p.robot.Decide(target)
	if robotsErr != nil {
		p.recordRobotsErrorAndBackoff(robotsErr, target)
		return false
	}

	p.rateLimiter.ResetBackoff(target.Host)
	if decision.CrawlDelay > 0 {
		p.rateLimiter.SetCrawlDelay(target.Host, decision.CrawlDelay)
	}

	if !decision.Allowed {
		return false
	}

	candidate := frontier.NewCrawlAdmissionCandidate(
		decision.Url,
		source,
		frontier.NewDiscoveryMetadata(depth, nil),
	)

	if !p.frontier.Submit(candidate) {
		return false
	}
	atomic.AddInt64(&rs.pending, 1)
	return true
}

func (p *Pipeline) recordRobotsErrorAndBackoff(robotsErr *robots.RobotsError, target url.URL) {
	if robotsErr.Cause == robots.ErrCauseHttpTooManyRequests || robotsErr.Cause == robots.ErrCauseHttpServerError {
		p.metadataSink.RecordError(
			time.Now(),
			"pipeline",
			"submit",
			telemetry.CauseNetworkFailure,
			robotsErr.Error(),
			[]telemetry.Attribute{
				telemetry.NewAttr(telemetry.AttrURL, target.String()),
				telemetry.NewAttr(telemetry.AttrHost, target.Host),
				telemetry.NewAttr(telemetry.AttrPath, target.Path),
			},
		)
		p.rateLimiter.Backoff(target.Host)
	}
}

// processToken runs the full E->F->G->H->I->J stage chain for one token.
// A fatal stage error aborts the whole run (via cancel); a recoverable one
// terminates only this URL and is recorded on the result.
func (p *Pipeline) processToken(ctx context.Context, cancel context.CancelFunc, token frontier.CrawlToken, opts Options, rs *runState) {
	target := token.URL()
	urlStr := target.String()

	rs.emit(Event{Kind: EventURLProcessing, At: time.Now(), URL: urlStr, Depth: token.Depth()})

	delay := p.rateLimiter.ResolveDelay(target.Host)
	p.sleeper.Sleep(delay)

	fail := func(stage StageName, err error) {
		rs.emit(Event{Kind: EventURLFailed, At: time.Now(), URL: urlStr, Depth: token.Depth(), Stage: stage, Err: err})
		rs.recordResult(URLResult{URL: urlStr, Depth: token.Depth(), Err: err})
	}
	abort := func(stage StageName, err failure.ClassifiedError) {
		rs.recordFatal(err)
		fail(stage, err)
		cancel()
	}

	fetchParam := fetcher.NewFetchParam(target, opts.UserAgent)
	noRetry := singleAttemptRetryParam(opts)
	fetchResult, ferr := rs.fetchPolicy.Execute(ctx, func(opCtx context.Context) (fetcher.FetchResult, failure.ClassifiedError) {
		return p.htmlFetcher.Fetch(opCtx, token.Depth(), fetchParam, noRetry)
	})
	if ferr != nil {
		if ferr.Severity() == failure.SeverityFatal {
			abort(StageFetch, ferr)
		} else {
			fail(StageFetch, ferr)
		}
		return
	}

	cleanResult, cerr := p.cleaner.Clean(fetchResult.URL(), fetchResult.Body())
	if cerr != nil {
		if cerr.Severity() == failure.SeverityFatal {
			abort(StageClean, cerr)
		} else {
			fail(StageClean, cerr)
		}
		return
	}

	p.discoverAndSubmit(cleanResult, token.Depth(), opts, rs)

	conversionResult, mderr := p.converter.Convert(cleanResult)
	if mderr != nil {
		if mderr.Severity() == failure.SeverityFatal {
			abort(StageClean, mderr)
		} else {
			fail(StageClean, mderr)
		}
		return
	}

	pageMeta, meterr := p.metadataExtractor.Extract(ctx, target, cleanResult.ContentNode, pagemeta.Options{})
	if meterr != nil {
		if meterr.Severity() == failure.SeverityFatal {
			abort(StageMetadata, meterr)
		} else {
			fail(StageMetadata, meterr)
		}
		return
	}

	markdown := string(conversionResult.GetMarkdownContent())
	extracted := analyzer.ExtractedContent{
		URL:         urlStr,
		Title:       pageMeta.Title.Value,
		MainContent: markdown,
		RawMarkdown: markdown,
		FitMarkdown: markdown,
		WordCount:   len(strings.Fields(markdown)),
		ImageURLs:   linkRefsOfKind(conversionResult.GetLinkRefs(), mdconvert.KindImage),
		LinkURLs:    linkRefsOfKind(conversionResult.GetLinkRefs(), mdconvert.KindNavigation),
	}

	analyzed, aerr := p.analyzer.Analyze(extracted)
	if aerr != nil {
		if aerr.Severity() == failure.SeverityFatal {
			abort(StageAnalyze, aerr)
		} else {
			fail(StageAnalyze, aerr)
		}
		return
	}

	reconstructed := p.reconstructor.Reconstruct(ctx, urlStr, analyzed.FitMarkdown, reconstructOptionsFor(opts))

	chunkInput := chunk.ContentInput{
		SourceURL: urlStr,
		Text:      reconstructed.ReconstructedText,
		Sections:  analyzed.Sections,
	}
	chunkOpts := chunkOptionsFor(opts)

	rs.emit(Event{Kind: EventChunkingStarted, At: time.Now(), URL: urlStr, Depth: token.Depth()})

	var chunks []chunk.Chunk
	var cherr error
	if opts.ChunkStrategy == "" || opts.ChunkStrategy == "auto" {
		chunks, cherr = p.chunker.ChunkAuto(ctx, chunkInput, chunkOpts)
	} else {
		chunks, cherr = p.chunker.ChunkWithStrategy(ctx, chunk.StrategyName(opts.ChunkStrategy), chunkInput, chunkOpts)
	}
	if cherr != nil {
		fail(StageChunk, cherr)
		return
	}

	for i := range chunks {
		rs.emit(Event{
			Kind: EventChunkGenerated, At: time.Now(), URL: urlStr, Depth: token.Depth(),
			Chunk: &chunks[i], ChunkSeq: i, ChunkOf: len(chunks),
		})
	}
	rs.emit(Event{Kind: EventChunkingDone, At: time.Now(), URL: urlStr, Depth: token.Depth()})

	rs.recordResult(URLResult{URL: urlStr, Depth: token.Depth(), Chunks: chunks})
	rs.emit(Event{Kind: EventURLDone, At: time.Now(), URL: urlStr, Depth: token.Depth()})
}

// discoverAndSubmit filters cleanResult's discovered links to the allowed
// hosts/path prefixes and submits each surviving one for admission at
// depth+1. Resolution is already done by htmlclean.Clean; no urlutil
// resolve/filter helper is needed here.
func (p *Pipeline) discoverAndSubmit(cleanResult htmlclean.CleanResult, depth int, opts Options, rs *runState) {
	for _, discovered := range cleanResult.DiscoveredURLs {
		resolved, err := url.Parse(discovered.Resolved)
		if err != nil || resolved.Host == "" {
			continue
		}
		if !isAllowedHost(resolved.Host, opts.AllowedHosts) {
			continue
		}
		if !isAllowedPath(resolved.Path, opts.AllowedPathPrefix) {
			continue
		}
		p.submit(*resolved, frontier.SourceCrawl, depth+1, rs)
	}
}

func isAllowedHost(host string, allowed map[string]struct{}) bool {
	if len(allowed) == 0 {
		return true
	}
	_, ok := allowed[host]
	return ok
}

func isAllowedPath(path string, prefixes []string) bool {
	if len(prefixes) == 0 {
		return true
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func linkRefsOfKind(refs []mdconvert.LinkRef, kind mdconvert.LinkKind) []string {
	var out []string
	for _, r := range refs {
		if r.GetKind() == kind {
			out = append(out, r.GetRaw())
		}
	}
	return out
}

func retryParamFor(opts Options) retry.RetryParam {
	return retry.NewRetryParam(
		opts.BaseDelay,
		opts.Jitter,
		opts.RandomSeed,
		opts.MaxAttempt,
		timeutil.NewBackoffParam(opts.BackoffInitial, opts.BackoffMultiplier, opts.BackoffMax),
	)
}

func reconstructOptionsFor(opts Options) reconstruct.Options {
	ropts := reconstruct.DefaultOptions()
	ropts.Strategy = opts.ReconstructStrategy
	return ropts
}

func chunkOptionsFor(opts Options) chunk.Options {
	copts := chunk.DefaultOptions()
	if opts.ChunkMaxSize > 0 {
		copts.MaxSize = opts.ChunkMaxSize
	}
	if opts.ChunkMinSize > 0 {
		copts.MinSize = opts.ChunkMinSize
	}
	if opts.ChunkOverlap > 0 {
		copts.Overlap = opts.ChunkOverlap
	}
	return copts
}

func buildFrontierConfig(seedURLs []url.URL, opts Options) (config.Config, error) {
	builder := config.WithDefault(seedURLs).
		WithMaxDepth(opts.MaxDepth).
		WithMaxPages(opts.MaxPages)
	if len(opts.AllowedHosts) > 0 {
		builder = builder.WithAllowedHosts(opts.AllowedHosts)
	}
	cfg, err := builder.Build()
	if err != nil {
		return config.Config{}, &PipelineError{Message: err.Error(), Cause: ErrCauseInvalidOptions}
	}
	return cfg, nil
}

func errOrNil(err failure.ClassifiedError) error {
	if err == nil {
		return nil
	}
	return err
}

package fetcher

import (
	"context"
	"net/url"
	"regexp"
	"time"
)

/*
Dynamic fetch mode

Static mode (HtmlFetcher.Fetch's default path) is a plain HTTP GET. Some
documentation sites render their content client-side and return a near-empty
shell on the initial GET; those need a real browser to produce usable HTML.
This package never drives a browser itself — that's a Non-goal — it only
defines the capability port (BrowserRenderer) and the heuristic that decides
when a fetch looks like it needs one.
*/

// FetchMode selects whether Fetch should trust the static GET body as-is,
// always re-render through a BrowserRenderer, or decide per-response via
// looksLikeSPA.
type FetchMode string

const (
	FetchModeStatic  FetchMode = "static"
	FetchModeDynamic FetchMode = "dynamic"
	FetchModeAuto    FetchMode = "auto"
)

// RenderOptions parameterizes a BrowserRenderer call.
type RenderOptions struct {
	UserAgent string
	Timeout   time.Duration
}

// BrowserRenderer is the capability port for headless-browser rendering.
// No implementation ships in this package; callers that need Dynamic mode
// wire in their own (e.g. a chromedp or Playwright-backed adapter).
type BrowserRenderer interface {
	Render(ctx context.Context, target url.URL, opts RenderOptions) (string, error)
}

var scriptTagPattern = regexp.MustCompile(`(?i)<script\b`)

// spaBodyByteThreshold and spaScriptTagThreshold are the heuristic's two
// knobs: a response this small carrying this many script tags is far more
// likely to be a client-side-rendering shell than a real documentation page.
const (
	spaBodyByteThreshold  = 2048
	spaScriptTagThreshold = 4
)

// looksLikeSPA reports whether body looks like a client-rendered shell
// rather than a fully server-rendered page: small total size paired with a
// disproportionate number of script tags. It never inspects script content
// or executes anything — a syntactic heuristic only.
func looksLikeSPA(body []byte) bool {
	if len(body) == 0 || len(body) > spaBodyByteThreshold {
		return false
	}
	return len(scriptTagPattern.FindAll(body, -1)) >= spaScriptTagThreshold
}

package htmlclean

import "golang.org/x/net/html"

// Options configures a Clean call.
//
// OnlyMainContent selects the default mode: pick the best candidate content
// region via semantic containers, known documentation-framework selectors,
// then a text-density fallback, in that priority order. When false, Keep-all
// mode runs: only the noise selectors are stripped and no content region is
// selected; the whole document still goes through structural repair and
// link resolution.
type Options struct {
	OnlyMainContent bool

	// ContentSelectors are tried, in order, ahead of the built-in known-doc
	// selectors during Layer 2 of OnlyMainContent mode.
	ContentSelectors []string

	// KeepSelectors exempts matching elements from noise removal even when
	// they would otherwise match NoiseSelectors or the built-in chrome list.
	KeepSelectors []string

	// NoiseSelectors extends the always-removed list below.
	NoiseSelectors []string

	LinkDensityThreshold float64
	BodySpecificityBias  float64
}

// DefaultOptions returns the baseline content-density tuning.
func DefaultOptions() Options {
	return Options{
		OnlyMainContent:      true,
		LinkDensityThreshold: 0.5,
		BodySpecificityBias:  0.6,
	}
}

// CleanResult is the output of a Clean call: the selected, repaired content
// node plus every hyperlink discovered while cleaning.
type CleanResult struct {
	ContentNode    *html.Node
	DiscoveredURLs []DiscoveredURL
}

// DiscoveredURL carries a link's raw href alongside its resolved absolute
// form (resolved against the page URL).
type DiscoveredURL struct {
	Raw      string
	Resolved string
}

// alwaysNoiseSelectors is the always-removed selector list, independent of
// the OnlyMainContent/Keep-all mode split and applied in both.
var alwaysNoiseSelectors = []string{
	"nav", "header", "footer", "aside",
	".sidebar", ".ads", ".advertisement", ".social-share",
	".comments", ".related-posts",
	"[aria-hidden=true]",
	"[role=navigation]", "[role=complementary]",
	"script", "style",
}

package htmlclean

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// resolveURL resolves ref against base, returning (resolved, true) on
// success. A relative ref with an unparseable base, or an unparseable ref,
// is returned unresolved.
func resolveURL(base, ref string) (string, bool) {
	if strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "data:") || strings.HasPrefix(ref, "mailto:") {
		return ref, false
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref, false
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref, false
	}
	return baseURL.ResolveReference(refURL).String(), true
}

// stripNoise removes the always-noise selectors plus any
// caller-supplied extensions, skipping anything matching keepSelectors, and
// drops HTML comment nodes. It mutates doc in place.
func stripNoise(doc *html.Node, extra []string, keep []string) {
	removeComments(doc)

	selectors := append(append([]string{}, alwaysNoiseSelectors...), extra...)
	gq := goquery.NewDocumentFromNode(doc)

	kept := make(map[*html.Node]bool)
	for _, sel := range keep {
		gq.Find(sel).Each(func(i int, s *goquery.Selection) {
			if n := s.Get(0); n != nil {
				kept[n] = true
			}
		})
	}

	var toRemove []*html.Node
	for _, sel := range selectors {
		gq.Find(sel).Each(func(i int, s *goquery.Selection) {
			n := s.Get(0)
			if n == nil || kept[n] {
				return
			}
			toRemove = append(toRemove, n)
		})
	}
	for _, n := range toRemove {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func removeComments(doc *html.Node) {
	var toRemove []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.CommentNode {
			toRemove = append(toRemove, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	for _, n := range toRemove {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

// resolveRelativeURLs rewrites href/src attributes to absolute URLs against
// base, and reduces every srcset attribute to its single highest-density
// candidate.
func resolveRelativeURLs(doc *html.Node, base string) {
	gq := goquery.NewDocumentFromNode(doc)

	gq.Find("[href]").Each(func(i int, s *goquery.Selection) {
		setResolvedAttr(s, "href", base)
	})
	gq.Find("[src]").Each(func(i int, s *goquery.Selection) {
		setResolvedAttr(s, "src", base)
	})
	gq.Find("[srcset]").Each(func(i int, s *goquery.Selection) {
		srcset, ok := s.Attr("srcset")
		if !ok {
			return
		}
		best := highestDensityCandidate(srcset)
		if best == "" {
			return
		}
		s.SetAttr("srcset", resolveAgainst(best, base))
	})
}

func setResolvedAttr(s *goquery.Selection, attr, base string) {
	val, ok := s.Attr(attr)
	if !ok || val == "" {
		return
	}
	s.SetAttr(attr, resolveAgainst(val, base))
}

func resolveAgainst(ref, base string) string {
	resolved, ok := resolveURL(base, ref)
	if !ok {
		return ref
	}
	return resolved
}

// highestDensityCandidate parses a srcset list ("url 1x, url2 2x" or
// "url 480w, url2 800w") and returns the URL with the highest descriptor.
func highestDensityCandidate(srcset string) string {
	type candidate struct {
		url    string
		weight float64
	}
	var candidates []candidate

	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}
		weight := 1.0
		if len(fields) > 1 {
			desc := fields[1]
			numeric := strings.TrimRight(desc, "xw")
			if v, err := strconv.ParseFloat(numeric, 64); err == nil {
				weight = v
			}
		}
		candidates = append(candidates, candidate{url: fields[0], weight: weight})
	}
	if len(candidates) == 0 {
		return ""
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].weight > candidates[j].weight
	})
	return candidates[0].url
}

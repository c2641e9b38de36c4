package pagemeta

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractBasicMeta harvests <title>, <meta name="description">,
// <meta name="author">, and <link rel="canonical">.
func extractBasicMeta(doc *goquery.Document) (title, description, author, canonical string) {
	title = strings.TrimSpace(doc.Find("title").First().Text())
	description, _ = doc.Find(`meta[name="description"]`).First().Attr("content")
	author, _ = doc.Find(`meta[name="author"]`).First().Attr("content")
	canonical, _ = doc.Find(`link[rel="canonical"]`).First().Attr("href")
	return
}

// extractPrefixedMeta collects every <meta property="prefix:key" content="...">
// (or name="prefix.key" for Dublin Core) into a map keyed by the suffix after
// the prefix, e.g. "og:title" -> "title".
func extractPrefixedMeta(doc *goquery.Document, selector, prefix, sep string) map[string]SourcedField {
	out := make(map[string]SourcedField)
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		key, hasKey := s.Attr(propAttrFor(selector))
		content, hasContent := s.Attr("content")
		if !hasKey || !hasContent {
			return
		}
		full := prefix + sep
		if !strings.HasPrefix(strings.ToLower(key), strings.ToLower(full)) {
			return
		}
		suffix := key[len(full):]
		if suffix == "" {
			return
		}
		out[suffix] = SourcedField{Value: content, Source: SourceHTML}
	})
	return out
}

func propAttrFor(selector string) string {
	if strings.Contains(selector, "property") {
		return "property"
	}
	return "name"
}

// extractOpenGraph harvests every <meta property="og:*"> tag.
func extractOpenGraph(doc *goquery.Document) map[string]SourcedField {
	return extractPrefixedMeta(doc, `meta[property^="og:"]`, "og", ":")
}

// extractTwitter harvests every <meta name="twitter:*"> tag.
func extractTwitter(doc *goquery.Document) map[string]SourcedField {
	return extractPrefixedMeta(doc, `meta[name^="twitter:"]`, "twitter", ":")
}

// extractDublinCore harvests every <meta name="dc.*"> tag.
func extractDublinCore(doc *goquery.Document) map[string]SourcedField {
	return extractPrefixedMeta(doc, `meta[name^="dc."]`, "dc", ".")
}

func hasAccessibilitySignals(doc *goquery.Document) bool {
	hasLang := doc.Find("html[lang]").Length() > 0
	hasAltText := true
	doc.Find("img").EachWithBreak(func(i int, s *goquery.Selection) bool {
		if _, ok := s.Attr("alt"); !ok {
			hasAltText = false
			return false
		}
		return true
	})
	hasAriaLabels := doc.Find("[aria-label], [role]").Length() > 0
	return hasLang && (hasAltText || hasAriaLabels)
}

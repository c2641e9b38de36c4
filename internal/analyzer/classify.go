package analyzer

import "strings"

// classifyContentType infers a coarse content type from metadata signals
// and structural shape. Metadata (when present) is checked first since it
// is an explicit author signal; structure is the fallback heuristic.
func classifyContentType(content ExtractedContent, sections []*Section) ContentType {
	if t, ok := classifyFromMetadata(content.Metadata); ok {
		return t
	}
	return classifyFromStructure(content, sections)
}

func classifyFromMetadata(metadata map[string]string) (ContentType, bool) {
	candidates := []string{"og:type", "schema:type", "article:section", "type"}
	for _, key := range candidates {
		val, ok := metadata[key]
		if !ok {
			continue
		}
		switch strings.ToLower(val) {
		case "article", "news":
			return ContentArticle, true
		case "product", "og:product":
			return ContentProduct, true
		case "blog", "blogposting":
			return ContentBlog, true
		case "techarticle", "documentation", "howto":
			return ContentDocumentation, true
		}
	}
	return "", false
}

func classifyFromStructure(content ExtractedContent, sections []*Section) ContentType {
	lowerURL := strings.ToLower(content.URL)
	lowerTitle := strings.ToLower(content.Title)

	switch {
	case strings.Contains(lowerURL, "/docs/") || strings.Contains(lowerURL, "/documentation/"):
		return ContentDocumentation
	case strings.Contains(lowerURL, "/blog/"):
		return ContentBlog
	case strings.Contains(lowerURL, "/product/") || strings.Contains(lowerURL, "/products/"):
		return ContentProduct
	case strings.Contains(lowerTitle, "how to") || strings.Contains(lowerTitle, "tutorial") || strings.Contains(lowerTitle, "guide"):
		return ContentTutorial
	case hasNumberedStepHeadings(sections):
		return ContentTutorial
	default:
		return ContentArticle
	}
}

func hasNumberedStepHeadings(sections []*Section) bool {
	for _, s := range sections {
		lower := strings.ToLower(s.Heading)
		if strings.HasPrefix(lower, "step ") || strings.Contains(lower, "step 1") {
			return true
		}
		if hasNumberedStepHeadings(s.Children) {
			return true
		}
	}
	return false
}

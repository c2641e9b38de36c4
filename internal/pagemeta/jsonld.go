package pagemeta

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractSchemaOrg parses every <script type="application/ld+json"> block and
// flattens @graph containers, tolerating multiple @graph nodes and both
// object and array top-level shapes. Malformed blocks are skipped, not fatal
// — a single bad script tag should not discard metadata found elsewhere.
func extractSchemaOrg(doc *goquery.Document) []map[string]any {
	var nodes []map[string]any

	doc.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if raw == "" {
			return
		}
		nodes = append(nodes, flattenJSONLD([]byte(raw))...)
	})

	return nodes
}

func flattenJSONLD(data []byte) []map[string]any {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(data, &items); err != nil {
			return nil
		}
		var out []map[string]any
		for _, item := range items {
			out = append(out, flattenJSONLDObject(item)...)
		}
		return out
	}

	return flattenJSONLDObject(data)
}

func flattenJSONLDObject(data []byte) []map[string]any {
	var envelope struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil
	}

	if len(envelope.Graph) > 0 {
		var out []map[string]any
		for _, item := range envelope.Graph {
			out = append(out, flattenJSONLDObject(item)...)
		}
		return out
	}

	var node map[string]any
	if err := json.Unmarshal(data, &node); err != nil {
		return nil
	}
	return []map[string]any{node}
}

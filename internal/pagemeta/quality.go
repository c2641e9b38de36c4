package pagemeta

// scoreCompleteness evaluates presence across the seven dimensions and
// returns per-dimension scores, the weighted overall score, and
// human-actionable gaps.
func scoreCompleteness(meta PageMetadata) Completeness {
	per := make(map[Dimension]float64)

	per[DimensionBasic] = basicScore(meta)
	per[DimensionOpenGraph] = presenceScore(meta.OpenGraph, []string{"title", "description", "image", "url"})
	per[DimensionTwitter] = presenceScore(meta.Twitter, []string{"card", "title", "description"})
	per[DimensionDublinCore] = presenceScore(meta.DublinCore, []string{"title", "creator", "date"})
	per[DimensionSchemaOrg] = schemaOrgScore(meta.SchemaOrg)
	per[DimensionStructure] = structureScore(meta.Structure)
	per[DimensionAccessibility] = accessibilityScore(meta.Structure)

	overall := 0.0
	for dim, score := range per {
		overall += score * dimensionWeight[dim]
	}

	missing, recs := gapsFor(meta, per)

	return Completeness{
		Overall:         clamp01(overall),
		PerDimension:    per,
		MissingCritical: missing,
		Recommendations: recs,
	}
}

func basicScore(meta PageMetadata) float64 {
	present := 0
	total := 4
	if meta.Title.Value != "" {
		present++
	}
	if meta.Description.Value != "" {
		present++
	}
	if meta.Author.Value != "" {
		present++
	}
	if meta.Canonical.Value != "" {
		present++
	}
	return float64(present) / float64(total)
}

func presenceScore(fields map[string]SourcedField, critical []string) float64 {
	if len(critical) == 0 {
		return 0
	}
	present := 0
	for _, key := range critical {
		if f, ok := fields[key]; ok && f.Value != "" {
			present++
		}
	}
	return float64(present) / float64(len(critical))
}

func schemaOrgScore(nodes []map[string]any) float64 {
	if len(nodes) == 0 {
		return 0
	}
	return 1
}

func structureScore(stats StructureStats) float64 {
	score := 0.0
	if stats.HeadingCount > 0 {
		score += 0.5
	}
	if stats.ParagraphCount > 0 {
		score += 0.5
	}
	return score
}

func accessibilityScore(stats StructureStats) float64 {
	if stats.HasAccessibility {
		return 1
	}
	return 0
}

func gapsFor(meta PageMetadata, per map[Dimension]float64) (missing []string, recs []string) {
	if meta.Title.Value == "" {
		missing = append(missing, "title")
		recs = append(recs, "add a <title> tag")
	}
	if meta.Description.Value == "" {
		missing = append(missing, "description")
		recs = append(recs, `add a <meta name="description"> tag`)
	}
	if per[DimensionOpenGraph] < 0.5 {
		recs = append(recs, "add og:title/og:description/og:image/og:url tags for social sharing")
	}
	if per[DimensionSchemaOrg] == 0 {
		recs = append(recs, "add Schema.org JSON-LD structured data")
	}
	if per[DimensionAccessibility] == 0 {
		recs = append(recs, "set an html lang attribute and alt text on images")
	}
	return missing, recs
}

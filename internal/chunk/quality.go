package chunk

import (
	"math"
	"strings"
)

// scoreChunks fills in QualityScore (0-100) on every chunk: size
// consistency (30%), semantic completeness (40%), structure preservation
// (30%), computed across the whole emitted sequence.
func scoreChunks(chunks []Chunk) {
	if len(chunks) == 0 {
		return
	}

	sizeScore := sizeConsistencyScore(chunks)
	completenessScore := semanticCompletenessScore(chunks)
	structureScore := structurePreservationScore(chunks)

	overall := 100 * (0.3*sizeScore + 0.4*completenessScore + 0.3*structureScore)

	for i := range chunks {
		chunks[i].QualityScore = overall
	}
}

func sizeConsistencyScore(chunks []Chunk) float64 {
	total := 0
	for _, c := range chunks {
		total += len(c.Content)
	}
	avg := float64(total) / float64(len(chunks))
	if avg == 0 {
		return 1
	}

	deviation := 0.0
	for _, c := range chunks {
		deviation += math.Abs(float64(len(c.Content)) - avg)
	}
	meanDeviation := deviation / float64(len(chunks))

	score := 1 - meanDeviation/avg
	if score < 0 {
		score = 0
	}
	return score
}

func semanticCompletenessScore(chunks []Chunk) float64 {
	terminated := 0
	for _, c := range chunks {
		trimmed := strings.TrimSpace(c.Content)
		if trimmed == "" {
			continue
		}
		last := trimmed[len(trimmed)-1]
		if last == '.' || last == '!' || last == '?' {
			terminated++
		}
	}
	return float64(terminated) / float64(len(chunks))
}

func structurePreservationScore(chunks []Chunk) float64 {
	withHeading := 0
	for _, c := range chunks {
		if _, ok := c.Metadata["headingPath"]; ok {
			withHeading++
			continue
		}
		if _, ok := c.Metadata["heading"]; ok {
			withHeading++
		}
	}
	return float64(withHeading) / float64(len(chunks))
}

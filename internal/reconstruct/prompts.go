package reconstruct

import "fmt"

// promptFor builds the strategy-specific instruction sent to the
// TextCompletion capability.
func promptFor(content string, opts Options) string {
	switch opts.Strategy {
	case Summarize:
		return fmt.Sprintf(
			"Summarize the following content to roughly %.0f%% of its original length, preserving the key facts:\n\n%s",
			opts.SummaryRatio*100, content,
		)
	case Expand:
		return fmt.Sprintf(
			"Expand the following content to roughly %.0f%% of its original length by adding clarifying detail without changing its meaning:\n\n%s",
			opts.ExpansionRatio*100, content,
		)
	case Rewrite:
		return fmt.Sprintf("Rewrite the following content in a %s style, preserving its meaning:\n\n%s", opts.RewriteStyle, content)
	case Enrich:
		return fmt.Sprintf("Add the following sections to the content where relevant (%s), keeping the original text intact:\n\n%s", enrichSectionList(opts.EnrichSections), content)
	default:
		return content
	}
}

func enrichSectionList(sections []EnrichSection) string {
	if len(sections) == 0 {
		sections = []EnrichSection{EnrichContext, EnrichDefinitions, EnrichExamples, EnrichRelatedInfo}
	}
	out := ""
	for i, s := range sections {
		if i > 0 {
			out += ", "
		}
		out += string(s)
	}
	return out
}

func targetLength(originalLen int, opts Options) int {
	switch opts.Strategy {
	case Summarize:
		ratio := opts.SummaryRatio
		if ratio <= 0 {
			ratio = 0.3
		}
		return int(float64(originalLen) * ratio)
	case Expand:
		ratio := opts.ExpansionRatio
		if ratio <= 0 {
			ratio = 1.5
		}
		return int(float64(originalLen) * ratio)
	default:
		return originalLen
	}
}

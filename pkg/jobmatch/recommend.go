package jobmatch

import (
	"fmt"
	"strings"
)

// Recommendations renders deterministic, templated guidance from a match
// result. It performs no further scoring.
func Recommendations(result MatchResult) []string {
	recs := []string{}

	switch {
	case result.CompositeScore >= 80:
		recs = append(recs, fmt.Sprintf("Strong match: composite score %d of 100.", result.CompositeScore))
	case result.CompositeScore >= 50:
		recs = append(recs, fmt.Sprintf("Partial match: composite score %d of 100.", result.CompositeScore))
	default:
		recs = append(recs, fmt.Sprintf("Weak match: composite score %d of 100.", result.CompositeScore))
	}

	if len(result.Skills.Matches) > 0 {
		recs = append(recs, fmt.Sprintf("Matched skills: %s.", strings.Join(result.Skills.Matches, ", ")))
	}
	if len(result.Skills.Gaps) > 0 {
		recs = append(recs, fmt.Sprintf("Skill gaps to address: %s.", strings.Join(result.Skills.Gaps, ", ")))
	}
	if len(result.Technologies.Matches) > 0 {
		recs = append(recs, fmt.Sprintf("Matched technologies: %s.", strings.Join(result.Technologies.Matches, ", ")))
	}
	if len(result.Technologies.Gaps) > 0 {
		recs = append(recs, fmt.Sprintf("Technology gaps to address: %s.", strings.Join(result.Technologies.Gaps, ", ")))
	}
	if len(result.ExperienceMentions) > 0 {
		recs = append(recs, fmt.Sprintf("The specification states explicit tenure requirements (%s); expect them to be weighted by the reviewer.",
			strings.Join(result.ExperienceMentions, ", ")))
	}

	return recs
}

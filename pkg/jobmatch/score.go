package jobmatch

import "math"

// Weights of the composite score. An explicit tenure requirement softens the
// headline score instead of gating it.
const (
	skillsWeight     = 0.4
	techWeight       = 0.4
	experienceWeight = 0.2

	experiencePenaltyFactor = 0.7
)

// MatchResult is the full outcome of scoring a candidate profile against a
// job specification.
type MatchResult struct {
	Skills             Overlap  `json:"skills"`
	Technologies       Overlap  `json:"technologies"`
	ExperienceMentions []string `json:"experienceMentions"`
	Keywords           []string `json:"keywords"`
	CompositeScore     int      `json:"compositeScore"`
	Recommendations    []string `json:"recommendations"`
}

// ExperienceFactor returns the soft penalty applied when the specification
// mentions any experience duration.
func ExperienceFactor(mentions []string) float64 {
	if len(mentions) > 0 {
		return experiencePenaltyFactor
	}
	return 1.0
}

// CompositeScore folds the category scores into a single integer in [0,100].
// It is non-decreasing in each input holding the others fixed.
func CompositeScore(skillsScore, techScore, experienceFactor float64) int {
	raw := skillsWeight*skillsScore + techWeight*techScore + experienceWeight*experienceFactor
	score := int(math.Round(100 * raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// Match extracts nothing; it scores already-extracted requirements against
// a candidate's skill and technology sets and attaches recommendations.
func Match(req Requirements, candidateSkills, candidateTech []string) MatchResult {
	result := MatchResult{
		Skills:             AnalyzeOverlap(candidateSkills, req.Skills),
		Technologies:       AnalyzeOverlap(candidateTech, req.Technologies),
		ExperienceMentions: req.ExperienceMentions,
		Keywords:           req.Keywords,
	}
	result.CompositeScore = CompositeScore(
		result.Skills.Score,
		result.Technologies.Score,
		ExperienceFactor(req.ExperienceMentions),
	)
	result.Recommendations = Recommendations(result)
	return result
}

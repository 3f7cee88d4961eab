package jobmatch

import "strings"

// Overlap is the per-category comparison of a candidate set against a
// required set.
type Overlap struct {
	Matches []string `json:"matches"`
	Gaps    []string `json:"gaps"`
	Score   float64  `json:"score"`
}

// AnalyzeOverlap compares two string sets. Items are normalized first, so
// common abbreviations match their expansions ("js" matches "javascript");
// a required item then matches when it is a case-insensitive substring of,
// or contains, any candidate item. Score is the matched fraction of the
// required set, 0 when nothing is required.
func AnalyzeOverlap(candidate, required []string) Overlap {
	o := Overlap{Matches: []string{}, Gaps: []string{}}
	if len(required) == 0 {
		return o
	}

	for _, req := range required {
		if matchesAny(candidate, req) {
			o.Matches = append(o.Matches, req)
		} else {
			o.Gaps = append(o.Gaps, req)
		}
	}

	o.Score = float64(len(o.Matches)) / float64(len(required))
	return o
}

// abbreviations maps common short forms onto the term the lexicons carry.
// Both sides of a comparison are expanded before the containment check.
var abbreviations = map[string]string{
	"js":     "javascript",
	"ts":     "typescript",
	"py":     "python",
	"golang": "go",
	"k8s":    "kubernetes",
	"pg":     "postgresql",
	"es":     "elasticsearch",
	"tf":     "terraform",
	"gh":     "github",
}

func canonical(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if full, ok := abbreviations[s]; ok {
		return full
	}
	return s
}

func matchesAny(candidate []string, required string) bool {
	req := canonical(required)
	if req == "" {
		return false
	}
	for _, c := range candidate {
		cand := canonical(c)
		if cand == "" {
			continue
		}
		if strings.Contains(cand, req) || strings.Contains(req, cand) {
			return true
		}
	}
	return false
}

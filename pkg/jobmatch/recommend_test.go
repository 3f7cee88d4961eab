package jobmatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecommendations_Bands(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{95, "Strong match"},
		{80, "Strong match"},
		{79, "Partial match"},
		{50, "Partial match"},
		{49, "Weak match"},
		{0, "Weak match"},
	}

	for _, tt := range tests {
		recs := Recommendations(MatchResult{CompositeScore: tt.score})
		require.NotEmpty(t, recs)
		assert.Contains(t, recs[0], tt.want, "score %d", tt.score)
	}
}

func TestRecommendations_GapsListed(t *testing.T) {
	recs := Recommendations(MatchResult{
		CompositeScore: 60,
		Skills:         Overlap{Matches: []string{"python"}, Gaps: []string{"rust", "scala"}},
		Technologies:   Overlap{Gaps: []string{"kafka"}},
	})

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "rust, scala")
	assert.Contains(t, joined, "kafka")
	assert.Contains(t, joined, "Matched skills: python")
}

func TestRecommendations_TenureCalledOut(t *testing.T) {
	recs := Recommendations(MatchResult{
		CompositeScore:     70,
		ExperienceMentions: []string{"5+ years"},
	})

	joined := strings.Join(recs, "\n")
	assert.Contains(t, joined, "5+ years")
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/jobmatch"
)

const sampleSpec = `Senior full-stack engineer, 5+ years. Must know JavaScript,
TypeScript and React. PostgreSQL and Docker experience required, Rust a plus.`

func TestProcessJobSpec(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "process_job_spec", premiumCtx("s1"), map[string]interface{}{
		"text": sampleSpec,
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	req := data["requirements"].(jobmatch.Requirements)
	assert.Contains(t, req.Skills, "javascript")
	assert.Contains(t, req.Technologies, "react")

	match := data["match"].(jobmatch.MatchResult)
	assert.GreaterOrEqual(t, match.CompositeScore, 0)
	assert.LessOrEqual(t, match.CompositeScore, 100)
	assert.Contains(t, match.Skills.Gaps, "rust")
	assert.NotEmpty(t, match.Recommendations)
}

func TestProcessJobSpec_DeniedBelowPremium(t *testing.T) {
	table := testTable(t, testDeps())

	for _, level := range []accessgate.AccessLevel{accessgate.AccessBasic, accessgate.AccessLimited} {
		execCtx := dispatch.ExecutionContext{SessionID: "s1", AccessLevel: level}
		_, err := call(t, table, "process_job_spec", execCtx, map[string]interface{}{
			"text": sampleSpec,
		})
		require.Error(t, err, string(level))
		assert.Equal(t, dispatch.CodeUnauthorized, dispatch.CodeOf(err))
		assert.Contains(t, err.Error(), "premium")
	}
}

func TestProcessJobSpec_RequiresText(t *testing.T) {
	table := testTable(t, testDeps())

	_, err := call(t, table, "process_job_spec", premiumCtx("s1"), map[string]interface{}{})
	assert.ErrorContains(t, err, "text is required")
}

func TestProcessJobSpec_TracksUsageWithReflink(t *testing.T) {
	svc := accessgate.NewMemoryReflinkService()
	svc.Add(accessgate.Reflink{
		ID:          "rl-1",
		Code:        "ref_recruiter1",
		AccessLevel: accessgate.AccessPremium,
		TokenBudget: 10000,
	})

	deps := testDeps()
	deps.Usage = svc
	table := testTable(t, deps)

	execCtx := premiumCtx("s1")
	execCtx.ReflinkID = "ref_recruiter1"

	_, err := call(t, table, "process_job_spec", execCtx, map[string]interface{}{
		"text": sampleSpec,
	})
	require.NoError(t, err)

	events := svc.Events("ref_recruiter1")
	require.Len(t, events, 1)
	assert.Equal(t, accessgate.UsageLLMRequest, events[0].Type)
	assert.Equal(t, int64(len(sampleSpec)/4), events[0].Tokens)
	assert.Equal(t, "process_job_spec", events[0].Endpoint)
}

func TestProcessJobSpec_NoUsageWithoutReflink(t *testing.T) {
	svc := accessgate.NewMemoryReflinkService()
	svc.Add(accessgate.Reflink{ID: "rl-1", Code: "ref_recruiter1", AccessLevel: accessgate.AccessPremium})

	deps := testDeps()
	deps.Usage = svc
	table := testTable(t, deps)

	_, err := call(t, table, "process_job_spec", premiumCtx("s1"), map[string]interface{}{
		"text": sampleSpec,
	})
	require.NoError(t, err)
	assert.Empty(t, svc.Events("ref_recruiter1"))
}

package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arvell/portico/pkg/portfolio"
)

func TestGetProjectContext(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "get_project_context", basicCtx("s1"), map[string]interface{}{
		"projectId": "voicedesk",
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	project := data["project"].(portfolio.Project)
	assert.Equal(t, "VoiceDesk", project.Title)
	assert.Equal(t, 3, data["totalCount"])
}

func TestGetProjectContext_Unknown(t *testing.T) {
	table := testTable(t, testDeps())

	_, err := call(t, table, "get_project_context", basicCtx("s1"), map[string]interface{}{
		"projectId": "missing",
	})
	assert.ErrorContains(t, err, "project not found")
}

func TestLoadProfile(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "load_profile", basicCtx("s1"), nil)
	require.NoError(t, err)

	profile := out.(portfolio.Profile)
	assert.Equal(t, "Alex Arvell", profile.Name)
	assert.NotEmpty(t, profile.Skills)
}

func TestSearchProjects(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "search_projects", basicCtx("s1"), map[string]interface{}{
		"query": "postgresql",
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	results := data["results"].([]portfolio.Project)
	require.Len(t, results, 1)
	assert.Equal(t, "shoplens", results[0].ID)
	assert.Equal(t, 1, data["count"])
}

func TestSearchProjects_LimitApplied(t *testing.T) {
	table := testTable(t, testDeps())

	// JSON numbers decode as float64.
	out, err := call(t, table, "search_projects", basicCtx("s1"), map[string]interface{}{
		"query": "engineer",
		"limit": float64(1),
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	results := data["results"].([]portfolio.Project)
	assert.LessOrEqual(t, len(results), 1)
}

func TestSearchProjects_RequiresQuery(t *testing.T) {
	table := testTable(t, testDeps())

	_, err := call(t, table, "search_projects", basicCtx("s1"), map[string]interface{}{})
	assert.ErrorContains(t, err, "query is required")
}

func TestSummarizeProjects(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "summarize_projects", basicCtx("s1"), nil)
	require.NoError(t, err)

	data := out.(map[string]interface{})
	assert.Equal(t, 3, data["totalProjects"])

	byTech := data["byTechnology"].(map[string]int)
	assert.Positive(t, byTech["react"])

	top := data["topTechnologies"].([]string)
	assert.NotEmpty(t, top)
	assert.LessOrEqual(t, len(top), 5)
}

func TestOpenProject(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "open_project", basicCtx("s1"), map[string]interface{}{
		"query": "gridwatch",
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	assert.Equal(t, true, data["matched"])
	assert.Equal(t, "gridwatch", data["projectId"])
	assert.Equal(t, "/projects/gridwatch", data["path"])
}

func TestOpenProject_NoMatch(t *testing.T) {
	table := testTable(t, testDeps())

	out, err := call(t, table, "open_project", basicCtx("s1"), map[string]interface{}{
		"query": "fortran mainframe",
	})
	require.NoError(t, err)

	data := out.(map[string]interface{})
	assert.Equal(t, false, data["matched"])
}

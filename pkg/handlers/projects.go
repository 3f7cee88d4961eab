package handlers

import (
	"context"
	"fmt"
	"sort"

	"github.com/arvell/portico/pkg/dispatch"
)

func (h *handlerSet) getProjectContext(_ context.Context, _ dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	projectID := stringArg(args, "projectId")
	project, ok := h.deps.Portfolio.Project(projectID)
	if !ok {
		return nil, fmt.Errorf("project not found: %s", projectID)
	}

	return map[string]interface{}{
		"project":    project,
		"profile":    h.deps.Portfolio.Profile().Name,
		"totalCount": len(h.deps.Portfolio.Projects()),
	}, nil
}

func (h *handlerSet) loadProfile(_ context.Context, _ dispatch.ExecutionContext, _ map[string]interface{}) (interface{}, error) {
	return h.deps.Portfolio.Profile(), nil
}

func (h *handlerSet) searchProjects(_ context.Context, _ dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	query := stringArg(args, "query")
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	limit := intArg(args, "limit", 5)

	results := h.deps.Portfolio.Search(query)
	if len(results) > limit {
		results = results[:limit]
	}

	return map[string]interface{}{
		"query":   query,
		"results": results,
		"count":   len(results),
	}, nil
}

func (h *handlerSet) summarizeProjects(_ context.Context, _ dispatch.ExecutionContext, _ map[string]interface{}) (interface{}, error) {
	projects := h.deps.Portfolio.Projects()

	byTechnology := map[string]int{}
	highlights := []string{}
	for _, p := range projects {
		for _, tech := range p.Technologies {
			byTechnology[tech]++
		}
		highlights = append(highlights, p.Highlights...)
	}

	technologies := make([]string, 0, len(byTechnology))
	for tech := range byTechnology {
		technologies = append(technologies, tech)
	}
	sort.Slice(technologies, func(i, j int) bool {
		if byTechnology[technologies[i]] != byTechnology[technologies[j]] {
			return byTechnology[technologies[i]] > byTechnology[technologies[j]]
		}
		return technologies[i] < technologies[j]
	})

	return map[string]interface{}{
		"totalProjects": len(projects),
		"byTechnology":  byTechnology,
		"topTechnologies": func() []string {
			if len(technologies) > 5 {
				return technologies[:5]
			}
			return technologies
		}(),
		"highlights": highlights,
	}, nil
}

func (h *handlerSet) openProject(_ context.Context, _ dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	query := stringArg(args, "query")
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}

	results := h.deps.Portfolio.Search(query)
	if len(results) == 0 {
		return map[string]interface{}{
			"matched": false,
			"query":   query,
		}, nil
	}

	best := results[0]
	return map[string]interface{}{
		"matched":   true,
		"projectId": best.ID,
		"title":     best.Title,
		"path":      best.Path,
	}, nil
}

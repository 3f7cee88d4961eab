package handlers

import (
	"context"

	"github.com/arvell/portico/pkg/dispatch"
)

// Suggested sections per intent. The current page is filtered out so the
// agent never suggests staying put.
var navigationSuggestions = map[string][]string{
	"job_inquiry":      {"/experience", "/projects", "/contact"},
	"project_question": {"/projects", "/experience"},
	"contact":          {"/contact"},
	"navigation":       {"/", "/projects", "/experience", "/contact"},
	"general":          {"/", "/projects"},
}

func (h *handlerSet) suggestNavigation(_ context.Context, execCtx dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	intent := stringArg(args, "intent")
	currentPage := stringArg(args, "currentPage")

	if currentPage != "" && execCtx.SessionID != "" {
		h.deps.Navigation.Record(execCtx.SessionID, currentPage)
	}

	candidates, ok := navigationSuggestions[intent]
	if !ok {
		candidates = navigationSuggestions["general"]
	}

	suggestions := []string{}
	for _, page := range candidates {
		if page != currentPage {
			suggestions = append(suggestions, page)
		}
	}

	return map[string]interface{}{
		"intent":      intent,
		"currentPage": currentPage,
		"suggestions": suggestions,
	}, nil
}

func (h *handlerSet) getNavigationHistory(_ context.Context, execCtx dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	limit := intArg(args, "limit", 10)
	history := h.deps.Navigation.History(execCtx.SessionID, limit)

	return map[string]interface{}{
		"sessionId": execCtx.SessionID,
		"history":   history,
		"count":     len(history),
	}, nil
}

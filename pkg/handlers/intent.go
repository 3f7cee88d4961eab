package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/arvell/portico/pkg/dispatch"
)

// Intent categories, checked in order; the first category with the highest
// keyword count wins, so classification is deterministic.
var intentRules = []struct {
	intent   string
	keywords []string
}{
	{"job_inquiry", []string{"hire", "hiring", "job", "position", "role", "salary", "recruit", "vacancy", "opening"}},
	{"project_question", []string{"project", "portfolio", "built", "build", "demo", "case study", "stack"}},
	{"contact", []string{"contact", "email", "reach", "call", "message", "get in touch"}},
	{"navigation", []string{"show", "open", "go to", "navigate", "where", "take me"}},
}

func (h *handlerSet) classifyIntent(_ context.Context, _ dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	message := stringArg(args, "message")
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}
	lower := strings.ToLower(message)

	bestIntent := "general"
	bestCount := 0
	matched := []string{}
	for _, rule := range intentRules {
		count := 0
		hits := []string{}
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				count++
				hits = append(hits, kw)
			}
		}
		if count > bestCount {
			bestIntent = rule.intent
			bestCount = count
			matched = hits
		}
	}

	confidence := 0.0
	if bestCount > 0 {
		confidence = 0.5 + 0.1*float64(bestCount)
		if confidence > 0.95 {
			confidence = 0.95
		}
	}

	return map[string]interface{}{
		"intent":          bestIntent,
		"confidence":      confidence,
		"matchedKeywords": matched,
	}, nil
}

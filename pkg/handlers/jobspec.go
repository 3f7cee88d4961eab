package handlers

import (
	"context"
	"fmt"

	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/dispatch"
	"github.com/arvell/portico/pkg/jobmatch"
)

// processJobSpec extracts requirements from a job specification and scores
// the candidate profile against them. Premium only; the coarse gate result
// is re-checked here.
func (h *handlerSet) processJobSpec(ctx context.Context, execCtx dispatch.ExecutionContext, args map[string]interface{}) (interface{}, error) {
	if err := dispatch.RequirePremium(execCtx, "job specification analysis"); err != nil {
		return nil, err
	}

	text := stringArg(args, "text")
	if text == "" {
		return nil, fmt.Errorf("text is required")
	}

	profile := h.deps.Portfolio.Profile()
	requirements := jobmatch.ExtractRequirements(text)
	result := jobmatch.Match(requirements, profile.Skills, profile.Technologies)

	if h.deps.Usage != nil && execCtx.ReflinkID != "" {
		ev := accessgate.UsageEvent{
			Type:     accessgate.UsageLLMRequest,
			Tokens:   int64(len(text) / 4),
			Endpoint: "process_job_spec",
		}
		if err := h.deps.Usage.TrackUsage(ctx, execCtx.ReflinkID, ev); err != nil {
			h.deps.Logger.Warn().
				Err(err).
				Str("reflink_id", execCtx.ReflinkID).
				Msg("Failed to track job spec usage")
		}
	}

	return map[string]interface{}{
		"requirements": requirements,
		"match":        result,
	}, nil
}

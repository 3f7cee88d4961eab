package accessgate

import "context"

// UsageType identifies a billable operation.
type UsageType string

const (
	UsageLLMRequest      UsageType = "llm_request"
	UsageVoiceGeneration UsageType = "voice_generation"
	UsageVoiceProcessing UsageType = "voice_processing"
)

// UsageEvent describes a single billable operation against a reflink budget.
type UsageEvent struct {
	Type      UsageType              `json:"type"`
	Tokens    int64                  `json:"tokens"`
	Cost      float64                `json:"cost"`
	ModelUsed string                 `json:"model_used,omitempty"`
	Endpoint  string                 `json:"endpoint,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// UsageTracker decrements reflink budgets per billable operation.
// Tracking is not idempotent; callers must not retry blindly.
type UsageTracker interface {
	TrackUsage(ctx context.Context, reflinkID string, ev UsageEvent) error
}

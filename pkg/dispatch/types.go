package dispatch

import (
	"context"
	"time"

	"github.com/arvell/portico/pkg/accessgate"
)

// Request carries one tool invocation into the dispatcher.
type Request struct {
	ToolName   string                 `json:"toolName"`
	Parameters map[string]interface{} `json:"parameters"`
	SessionID  string                 `json:"sessionId,omitempty"`
	ToolCallID string                 `json:"toolCallId,omitempty"`
	ReflinkID  string                 `json:"reflinkId,omitempty"`
	UserID     string                 `json:"userId,omitempty"`
}

// ExecutionContext is the per-call value object handed to handlers. It
// carries no identity beyond what was passed in.
type ExecutionContext struct {
	SessionID   string
	AccessLevel accessgate.AccessLevel
	ReflinkID   string
	UserID      string
}

// Metadata annotates every ToolResult.
type Metadata struct {
	Timestamp       time.Time                `json:"timestamp"`
	ExecutionTimeMS int64                    `json:"executionTime"`
	Source          string                   `json:"source"`
	SessionID       string                   `json:"sessionId,omitempty"`
	ToolCallID      string                   `json:"toolCallId,omitempty"`
	AccessLevel     accessgate.AccessLevel   `json:"accessLevel,omitempty"`
	CostTracking    *accessgate.BudgetStatus `json:"costTracking,omitempty"`
}

// ToolResult is the normalized outcome of a dispatched call. The dispatcher
// always produces one; it never raises past its boundary.
type ToolResult struct {
	Success  bool        `json:"success"`
	Data     interface{} `json:"data,omitempty"`
	Error    *Error      `json:"error,omitempty"`
	Metadata Metadata    `json:"metadata"`
}

// Handler executes one server-side tool.
type Handler func(ctx context.Context, execCtx ExecutionContext, args map[string]interface{}) (interface{}, error)

// HandlerSpec binds a handler to its minimum access tier. An empty MinAccess
// means any valid caller may invoke it.
type HandlerSpec struct {
	Handler   Handler
	MinAccess accessgate.AccessLevel
}

// RequirePremium is the fine-grained checkpoint handlers use regardless of
// the coarse gate result.
func RequirePremium(execCtx ExecutionContext, operation string) error {
	if !execCtx.AccessLevel.AtLeast(accessgate.AccessPremium) {
		return NewAuthorizationError("%s requires premium access", operation)
	}
	return nil
}

package dispatch

import (
	"time"

	"github.com/rs/zerolog"
)

// Event is a telemetry record for one tool call.
type Event struct {
	ToolName         string                 `json:"toolName"`
	Args             map[string]interface{} `json:"args,omitempty"`
	Result           interface{}            `json:"result,omitempty"`
	Error            string                 `json:"error,omitempty"`
	ExecutionTime    time.Duration          `json:"executionTime"`
	Success          bool                   `json:"success"`
	SessionID        string                 `json:"sessionId,omitempty"`
	ToolCallID       string                 `json:"toolCallId,omitempty"`
	ExecutionContext string                 `json:"executionContext"`
}

// Sink receives tool_call_start and tool_call_complete events. Durable
// telemetry lives behind this boundary.
type Sink interface {
	ToolCallStart(ev Event)
	ToolCallComplete(ev Event)
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) ToolCallStart(Event)    {}
func (NopSink) ToolCallComplete(Event) {}

// LogSink writes events to the structured log.
type LogSink struct {
	Logger zerolog.Logger
}

func (s LogSink) ToolCallStart(ev Event) {
	s.Logger.Debug().
		Str("tool", ev.ToolName).
		Str("session_id", ev.SessionID).
		Str("tool_call_id", ev.ToolCallID).
		Msg("tool_call_start")
}

func (s LogSink) ToolCallComplete(ev Event) {
	s.Logger.Debug().
		Str("tool", ev.ToolName).
		Str("session_id", ev.SessionID).
		Str("tool_call_id", ev.ToolCallID).
		Bool("success", ev.Success).
		Dur("execution_time", ev.ExecutionTime).
		Str("error", ev.Error).
		Msg("tool_call_complete")
}

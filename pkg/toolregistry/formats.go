package toolregistry

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ToolCall is a single invocation of a tool. Calls are created per
// invocation and never persisted.
type ToolCall struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
	Timestamp time.Time              `json:"timestamp"`
	SessionID string                 `json:"sessionId,omitempty"`
	ReflinkID string                 `json:"reflinkId,omitempty"`
}

// NewToolCall synthesizes a call with a fresh id and the current time.
func NewToolCall(name string, args map[string]interface{}) ToolCall {
	return ToolCall{
		ID:        uuid.NewString(),
		Name:      name,
		Arguments: args,
		Timestamp: time.Now(),
	}
}

// FunctionSpec is the flat-array wire shape for providers that consume an
// upfront function catalog.
type FunctionSpec struct {
	Type        string                 `json:"type"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// FunctionCatalog renders every tool as a function spec.
func (r *Registry) FunctionCatalog() []FunctionSpec {
	defs := r.All()
	out := make([]FunctionSpec, 0, len(defs))
	for _, def := range defs {
		out = append(out, FunctionSpec{
			Type:        "function",
			Name:        def.Name,
			Description: def.Description,
			Parameters:  def.Parameters,
		})
	}
	return out
}

// Executor receives synthesized tool calls from the callable map.
type Executor func(ctx context.Context, call ToolCall) (interface{}, error)

// Callable is the per-tool wrapper handed to providers that invoke
// callables directly.
type Callable func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// CallableMap renders the catalog as a map from tool name to a wrapper that
// synthesizes a ToolCall and forwards it to the executor. One dispatch
// entrypoint thereby serves both provider conventions.
func (r *Registry) CallableMap(executor Executor) map[string]Callable {
	defs := r.All()
	out := make(map[string]Callable, len(defs))
	for _, def := range defs {
		name := def.Name
		out[name] = func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
			return executor(ctx, NewToolCall(name, args))
		}
	}
	return out
}

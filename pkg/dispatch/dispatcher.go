package dispatch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/arvell/portico/internal/metrics"
	"github.com/arvell/portico/pkg/accessgate"
	"github.com/arvell/portico/pkg/toolregistry"
)

// Dispatcher executes server-side tool calls. It is stateless: the catalog
// and handler table are fixed at construction and every call is
// independently authorized, so concurrent calls never interfere.
type Dispatcher struct {
	registry  *toolregistry.Registry
	handlers  map[string]HandlerSpec
	validator accessgate.ContextValidator
	sink      Sink
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// Config wires a Dispatcher.
type Config struct {
	Registry  *toolregistry.Registry
	Handlers  map[string]HandlerSpec
	Validator accessgate.ContextValidator
	Sink      Sink
	Metrics   *metrics.Metrics
	Logger    zerolog.Logger
}

// New creates a Dispatcher.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if len(cfg.Handlers) == 0 {
		return nil, fmt.Errorf("handler table is required")
	}
	if cfg.Validator == nil {
		return nil, fmt.Errorf("context validator is required")
	}
	if cfg.Sink == nil {
		cfg.Sink = NopSink{}
	}

	return &Dispatcher{
		registry:  cfg.Registry,
		handlers:  cfg.Handlers,
		validator: cfg.Validator,
		sink:      cfg.Sink,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger.With().Str("component", "dispatch").Logger(),
	}, nil
}

// Registry returns the immutable catalog the dispatcher serves.
func (d *Dispatcher) Registry() *toolregistry.Registry {
	return d.registry
}

// Execute runs one tool call end to end and always returns a ToolResult.
// Timing is measured wall-clock around the handler invocation.
func (d *Dispatcher) Execute(ctx context.Context, req Request) ToolResult {
	start := time.Now()

	callID := req.ToolCallID
	if callID == "" {
		callID = uuid.NewString()
	}

	d.sink.ToolCallStart(Event{
		ToolName:         req.ToolName,
		Args:             req.Parameters,
		SessionID:        req.SessionID,
		ToolCallID:       callID,
		ExecutionContext: string(toolregistry.ExecServer),
	})

	result := d.execute(ctx, req, callID, start)

	elapsed := time.Since(start)
	result.Metadata.ExecutionTimeMS = elapsed.Milliseconds()

	status := "success"
	errMsg := ""
	if !result.Success {
		status = string(result.Error.Code)
		errMsg = result.Error.Message
	}
	if d.metrics != nil {
		d.metrics.ToolExecutionsTotal.WithLabelValues(req.ToolName, status).Inc()
		d.metrics.ToolExecutionDuration.WithLabelValues(req.ToolName).Observe(elapsed.Seconds())
	}

	d.sink.ToolCallComplete(Event{
		ToolName:         req.ToolName,
		Result:           result.Data,
		Error:            errMsg,
		ExecutionTime:    elapsed,
		Success:          result.Success,
		SessionID:        req.SessionID,
		ToolCallID:       callID,
		ExecutionContext: string(toolregistry.ExecServer),
	})

	return result
}

func (d *Dispatcher) execute(ctx context.Context, req Request, callID string, start time.Time) ToolResult {
	meta := Metadata{
		Timestamp:  start,
		Source:     "server",
		SessionID:  req.SessionID,
		ToolCallID: callID,
	}

	fail := func(err *Error) ToolResult {
		d.logger.Warn().
			Str("tool", req.ToolName).
			Str("session_id", req.SessionID).
			Str("code", string(err.Code)).
			Str("reason", err.Message).
			Msg("Tool call failed")
		return ToolResult{Success: false, Error: err, Metadata: meta}
	}

	if req.ToolName == "" {
		return fail(NewValidationError("tool name is required"))
	}

	def, ok := d.registry.Get(req.ToolName)
	if !ok {
		return fail(NewNotFoundError(req.ToolName))
	}
	if def.ExecutionContext != toolregistry.ExecServer {
		return fail(NewMisroutedError(req.ToolName))
	}

	if err := d.registry.ValidateArguments(req.ToolName, req.Parameters); err != nil {
		return fail(NewValidationError("%v", err))
	}

	validation, err := d.validator.ValidateContext(ctx, req.SessionID, req.ReflinkID)
	if err != nil {
		return fail(NewAuthorizationError("context validation failed: %v", err))
	}
	if !validation.Valid {
		if d.metrics != nil {
			d.metrics.AuthorizationDeniedTotal.WithLabelValues(req.ToolName).Inc()
		}
		return fail(NewAuthorizationError("%s", validation.Reason))
	}

	level := validation.AccessLevel
	if !level.Valid() {
		level = accessgate.AccessBasic
	}
	meta.AccessLevel = level
	// Budget is surfaced only when a reflink is present; deduction is the
	// usage tracker's job, never the dispatcher's.
	if req.ReflinkID != "" {
		meta.CostTracking = validation.RemainingBudget
	}

	spec, ok := d.handlers[req.ToolName]
	if !ok || spec.Handler == nil {
		return fail(NewHandlerError(fmt.Errorf("no handler registered for tool: %s", req.ToolName)))
	}

	if spec.MinAccess != "" && !level.AtLeast(spec.MinAccess) {
		if d.metrics != nil {
			d.metrics.AuthorizationDeniedTotal.WithLabelValues(req.ToolName).Inc()
		}
		return fail(NewAuthorizationError("tool %s requires %s access", req.ToolName, spec.MinAccess))
	}

	execCtx := ExecutionContext{
		SessionID:   req.SessionID,
		AccessLevel: level,
		ReflinkID:   req.ReflinkID,
		UserID:      req.UserID,
	}

	data, err := invoke(ctx, spec.Handler, execCtx, req.Parameters)
	if err != nil {
		return fail(AsError(err))
	}

	d.logger.Debug().
		Str("tool", req.ToolName).
		Str("session_id", req.SessionID).
		Msg("Tool call completed")

	return ToolResult{Success: true, Data: data, Metadata: meta}
}

// invoke runs a handler and converts panics into errors so nothing escapes
// the dispatcher boundary.
func invoke(ctx context.Context, h Handler, execCtx ExecutionContext, args map[string]interface{}) (out interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewHandlerError(fmt.Errorf("handler panicked: %v", r))
		}
	}()
	return h(ctx, execCtx, args)
}

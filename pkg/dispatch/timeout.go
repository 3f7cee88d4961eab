package dispatch

import (
	"context"
	"time"
)

// ExecuteWithTimeout races Execute against a timer. On expiry it returns a
// timeout failure without aborting the in-flight handler; there is no
// cancellation propagation into handlers.
func (d *Dispatcher) ExecuteWithTimeout(ctx context.Context, req Request, timeout time.Duration) ToolResult {
	if timeout <= 0 {
		return d.Execute(ctx, req)
	}

	start := time.Now()
	resultCh := make(chan ToolResult, 1)

	go func() {
		resultCh <- d.Execute(ctx, req)
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case result := <-resultCh:
		return result
	case <-timer.C:
		d.logger.Error().
			Str("tool", req.ToolName).
			Dur("timeout", timeout).
			Msg("Tool execution timeout")
		return ToolResult{
			Success: false,
			Error:   NewTimeoutError(req.ToolName, "execution exceeded "+timeout.String()),
			Metadata: Metadata{
				Timestamp:       start,
				ExecutionTimeMS: time.Since(start).Milliseconds(),
				Source:          "server",
				SessionID:       req.SessionID,
				ToolCallID:      req.ToolCallID,
			},
		}
	}
}

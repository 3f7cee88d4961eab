package gateway

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/arvell/portico/pkg/dispatch"
)

func TestClientRegistry(t *testing.T) {
	r := NewClientRegistry()
	assert.Equal(t, 0, r.Count())

	a := &Client{ID: "a", ConnectedAt: time.Now()}
	b := &Client{ID: "b", ConnectedAt: time.Now()}
	r.Add(a)
	r.Add(b)
	assert.Equal(t, 2, r.Count())
	assert.Len(t, r.All(), 2)

	r.Remove("a")
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, "b", r.All()[0].ID)

	// Removing an unknown id is a no-op.
	r.Remove("missing")
	assert.Equal(t, 1, r.Count())
}

func TestBroadcaster_NoClientsIsNoop(t *testing.T) {
	b := NewBroadcaster(NewClientRegistry(), zerolog.Nop())

	// Must not panic or block with nobody connected.
	b.Broadcast("tool_call_start", map[string]string{"tool": "echo"})
	b.ToolCallStart(dispatch.Event{ToolName: "echo"})
	b.ToolCallComplete(dispatch.Event{ToolName: "echo", Success: true})
}

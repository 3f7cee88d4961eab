package gateway

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/arvell/portico/pkg/dispatch"
)

// EventMessage is the wire shape of one broadcast telemetry event.
type EventMessage struct {
	Type      string      `json:"type"`
	Event     string      `json:"event"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"ts"`
	Seq       uint64      `json:"seq"`
}

// Broadcaster fans telemetry events out to all connected observers. It
// implements dispatch.Sink.
type Broadcaster struct {
	clients *ClientRegistry
	logger  zerolog.Logger
	seq     uint64
}

// NewBroadcaster creates a broadcaster over the client registry.
func NewBroadcaster(clients *ClientRegistry, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		clients: clients,
		logger:  logger.With().Str("component", "broadcaster").Logger(),
	}
}

// Broadcast sends an event to every connected client.
func (b *Broadcaster) Broadcast(event string, data interface{}) {
	msg := EventMessage{
		Type:      "event",
		Event:     event,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
		Seq:       atomic.AddUint64(&b.seq, 1),
	}

	clients := b.clients.All()
	if len(clients) == 0 {
		return
	}

	for _, client := range clients {
		if err := client.WriteJSON(msg); err != nil {
			b.logger.Warn().
				Err(err).
				Str("client_id", client.ID).
				Str("event", event).
				Msg("Failed to broadcast to client")
		}
	}
}

// ToolCallStart implements dispatch.Sink.
func (b *Broadcaster) ToolCallStart(ev dispatch.Event) {
	b.Broadcast("tool_call_start", ev)
}

// ToolCallComplete implements dispatch.Sink.
func (b *Broadcaster) ToolCallComplete(ev dispatch.Event) {
	b.Broadcast("tool_call_complete", ev)
}

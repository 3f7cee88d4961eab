package gateway

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one connected websocket observer.
type Client struct {
	ID          string
	ConnectedAt time.Time

	mu   sync.Mutex
	conn *websocket.Conn
}

// WriteJSON sends a JSON message to the client. Writes are serialized per
// connection.
func (c *Client) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(v)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// ClientRegistry tracks connected websocket observers.
type ClientRegistry struct {
	mu      sync.RWMutex
	clients map[string]*Client
}

// NewClientRegistry creates an empty registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{clients: make(map[string]*Client)}
}

// Add registers a client.
func (r *ClientRegistry) Add(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients[c.ID] = c
}

// Remove drops a client.
func (r *ClientRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
}

// All returns a snapshot of connected clients.
func (r *ClientRegistry) All() []*Client {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out
}

// Count returns the number of connected clients.
func (r *ClientRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.clients)
}

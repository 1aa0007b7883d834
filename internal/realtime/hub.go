package realtime

import (
	"encoding/json"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Client represents a single websocket client connection.
// The actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub keeps the open shell connections and pushes board and timer events to them.
// There is a single local user, so every client gets every message.
type Hub struct {
	mu      sync.RWMutex
	clients map[Client]struct{}
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{clients: make(map[Client]struct{})}
}

// Register adds a client
func (h *Hub) Register(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = struct{}{}
}

// Unregister removes a client
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Broadcast sends a message to every client
func (h *Hub) Broadcast(message []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if ok := c.Send(message); !ok {
			// write failed; the handler's read loop cleans it up
			log.Debug("websocket send failed")
		}
	}
}

// BroadcastJSON marshals v and broadcasts it
func (h *Hub) BroadcastJSON(v any) {
	if h.Len() == 0 {
		return
	}
	bytes, err := json.Marshal(v)
	if err != nil {
		log.WithError(err).Error("failed to encode event")
		return
	}
	h.Broadcast(bytes)
}

package ws

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/vybe-social/vybe/internal/presence"
)

// Hub holds the live clients keyed by connection id. Routing decisions
// belong to the presence registry: the hub only resolves a connection id
// to its client and writes to it.
type Hub struct {
	presence *presence.Registry

	mu      sync.RWMutex
	clients map[uuid.UUID]*Client
}

func NewHub(registry *presence.Registry) *Hub {
	return &Hub{
		presence: registry,
		clients:  make(map[uuid.UUID]*Client),
	}
}

// Register adds the client and makes it the user's live connection.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c.connID] = c
	total := len(h.clients)
	h.mu.Unlock()

	h.presence.Register(c.userID, c.connID)
	log.Printf("ws hub: user %s connected (%d total)", c.userID, total)
}

// Unregister drops the client. The presence entry is removed only if
// this connection still owns it; a reconnect that already replaced the
// mapping is left alone.
func (h *Hub) Unregister(c *Client) {
	h.presence.Unregister(c.connID)

	h.mu.Lock()
	if _, ok := h.clients[c.connID]; ok {
		delete(h.clients, c.connID)
		close(c.send)
		close(c.done)
	}
	total := len(h.clients)
	h.mu.Unlock()

	log.Printf("ws hub: user %s disconnected (%d total)", c.userID, total)
}

// SendToUser delivers data to the user's live connection, if any.
// Offline users and full send buffers drop the event silently.
// The read lock is held across the channel send: Unregister closes the
// send channel under the write lock, so the buffered send can never hit
// a closed channel.
func (h *Hub) SendToUser(userID uuid.UUID, data []byte) {
	connID, ok := h.presence.Lookup(userID)
	if !ok {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	client, ok := h.clients[connID]
	if !ok {
		return
	}

	select {
	case client.send <- data:
	default:
	}
}

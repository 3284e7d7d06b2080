package websocket

import (
	"context"
	"sync"

	"university-assistant-be/internal/pkg/logger"

	"github.com/google/uuid"
)

// Hub tracks live connections. Sessions never talk to each other, so the hub
// only registers, counts and closes clients.
type Hub struct {
	clients map[uuid.UUID]*Client

	// Clients that connected after shutdown began. They are never counted;
	// their send queue is closed when their read loop unregisters.
	rejected map[uuid.UUID]*Client

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	logger logger.ILogger
}

func NewHub(log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID]*Client),
		rejected:   make(map[uuid.UUID]*Client),
		logger:     log,
	}
}

// Run serves registrations. Once ctx is done it closes every connection and
// rejects new ones, but keeps accepting unregistrations so exiting read loops
// never block.
func (h *Hub) Run(ctx context.Context) {
	done := ctx.Done()
	closing := false

	for {
		select {
		case client := <-h.register:
			if closing {
				client.closeConn()
				h.mu.Lock()
				h.rejected[client.ID] = client
				h.mu.Unlock()
				h.logger.Info("Hub", "Rejected client during shutdown", map[string]interface{}{"client_id": client.ID})
				continue
			}
			h.mu.Lock()
			h.clients[client.ID] = client
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client connected", map[string]interface{}{"client_id": client.ID, "clients": n})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client.ID]; ok {
				delete(h.clients, client.ID)
				close(client.Send)
			} else if _, ok := h.rejected[client.ID]; ok {
				delete(h.rejected, client.ID)
				close(client.Send)
				h.mu.Unlock()
				continue
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client disconnected", map[string]interface{}{"client_id": client.ID, "clients": n})

		case <-done:
			done = nil
			closing = true
			h.closeAll()
		}
	}
}

// Count returns the number of live connections.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) closeAll() {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients {
		// closing the conn fails the pending read, and readPump unregisters
		c.closeConn()
	}
	h.logger.Info("Hub", "Closed all connections", map[string]interface{}{"clients": len(h.clients)})
}

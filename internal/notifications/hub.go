package notifications

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"commentary/internal/middleware"
	"commentary/internal/observability"

	"github.com/gofiber/websocket/v2"
)

// Max concurrent event-stream subscribers.
const maxTotalConns = 10000

// ErrConnectionLimit is returned by Register when the hub is full.
var ErrConnectionLimit = errors.New("server connection limit reached")

// Hub tracks the websocket clients subscribed to comment events.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*Client]struct{}
	stopOnce sync.Once
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]struct{})}
}

// Name returns a human-readable identifier for this hub.
func (h *Hub) Name() string { return "comment hub" }

// Register adds a client for conn.
func (h *Hub) Register(conn *websocket.Conn) (*Client, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) >= maxTotalConns {
		return nil, ErrConnectionLimit
	}

	client := NewClient(h, conn)
	h.clients[client] = struct{}{}
	observability.WebSocketConnectionsTotal.Inc()
	return client, nil
}

// UnregisterClient removes client and closes its send queue. Repeated calls
// are ignored.
func (h *Hub) UnregisterClient(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client]; !ok {
		return
	}
	delete(h.clients, client)
	close(client.Send)
	observability.WebSocketConnectionsTotal.Dec()
}

// Count returns the number of registered clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// BroadcastAll sends message to every connected client.
func (h *Hub) BroadcastAll(message string) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	data := []byte(message)
	for c := range h.clients {
		c.TrySend(data)
	}
}

// StartWiring forwards every event received by the Notifier's subscription to
// the hub's clients.
func (h *Hub) StartWiring(ctx context.Context, n *Notifier) error {
	return n.StartCommentSubscriber(ctx, h.BroadcastAll)
}

// Shutdown drops every client and closes its send queue. Each client's write
// pump then sends the close frame, so the connection keeps a single writer.
func (h *Hub) Shutdown(_ context.Context) error {
	h.stopOnce.Do(func() {
		h.mu.Lock()
		defer h.mu.Unlock()

		for client := range h.clients {
			delete(h.clients, client)
			close(client.Send)
			observability.WebSocketConnectionsTotal.Dec()
		}
		middleware.Logger.Info("comment hub stopped", slog.String("hub", h.Name()))
	})
	return nil
}

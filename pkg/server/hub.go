package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/proptree/proptree/pkg/mount"
)

// LiveMessageType is the type of a message pushed to live clients.
type LiveMessageType string

const (
	// LiveMount carries the new content of a target.
	LiveMount LiveMessageType = "mount"

	// LiveError reports a composition failure for the target.
	LiveError LiveMessageType = "error"
)

// LiveMessage is sent to browsers over the live socket.
type LiveMessage struct {
	Type   LiveMessageType `json:"type"`
	Target string          `json:"target"`
	HTML   string          `json:"html,omitempty"`
	ETag   string          `json:"etag,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// liveClient is one browser connection watching a target. Writes are
// serialized because a connection supports a single concurrent writer.
type liveClient struct {
	conn   *websocket.Conn
	target string
	mu     sync.Mutex
}

func (c *liveClient) send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub pushes re-mounted content to the browsers watching each target.
type Hub struct {
	clients  map[*liveClient]struct{}
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
	metrics  *metrics
}

func newHub(logger *slog.Logger, m *metrics) *Hub {
	return &Hub{
		clients: make(map[*liveClient]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		logger:  logger,
		metrics: m,
	}
}

// Serve upgrades the request and keeps the client registered for target
// until it disconnects. The current content, if any, is sent first.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, target string, current *mount.Page) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("live upgrade failed", "target", target, "error", err)
		return
	}
	c := &liveClient{conn: conn, target: target}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.metrics.liveClients.Inc()
	h.logger.Debug("live client connected", "target", target)

	if current != nil {
		if data, err := json.Marshal(mountMessage(*current)); err == nil {
			_ = c.send(data)
		}
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

func (h *Hub) remove(c *liveClient) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		h.metrics.liveClients.Dec()
		c.conn.Close()
	}
}

// Publish sends the page to every client watching its target.
func (h *Hub) Publish(p mount.Page) {
	h.broadcast(mountMessage(p))
}

// PublishError reports a failed composition to the clients of target.
func (h *Hub) PublishError(target string, err error) {
	h.broadcast(LiveMessage{Type: LiveError, Target: target, Error: err.Error()})
}

func (h *Hub) broadcast(msg LiveMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.RLock()
	clients := make([]*liveClient, 0, len(h.clients))
	for c := range h.clients {
		if c.target == msg.Target {
			clients = append(clients, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(data); err != nil {
			h.remove(c)
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*liveClient]struct{})
	h.mu.Unlock()

	for c := range clients {
		h.metrics.liveClients.Dec()
		c.conn.Close()
	}
}

func mountMessage(p mount.Page) LiveMessage {
	return LiveMessage{Type: LiveMount, Target: p.Target, HTML: p.Body, ETag: p.ETag}
}

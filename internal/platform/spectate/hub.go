// Package spectate streams Breakout views to websocket clients so an
// external renderer can watch a game in progress.
package spectate

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

const (
	// DefaultWriteTimeout bounds a single frame write to one client.
	DefaultWriteTimeout = time.Second
	// DefaultEvery is how many ticks pass between broadcasts.
	DefaultEvery = 4
)

// SafeWriter serialises writes to one websocket connection.
type SafeWriter struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// NewSafeWriter wraps conn.
func NewSafeWriter(conn *websocket.Conn) *SafeWriter {
	return &SafeWriter{conn: conn}
}

// WriteMessage writes one message with a deadline.
func (w *SafeWriter) WriteMessage(messageType int, data []byte, timeout time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if timeout > 0 {
		//nolint:errcheck // deadline errors surface on the write
		w.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return w.conn.WriteMessage(messageType, data)
}

// Close closes the connection.
func (w *SafeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.Close()
}

// Hub tracks spectator connections.
type Hub struct {
	upgrader websocket.Upgrader
	log      *log.Logger
	timeout  time.Duration

	mu      sync.Mutex
	clients map[*SafeWriter]struct{}
	last    []byte
}

// NewHub creates a hub. A nil logger discards output.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		log:     logger,
		timeout: DefaultWriteTimeout,
		clients: make(map[*SafeWriter]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client. The latest
// frame, if any, is sent immediately.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	client := NewSafeWriter(conn)

	h.mu.Lock()
	h.clients[client] = struct{}{}
	last := h.last
	h.mu.Unlock()

	h.log.Info("spectator joined", "remote", r.RemoteAddr)

	if last != nil {
		if err := client.WriteMessage(websocket.TextMessage, last, h.timeout); err != nil {
			h.drop(client)
			return
		}
	}

	// Spectators never send anything useful; reading detects the close.
	go func() {
		defer h.drop(client)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Broadcast marshals v once and sends it to every client. Clients whose
// write fails are dropped.
func (h *Hub) Broadcast(v breakout.View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("spectate: cannot marshal view: %w", err)
	}

	h.mu.Lock()
	h.last = data
	clients := make([]*SafeWriter, 0, len(h.clients))
	for c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	for _, c := range clients {
		if err := c.WriteMessage(websocket.TextMessage, data, h.timeout); err != nil {
			h.log.Debug("dropping spectator", "error", err)
			h.drop(c)
		}
	}
	return nil
}

// Clients returns the number of connected spectators.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[*SafeWriter]struct{})
	h.mu.Unlock()

	for c := range clients {
		c.Close()
	}
}

func (h *Hub) drop(c *SafeWriter) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.Close()
		h.log.Info("spectator left")
	}
}

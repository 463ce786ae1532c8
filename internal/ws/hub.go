package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 32
)

const (
	EventParticipantRegistered = "participant_registered"
	EventPhotoUploaded         = "photo_uploaded"
	EventPhotoDeleted          = "photo_deleted"
	EventQuizSubmitted         = "quiz_submitted"
	EventFlagsChanged          = "flags_changed"
)

type WSMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans admin events out to every connected admin client. Each client has
// its own writer goroutine; Broadcast only enqueues, and a client whose queue
// is full is dropped.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]*client
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
	}
}

func (h *Hub) AddConnection(conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	h.clients[conn] = c
	total := len(h.clients)
	h.mu.Unlock()

	go c.writePump()
	slog.Info("ws: admin connected", "total", total)
}

func (h *Hub) RemoveConnection(conn *websocket.Conn) {
	h.mu.Lock()
	c, ok := h.clients[conn]
	if ok {
		h.drop(c)
	}
	total := len(h.clients)
	h.mu.Unlock()

	if ok {
		slog.Info("ws: admin disconnected", "total", total)
	}
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

func (h *Hub) Broadcast(message WSMessage) {
	data, err := json.Marshal(message)
	if err != nil {
		slog.Error("ws: marshal error", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			slog.Warn("ws: admin client too slow, dropping")
			h.drop(c)
		}
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(c *client) {
	delete(h.clients, c.conn)
	close(c.send)
	// Unblocks both the writer and the handler's read loop.
	c.conn.Close()
}

func (c *client) writePump() {
	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			slog.Warn("ws: write error", "error", err)
			c.conn.Close()
			// Drain so Broadcast never sees a full queue from a dead writer.
			for range c.send {
			}
			return
		}
	}
}

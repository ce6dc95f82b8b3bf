package communication

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	sendBuffer   = 256
	pingInterval = 30 * time.Second
	writeTimeout = 10 * time.Second
)

// Hub fans frames out to every connected browser. It remembers the latest
// state and controls frames so a late client sees the current board.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	state    []byte
	controls []byte
}

type client struct {
	send chan []byte
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*client]struct{})}
}

func (h *Hub) Broadcast(f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		log.Error().Err(err).Str("type", f.Type).Msg("encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	switch f.Type {
	case FrameState:
		h.state = data
	case FrameControls:
		h.controls = data
	}
	for c := range h.clients {
		c.push(data)
	}
}

func (h *Hub) register() *client {
	c := &client{send: make(chan []byte, sendBuffer)}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.controls != nil {
		c.push(h.controls)
	}
	if h.state != nil {
		c.push(h.state)
	}
	h.clients[c] = struct{}{}
	return c
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// push drops the frame when the client is too far behind.
func (c *client) push(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Warn().Msg("client send buffer full, dropping frame")
	}
}

// writeLoop copies queued frames to conn and pings idle connections. It returns
// when the client is unregistered or a write fails.
func (c *client) writeLoop(conn *websocket.Conn) error {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeTimeout))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return err
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return err
			}
		}
	}
}

package ws

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/metrics"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Audio arrives base64-encoded
	// inside order_audio messages.
	maxMessageSize = 4 << 20
)

// Client represents a single WebSocket connection. A room is one counter
// or table; every device in it sees every quote.
type Client struct {
	Hub      *Hub
	Conn     *websocket.Conn
	Send     chan []byte
	RoomID   string
	CallerID string
}

// Hub maintains active rooms and broadcasts messages. It remembers the last
// retained message of each room so a device joining mid-order sees the
// current quote.
type Hub struct {
	Rooms      map[string]map[*Client]bool // roomID -> set of clients
	Register   chan *Client
	Unregister chan *Client
	Broadcast  chan *RoomMessage
	Metrics    *metrics.SessionMetrics

	retained map[string][]byte
	clients  int
	done     chan struct{}
	mu       sync.RWMutex
}

// RoomMessage carries a message destined for a specific room.
type RoomMessage struct {
	RoomID  string
	Message []byte
	Sender  *Client // nil for system messages
	// Retain replaces the room's replayed message.
	Retain bool
}

// NewHub creates and returns a new Hub instance. m may be nil.
func NewHub(m *metrics.SessionMetrics) *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Broadcast:  make(chan *RoomMessage),
		Metrics:    m,
		retained:   make(map[string][]byte),
		done:       make(chan struct{}),
	}
}

// Run handles register, unregister, and broadcast events until ctx is
// done, then disconnects every client. It should be launched as a goroutine.
func (h *Hub) Run(ctx context.Context) {
	log := logger.Get()
	defer h.shutdown()

	for {
		select {
		case <-ctx.Done():
			return

		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.RoomID] == nil {
				h.Rooms[client.RoomID] = make(map[*Client]bool)
			}
			h.Rooms[client.RoomID][client] = true
			h.clients++
			if msg, ok := h.retained[client.RoomID]; ok {
				h.deliver(client, msg)
			}
			h.mu.Unlock()
			h.Metrics.SetOccupancy(h.occupancy())

			log.Info("client registered",
				zap.String("room_id", client.RoomID),
				zap.String("caller_id", client.CallerID),
			)

		case client := <-h.Unregister:
			h.mu.Lock()
			removed := h.remove(client)
			h.mu.Unlock()
			if !removed {
				continue
			}
			h.Metrics.SetOccupancy(h.occupancy())

			log.Info("client unregistered",
				zap.String("room_id", client.RoomID),
				zap.String("caller_id", client.CallerID),
			)

		case msg := <-h.Broadcast:
			h.mu.Lock()
			if msg.Retain && len(h.Rooms[msg.RoomID]) > 0 {
				h.retained[msg.RoomID] = msg.Message
			}
			var slow []*Client
			for client := range h.Rooms[msg.RoomID] {
				if msg.Sender != nil && client == msg.Sender {
					continue
				}
				if !h.deliver(client, msg.Message) {
					slow = append(slow, client)
				}
			}
			for _, client := range slow {
				h.remove(client)
				h.Metrics.ObserveDrop()
				log.Warn("dropped slow client",
					zap.String("room_id", client.RoomID),
					zap.String("caller_id", client.CallerID),
				)
			}
			h.mu.Unlock()
			h.Metrics.ObserveBroadcast()
			if len(slow) > 0 {
				h.Metrics.SetOccupancy(h.occupancy())
			}
		}
	}
}

// Join registers client unless the hub has stopped.
func (h *Hub) Join(client *Client) bool {
	select {
	case h.Register <- client:
		return true
	case <-h.done:
		return false
	}
}

// Leave unregisters client. It does not block once the hub has stopped.
func (h *Hub) Leave(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// Publish hands msg to the hub unless the hub has stopped.
func (h *Hub) Publish(msg *RoomMessage) bool {
	select {
	case h.Broadcast <- msg:
		return true
	case <-h.done:
		return false
	}
}

// RoomSize returns the number of clients registered in roomID.
func (h *Hub) RoomSize(roomID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Rooms[roomID])
}

// Retained returns the message replayed to devices joining roomID.
func (h *Hub) Retained(roomID string) ([]byte, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msg, ok := h.retained[roomID]
	return msg, ok
}

func (h *Hub) occupancy() (int, int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients, len(h.Rooms)
}

// deliver queues msg without blocking and reports whether it fit.
func (h *Hub) deliver(client *Client, msg []byte) bool {
	select {
	case client.Send <- msg:
		return true
	default:
		return false
	}
}

// remove drops client from its room and closes its send channel. A room
// that empties forgets its retained message. Callers hold h.mu.
func (h *Hub) remove(client *Client) bool {
	clients, ok := h.Rooms[client.RoomID]
	if !ok || !clients[client] {
		return false
	}
	delete(clients, client)
	close(client.Send)
	h.clients--
	if len(clients) == 0 {
		delete(h.Rooms, client.RoomID)
		delete(h.retained, client.RoomID)
	}
	return true
}

func (h *Hub) shutdown() {
	close(h.done)
	h.mu.Lock()
	for _, clients := range h.Rooms {
		for client := range clients {
			h.remove(client)
		}
	}
	h.mu.Unlock()
	h.Metrics.SetOccupancy(0, 0)
	logger.Get().Info("hub stopped")
}

// Queue hands msg to a registered client without blocking. It reports false
// once the hub has dropped the client.
func (c *Client) Queue(msg []byte) bool {
	c.Hub.mu.RLock()
	defer c.Hub.mu.RUnlock()
	if !c.Hub.Rooms[c.RoomID][c] {
		return false
	}
	return c.Hub.deliver(c, msg)
}

// ReadPump reads messages from the WebSocket connection. It is intended to be
// run in a per-client goroutine. The provided handler is called for each
// incoming message.
func (c *Client) ReadPump(handler func(*Client, []byte)) {
	defer func() {
		c.Hub.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseNormalClosure,
			) {
				logger.Get().Warn("unexpected websocket close",
					zap.String("room_id", c.RoomID),
					zap.String("caller_id", c.CallerID),
					zap.Error(err),
				)
			}
			break
		}
		handler(c, message)
	}
}

// WritePump sends messages from the Send channel to the WebSocket connection.
// It also sends periodic pings to keep the connection alive. It is intended to
// be run in a per-client goroutine.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Hub closed the channel.
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.Conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

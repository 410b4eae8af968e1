package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/cardapio-api/internal/logger"
	"github.com/windoze95/cardapio-api/internal/middleware"
	"github.com/windoze95/cardapio-api/internal/service"
	"go.uber.org/zap"
)

// WebSocket message types for the order session protocol.
const (
	MsgTypeOrderText  = "order_text"  // Client sends order text to price
	MsgTypeOrderAudio = "order_audio" // Client sends a recorded order
	MsgTypeOrderQuote = "order_quote" // Priced order, broadcast to the room
	MsgTypeError      = "error"       // Error message
	MsgTypeConnected  = "connected"   // Connection confirmed
)

const quoteTimeout = 30 * time.Second

// WSMessage is the envelope for all messages sent over the order WebSocket.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// OrderTextPayload is sent by the client with order text.
type OrderTextPayload struct {
	Text string `json:"text"`
}

// OrderAudioPayload is sent by the client with a recorded order.
type OrderAudioPayload struct {
	AudioData []byte `json:"audio_data"` // base64-encoded
	Filename  string `json:"filename,omitempty"`
}

// OrderQuotePayload carries a priced order.
type OrderQuotePayload struct {
	CallerID   string `json:"caller_id"`
	Transcript string `json:"transcript,omitempty"`
	service.Quote
}

// ErrorPayload carries an error message to the client.
type ErrorPayload struct {
	Message string `json:"message"`
}

// ConnectedPayload confirms a successful connection.
type ConnectedPayload struct {
	RoomID   string `json:"room_id"`
	CallerID string `json:"caller_id"`
}

// OrderSessionHandler manages WebSocket connections for live order rooms.
type OrderSessionHandler struct {
	Hub          *Hub
	JwtSecret    string
	OrderService *service.OrderService
	VoiceService *service.VoiceService
	upgrader     websocket.Upgrader
}

// NewOrderSessionHandler returns a new OrderSessionHandler. Browser
// connections are accepted from allowedOrigins and localhost.
func NewOrderSessionHandler(hub *Hub, jwtSecret string, orderService *service.OrderService, voiceService *service.VoiceService, allowedOrigins []string) *OrderSessionHandler {
	return &OrderSessionHandler{
		Hub:          hub,
		JwtSecret:    jwtSecret,
		OrderService: orderService,
		VoiceService: voiceService,
		upgrader: websocket.Upgrader{
			CheckOrigin:     checkOrigin(allowedOrigins),
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// Devices and the skill backend send no Origin.
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if strings.EqualFold(origin, o) {
				return true
			}
		}
		// Allow localhost for development
		return strings.HasPrefix(origin, "http://localhost:") || origin == "http://localhost"
	}
}

// HandleOrderSession upgrades an HTTP request to a WebSocket connection
// for an order room. Authentication is done via a "token" query parameter
// because WebSocket connections cannot easily use Authorization headers.
func (h *OrderSessionHandler) HandleOrderSession(c *gin.Context) {
	log := logger.FromContext(c)

	roomID := c.Param("room_id")
	if roomID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "room_id is required"})
		return
	}

	// Authenticate via query param token
	tokenString := c.Query("token")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "token query parameter is required"})
		return
	}

	callerID, err := middleware.ParseAccessToken(h.JwtSecret, tokenString)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return
	}

	// Upgrade to WebSocket
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("websocket upgrade failed",
			zap.String("room_id", roomID),
			zap.String("caller_id", callerID),
			zap.Error(err),
		)
		return
	}

	// Create client and register with hub
	client := &Client{
		Hub:      h.Hub,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		RoomID:   roomID,
		CallerID: callerID,
	}
	// The greeting goes first so it precedes any replayed quote.
	client.Send <- encode(MsgTypeConnected, ConnectedPayload{
		RoomID:   roomID,
		CallerID: callerID,
	})
	if !h.Hub.Join(client) {
		conn.Close()
		return
	}

	log.Info("order session started",
		zap.String("room_id", roomID),
		zap.String("caller_id", callerID),
	)

	// Start read and write pumps
	go client.WritePump()
	go client.ReadPump(h.handleMessage)
}

// handleMessage parses an incoming WebSocket message and routes it to the
// appropriate handler.
func (h *OrderSessionHandler) handleMessage(client *Client, data []byte) {
	var msg WSMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		h.sendError(client, "invalid message format")
		return
	}

	logger.Get().Debug("received ws message",
		zap.String("type", msg.Type),
		zap.String("room_id", client.RoomID),
		zap.String("caller_id", client.CallerID),
	)

	switch msg.Type {
	case MsgTypeOrderText:
		h.handleOrderText(client, msg.Payload)
	case MsgTypeOrderAudio:
		h.handleOrderAudio(client, msg.Payload)
	default:
		h.sendError(client, "unknown message type: "+msg.Type)
	}
}

// handleOrderText prices order text and shares the quote with the room.
func (h *OrderSessionHandler) handleOrderText(client *Client, payload json.RawMessage) {
	var in OrderTextPayload
	if err := json.Unmarshal(payload, &in); err != nil {
		h.sendError(client, "invalid order text payload")
		return
	}
	if strings.TrimSpace(in.Text) == "" {
		h.sendError(client, "text cannot be empty")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
	defer cancel()

	quote := h.OrderService.Quote(ctx, service.ChannelLive, in.Text)
	h.broadcast(client, MsgTypeOrderQuote, OrderQuotePayload{
		CallerID: client.CallerID,
		Quote:    quote,
	})
}

// handleOrderAudio transcribes a recorded order, prices it and shares the
// quote with the room.
func (h *OrderSessionHandler) handleOrderAudio(client *Client, payload json.RawMessage) {
	log := logger.Get()

	var in OrderAudioPayload
	if err := json.Unmarshal(payload, &in); err != nil {
		h.sendError(client, "invalid order audio payload")
		return
	}
	if len(in.AudioData) == 0 {
		h.sendError(client, "audio_data is required")
		return
	}
	if h.VoiceService == nil {
		h.sendError(client, "voice orders are not enabled")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), quoteTimeout)
	defer cancel()

	log.Info("processing order from audio",
		zap.String("room_id", client.RoomID),
		zap.String("caller_id", client.CallerID),
	)

	vq, err := h.VoiceService.QuoteAudio(ctx, service.ChannelLive, in.AudioData, in.Filename)
	if err != nil {
		log.Error("failed to process order audio",
			zap.String("room_id", client.RoomID),
			zap.String("caller_id", client.CallerID),
			zap.Error(err),
		)
		h.sendError(client, "failed to process order audio")
		return
	}

	h.broadcast(client, MsgTypeOrderQuote, OrderQuotePayload{
		CallerID:   client.CallerID,
		Transcript: vq.Transcript,
		Quote:      vq.Quote,
	})
}

func encode(msgType string, payload interface{}) []byte {
	raw, _ := json.Marshal(payload)
	msg, _ := json.Marshal(WSMessage{
		Type:    msgType,
		Payload: raw,
	})
	return msg
}

// send delivers a message to a single client.
func (h *OrderSessionHandler) send(client *Client, msgType string, payload interface{}) {
	if !client.Queue(encode(msgType, payload)) {
		logger.Get().Debug("message not delivered",
			zap.String("room_id", client.RoomID),
			zap.String("caller_id", client.CallerID),
			zap.String("type", msgType),
		)
	}
}

// broadcast delivers a quote to everyone in the client's room, sender
// included, and keeps it for devices that join later.
func (h *OrderSessionHandler) broadcast(client *Client, msgType string, payload interface{}) {
	h.Hub.Publish(&RoomMessage{
		RoomID:  client.RoomID,
		Message: encode(msgType, payload),
		Retain:  msgType == MsgTypeOrderQuote,
	})
}

// sendError sends an error message to a single client.
func (h *OrderSessionHandler) sendError(client *Client, message string) {
	h.send(client, MsgTypeError, ErrorPayload{Message: message})
}

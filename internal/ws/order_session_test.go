package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/windoze95/cardapio-api/internal/ai"
	"github.com/windoze95/cardapio-api/internal/middleware"
	"github.com/windoze95/cardapio-api/internal/service"
	"github.com/windoze95/cardapio-api/internal/testutil"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// setupTestOrderSessionHandler creates an OrderSessionHandler with a mock
// speech provider and a running Hub.
func setupTestOrderSessionHandler() (*OrderSessionHandler, *testutil.MockSpeechProvider) {
	mockSpeech := &testutil.MockSpeechProvider{}
	orders := service.NewOrderService(testutil.TestInterpreter(), nil)
	voice := service.NewVoiceService(testutil.TestConfig(), mockSpeech, orders)
	hub := NewHub(nil)
	go hub.Run(context.Background())
	return NewOrderSessionHandler(hub, testSecret, orders, voice, nil), mockSpeech
}

// newTestClient creates a Client with a buffered Send channel and no real
// websocket.Conn, registered in roomID.
func newTestClient(hub *Hub, roomID, callerID string) *Client {
	client := &Client{
		Hub:      hub,
		Send:     make(chan []byte, 256),
		RoomID:   roomID,
		CallerID: callerID,
	}
	hub.Register <- client
	return client
}

// readMessage reads a single WSMessage from the client's Send channel with a
// short timeout to prevent tests from hanging.
func readMessage(t *testing.T, client *Client) WSMessage {
	t.Helper()
	select {
	case data := <-client.Send:
		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("failed to unmarshal message from Send channel: %v", err)
		}
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message on Send channel")
		return WSMessage{}
	}
}

// assertNoMoreMessages verifies nothing else is pending on the Send channel.
func assertNoMoreMessages(t *testing.T, client *Client) {
	t.Helper()
	select {
	case data := <-client.Send:
		t.Fatalf("unexpected extra message on Send channel: %s", string(data))
	case <-time.After(50 * time.Millisecond):
	}
}

func decodeQuote(t *testing.T, msg WSMessage) OrderQuotePayload {
	t.Helper()
	if msg.Type != MsgTypeOrderQuote {
		t.Fatalf("expected type %q, got %q (%s)", MsgTypeOrderQuote, msg.Type, msg.Payload)
	}
	var q OrderQuotePayload
	if err := json.Unmarshal(msg.Payload, &q); err != nil {
		t.Fatalf("failed to unmarshal OrderQuotePayload: %v", err)
	}
	return q
}

func expectError(t *testing.T, client *Client, want string) {
	t.Helper()
	msg := readMessage(t, client)
	if msg.Type != MsgTypeError {
		t.Fatalf("expected error type, got %q", msg.Type)
	}
	var errPayload ErrorPayload
	if err := json.Unmarshal(msg.Payload, &errPayload); err != nil {
		t.Fatalf("failed to unmarshal ErrorPayload: %v", err)
	}
	if errPayload.Message != want {
		t.Errorf("error message = %q, want %q", errPayload.Message, want)
	}
}

func orderTextMessage(text string) []byte {
	payload, _ := json.Marshal(OrderTextPayload{Text: text})
	data, _ := json.Marshal(WSMessage{Type: MsgTypeOrderText, Payload: payload})
	return data
}

// --- handleMessage tests ---

func TestHandleMessage_OrderTextBroadcastsToRoom(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	sender := newTestClient(h.Hub, "balcao", "totem-1")
	kitchen := newTestClient(h.Hub, "balcao", "cozinha")
	other := newTestClient(h.Hub, "mesa-2", "totem-2")

	h.handleMessage(sender, orderTextMessage("2 carne e 1 queijo"))

	for _, c := range []*Client{sender, kitchen} {
		q := decodeQuote(t, readMessage(t, c))
		if q.Total != 46 {
			t.Errorf("Total = %d, want 46", q.Total)
		}
		if q.CallerID != "totem-1" {
			t.Errorf("CallerID = %q, want totem-1", q.CallerID)
		}
		if len(q.Items) != 2 || q.Items[0].Key != "carne" || q.Items[0].Quantity != 2 {
			t.Errorf("Items = %+v", q.Items)
		}
	}
	assertNoMoreMessages(t, other)
}

func TestHandleMessage_OrderTextUnknown(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	h.handleMessage(client, orderTextMessage("lagosta"))

	q := decodeQuote(t, readMessage(t, client))
	if len(q.Unknown) != 1 || q.Unknown[0] != "lagosta" {
		t.Errorf("Unknown = %v", q.Unknown)
	}
	if !strings.HasPrefix(q.Speech, "Não encontrei nenhum sabor") {
		t.Errorf("Speech = %q", q.Speech)
	}
}

func TestHandleMessage_EmptyText(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	h.handleMessage(client, orderTextMessage("   "))
	expectError(t, client, "text cannot be empty")
	assertNoMoreMessages(t, client)
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	h.handleMessage(client, []byte("{not json"))
	expectError(t, client, "invalid message format")
}

func TestHandleMessage_UnknownType(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	data, _ := json.Marshal(WSMessage{Type: "chat_message", Payload: json.RawMessage(`{}`)})
	h.handleMessage(client, data)
	expectError(t, client, "unknown message type: chat_message")
}

func TestHandleMessage_OrderAudio(t *testing.T) {
	h, mockSpeech := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	mockSpeech.TranscribeAudioFunc = func(ctx context.Context, req ai.TranscriptionRequest) (string, error) {
		if string(req.Audio) != "fake-audio" {
			t.Errorf("audio = %q", req.Audio)
		}
		return "2 churros", nil
	}

	payload, _ := json.Marshal(OrderAudioPayload{AudioData: []byte("fake-audio"), Filename: "pedido.webm"})
	data, _ := json.Marshal(WSMessage{Type: MsgTypeOrderAudio, Payload: payload})
	h.handleMessage(client, data)

	q := decodeQuote(t, readMessage(t, client))
	if q.Transcript != "2 churros" {
		t.Errorf("Transcript = %q", q.Transcript)
	}
	if q.Total != 14 {
		t.Errorf("Total = %d, want 14", q.Total)
	}
}

func TestHandleMessage_OrderAudioMissing(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	data, _ := json.Marshal(WSMessage{Type: MsgTypeOrderAudio, Payload: json.RawMessage(`{}`)})
	h.handleMessage(client, data)
	expectError(t, client, "audio_data is required")
}

func TestHandleMessage_OrderAudioTranscriptionFails(t *testing.T) {
	h, mockSpeech := setupTestOrderSessionHandler()
	client := newTestClient(h.Hub, "balcao", "totem-1")

	mockSpeech.TranscribeAudioFunc = func(ctx context.Context, req ai.TranscriptionRequest) (string, error) {
		return "", context.DeadlineExceeded
	}

	payload, _ := json.Marshal(OrderAudioPayload{AudioData: []byte("fake-audio")})
	data, _ := json.Marshal(WSMessage{Type: MsgTypeOrderAudio, Payload: payload})
	h.handleMessage(client, data)
	expectError(t, client, "failed to process order audio")
}

// --- HandleOrderSession tests ---

func newSessionServer(h *OrderSessionHandler) *httptest.Server {
	r := gin.New()
	r.GET("/v1/ws/orders/:room_id", h.HandleOrderSession)
	return httptest.NewServer(r)
}

func TestHandleOrderSession_MissingToken(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	srv := newSessionServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/ws/orders/balcao")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestHandleOrderSession_BadToken(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	srv := newSessionServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/ws/orders/balcao?token=nope")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestHandleOrderSession_EndToEnd(t *testing.T) {
	h, _ := setupTestOrderSessionHandler()
	srv := newSessionServer(h)
	defer srv.Close()

	token, err := middleware.NewAccessToken(testSecret, "totem-1", time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/ws/orders/balcao?token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg WSMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read connected: %v", err)
	}
	if msg.Type != MsgTypeConnected {
		t.Fatalf("first message type = %q, want connected", msg.Type)
	}

	if err := conn.WriteMessage(websocket.TextMessage, orderTextMessage("3 pizza")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read quote: %v", err)
	}
	q := decodeQuote(t, msg)
	if q.Total != 48 {
		t.Errorf("Total = %d, want 48", q.Total)
	}
}

func TestCheckOrigin(t *testing.T) {
	check := checkOrigin([]string{"https://trailer.example"})
	tests := []struct {
		origin string
		want   bool
	}{
		{"", true},
		{"https://trailer.example", true},
		{"http://localhost:5173", true},
		{"https://evil.example", false},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.origin != "" {
			r.Header.Set("Origin", tt.origin)
		}
		if got := check(r); got != tt.want {
			t.Errorf("checkOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
		}
	}
}

// Package ws is the WebSocket edge of the relay: it owns connection
// lifecycle (accept, handshake, teardown) and the per-connection
// read/write goroutine pair. Separating read and write avoids
// head-of-line blocking when a client is slow.
package ws

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"linguasync/domain"
	"linguasync/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Handler upgrades HTTP requests and runs the connection state machine:
// CONNECTING -> READY -> CLOSED.
type Handler struct {
	log            *slog.Logger
	service        services.IRelayService
	bufferSize     int
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
}

func NewHandler(log *slog.Logger, service services.IRelayService,
	bufferSize int, allowedOrigins []string) *Handler {
	origins := make(map[string]bool)
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	h := &Handler{
		log:            log,
		service:        service,
		bufferSize:     bufferSize,
		allowedOrigins: origins,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.allowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true // allow non-browser clients
	}
	return h.allowedOrigins[origin]
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	ctx := r.Context()
	socketID := fmt.Sprintf("sock_%s", uuid.NewString())
	sink := NewSink(h.bufferSize)

	// Teardown must run exactly once no matter whether the read loop,
	// the write pump, or both observe the failure first.
	var once sync.Once
	teardown := func() {
		once.Do(func() {
			sink.Close()
			h.service.Disconnect(socketID)
			_ = conn.Close()
			h.log.Info("Client disconnected", "socket_id", socketID)
		})
	}
	defer teardown()

	// Handshake frames are queued before the participant becomes visible
	// to fan-out, so INIT and READY always precede any envelope on the
	// single ordered channel.
	_ = sink.Deliver(ctx, domain.NewInit(socketID))
	_ = sink.Deliver(ctx, domain.NewReady())

	if err := h.service.Connect(socketID, sink); err != nil {
		h.log.Error("Connection rejected", "socket_id", socketID, "error", err)
		_ = conn.Close()
		return
	}
	h.log.Info("Client connected", "socket_id", socketID)

	go h.writePump(conn, sink, teardown)

	// Read loop: one logical stream of inbound events per connection.
	// The router is invoked synchronously so a sender's messages are
	// processed in the order received.
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Warn("WebSocket closed unexpectedly", "socket_id", socketID, "error", err)
			}
			return
		}
		h.service.HandleInbound(ctx, socketID, raw)
	}
}

// writePump drains the sink to the socket. It is the connection's only
// writer, which gives delivery-order guarantees on a single channel for
// free.
func (h *Handler) writePump(conn *websocket.Conn, sink *Sink, teardown func()) {
	for {
		select {
		case <-sink.Closed():
			_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		case frame := <-sink.Frames():
			if err := conn.WriteJSON(frame); err != nil {
				teardown()
				return
			}
		}
	}
}

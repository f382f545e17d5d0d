package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"startuplink/auth"
	"startuplink/domain"
	"startuplink/domain/event"
	"startuplink/services"
	"startuplink/sink"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Clients send nothing but
	// control frames; appends go through the REST endpoint.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Allow connections from any origin (CORS handled by middleware)
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler serves the live feed: each socket opens its own feed on the
// resolved conversation and carries full snapshot frames whenever the
// conversation changes.
type WSHandler struct {
	log        *slog.Logger
	messages   services.IMessageService
	bufferSize int
}

func NewWSHandler(log *slog.Logger, messages services.IMessageService, bufferSize int) *WSHandler {
	return &WSHandler{log: log, messages: messages, bufferSize: bufferSize}
}

// ServeWS upgrades the connection and opens the live feed at /ws/dm/{peer}.
// The feed is released on every exit path, including abrupt disconnects.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	self, ok := auth.CurrentUser(r.Context())
	if !ok {
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}
	peer := domain.Participant(chi.URLParam(r, "peer"))

	stream := sink.NewStreamSink(h.log, h.bufferSize)
	conversation, err := h.messages.OpenFeed(self, peer, stream)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.messages.CloseFeed(self, conversation, stream)
		h.log.Debug("Upgrade failed", "error", err)
		return
	}

	h.log.Info("Live feed opened", "conversation", conversation, "participant", self)

	done := make(chan struct{})
	go h.readPump(conn, done)
	h.writePump(conn, stream, done)

	h.messages.CloseFeed(self, conversation, stream)
	_ = conn.Close()
	h.log.Info("Live feed released", "conversation", conversation, "participant", self)
}

// readPump discards inbound frames and signals when the client went away.
func (h *WSHandler) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Debug("Read error", "error", err)
			}
			return
		}
	}
}

// writePump turns fanout events into snapshot frames and keeps the
// connection alive with pings.
func (h *WSHandler) writePump(conn *websocket.Conn, stream *sink.StreamSink, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case evt := <-stream.Events:
			snapshot, ok := evt.(event.Snapshot)
			if !ok {
				continue
			}
			frame := snapshotFrame{
				Type:           "snapshot",
				ConversationID: snapshot.Conversation.String(),
				Messages:       toWireList(snapshot.Messages),
			}
			payload, err := json.Marshal(frame)
			if err != nil {
				h.log.Error("Frame marshal failed", "error", err)
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

package ws

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/reply"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/utils"
)

// Handler upgrades widget connections to a live conversation feed.
type Handler struct {
	engine   *reply.Engine
	upgrader websocket.Upgrader
}

// New creates the websocket handler.
func New(engine *reply.Engine) *Handler {
	return &Handler{
		engine: engine,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterRoutes mounts the websocket endpoint.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *Handler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	transcript, err := h.engine.Snapshot(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Errorf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	feed, cancel, err := h.engine.Subscribe(sessionID)
	if err != nil {
		h.writeJSON(conn, outgoingMessage{Type: "error", SessionID: sessionID, Data: err.Error(), Timestamp: time.Now().UnixMilli()})
		return
	}
	defer cancel()

	h.writeJSON(conn, outgoingMessage{Type: "transcript", SessionID: sessionID, Data: transcript, Timestamp: time.Now().UnixMilli()})

	done := make(chan struct{})
	go h.writeLoop(conn, sessionID, feed, done)

	h.readLoop(r, conn, sessionID)
	close(done)
}

// readLoop consumes inbound frames until the client disconnects. Malformed
// payloads are dropped rather than terminating the connection.
func (h *Handler) readLoop(r *http.Request, conn *websocket.Conn, sessionID string) {
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var inbound inboundMessage
		if err := json.Unmarshal(raw, &inbound); err != nil {
			logger.Log.Warnf("dropping malformed websocket payload for session %s: %v", sessionID, err)
			continue
		}
		if inbound.Type != "text" {
			continue
		}

		if err := h.engine.HandleUserMessage(r.Context(), sessionID, inbound.Text); err != nil {
			logger.Log.Warnf("websocket submission failed for session %s: %v", sessionID, err)
			return
		}
	}
}

// writeLoop is the single writer on the connection after the initial
// transcript frame.
func (h *Handler) writeLoop(conn *websocket.Conn, sessionID string, feed <-chan chatmodel.Message, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case message, open := <-feed:
			if !open {
				deadline := time.Now().Add(time.Second)
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "session closed"), deadline)
				return
			}
			h.writeJSON(conn, outgoingMessage{Type: "message", SessionID: sessionID, Data: message, Timestamp: time.Now().UnixMilli()})
		}
	}
}

func (h *Handler) writeJSON(conn *websocket.Conn, payload outgoingMessage) {
	if err := conn.WriteJSON(payload); err != nil {
		logger.Log.Debugf("websocket write failed: %v", err)
	}
}

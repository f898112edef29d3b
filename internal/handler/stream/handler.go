package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	chatmodel "github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/model/chat"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/internal/service/reply"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/logger"
	"github.com/tecnologiawebnetsystem/casa-decoracao-chat/pkg/utils"
)

// Handler streams one submission's lifecycle over Server-Sent Events.
type Handler struct {
	engine *reply.Engine
}

// New creates a new stream handler.
func New(engine *reply.Engine) *Handler {
	return &Handler{engine: engine}
}

// StreamResponse represents a streamed chunk.
type StreamResponse struct {
	Event     string             `json:"event"`
	SessionID string             `json:"sessionId,omitempty"`
	Message   *chatmodel.Message `json:"message,omitempty"`
	Finished  bool               `json:"finished,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// HandleStreamRequest submits the message and streams every appended
// message until this submission's bot reply lands. Blank submissions are
// dropped and the stream ends immediately after the start event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	feed, cancel, err := h.engine.Subscribe(sessionID)
	if err != nil {
		return err
	}
	defer cancel()

	utils.SetupSSEHeaders(w)

	h.sendSSE(w, flusher, StreamResponse{Event: "start", SessionID: sessionID})

	if err := h.engine.HandleUserMessage(ctx, sessionID, userMessage); err != nil {
		h.sendSSEError(w, flusher, fmt.Sprintf("failed to submit message: %v", err))
		return err
	}

	if strings.TrimSpace(userMessage) == "" {
		h.sendSSE(w, flusher, StreamResponse{Event: "end", SessionID: sessionID, Finished: true})
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			logger.Log.Debugf("stream closed by client for session %s", sessionID)
			return nil
		case message, open := <-feed:
			if !open {
				// Session torn down mid-stream.
				h.sendSSE(w, flusher, StreamResponse{Event: "end", SessionID: sessionID, Finished: true})
				return nil
			}

			h.sendSSE(w, flusher, StreamResponse{Event: "message", SessionID: sessionID, Message: &message})

			if message.Sender == chatmodel.SenderBot {
				h.sendSSE(w, flusher, StreamResponse{Event: "end", SessionID: sessionID, Finished: true})
				return nil
			}
		}
	}
}

func (h *Handler) sendSSE(w http.ResponseWriter, flusher http.Flusher, response StreamResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logger.Log.Errorf("failed to marshal SSE response: %v", err)
		return
	}

	fmt.Fprintf(w, "data: %s\n\n", data)
	flusher.Flush()
}

func (h *Handler) sendSSEError(w http.ResponseWriter, flusher http.Flusher, errorMsg string) {
	h.sendSSE(w, flusher, StreamResponse{Event: "error", Error: errorMsg})
}

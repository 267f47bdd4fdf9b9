// HTTP handler for the assistant chat endpoint. Translates HTTP requests
// into rag.ChatService calls and maps domain errors to HTTP codes.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/agritechlabs/sahayak/internal/domain/rag"
	"github.com/agritechlabs/sahayak/internal/infra/llm"
)

// ChatService is the minimal contract used by ChatHandler.
// rag.ChatService satisfies this interface.
type ChatService interface {
	Chat(ctx context.Context, input rag.ChatInput) (*rag.ChatResponse, error)
}

// ChatHandler handles assistant chat HTTP requests.
type ChatHandler struct {
	chat ChatService
}

// NewChatHandler creates a ChatHandler backed by the provided service.
func NewChatHandler(chat ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// ChatRequest is the request body for POST /api/v1/assistant/chat.
// The role never comes from the body; it is taken from the JWT claims.
type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
	Context   string `json:"context"`
}

// Chat handles POST /api/v1/assistant/chat.
//
// Response codes:
//   - 200 OK: structured chat response
//   - 400 Bad Request: invalid JSON or empty message
//   - 503 Service Unavailable: every generation provider is down
//   - 500 Internal Server Error: retrieval or unexpected failure
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	userID, err := getUserID(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	role, err := getRole(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	resp, err := h.chat.Chat(r.Context(), rag.ChatInput{
		Message:      req.Message,
		UserID:       userID,
		SessionID:    req.SessionID,
		ExtraContext: req.Context,
		Role:         rag.Role(role),
	})
	if err != nil {
		if errors.Is(err, llm.ErrNoProviderAvailable) {
			writeError(w, http.StatusServiceUnavailable, "no generation provider available")
			return
		}
		writeError(w, http.StatusInternalServerError, "chat failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

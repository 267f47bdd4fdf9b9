package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agritechlabs/sahayak/internal/api/ctxkeys"
	"github.com/agritechlabs/sahayak/internal/domain/rag"
	"github.com/agritechlabs/sahayak/internal/infra/llm"
)

type stubChatService struct {
	resp *rag.ChatResponse
	err  error
	in   rag.ChatInput
}

func (s *stubChatService) Chat(ctx context.Context, input rag.ChatInput) (*rag.ChatResponse, error) {
	s.in = input
	return s.resp, s.err
}

func authedRequest(method, target, body, userID, role string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	ctx := ctxkeys.WithValue(req.Context(), ctxkeys.UserID, userID)
	ctx = ctxkeys.WithValue(ctx, ctxkeys.Role, role)
	return req.WithContext(ctx)
}

func TestChatHandler_Success(t *testing.T) {
	t.Parallel()
	svc := &stubChatService{resp: &rag.ChatResponse{
		ResponseText: "answer",
		SessionID:    "session_1",
		Kind:         rag.KindUserSupport,
		Provider:     "gemini",
	}}
	h := NewChatHandler(svc)

	req := authedRequest(http.MethodPost, "/api/v1/assistant/chat",
		`{"message":"my pump leaks","sessionId":"session_1"}`, "ravi", "user")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp rag.ChatResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ResponseText != "answer" || resp.SessionID != "session_1" {
		t.Errorf("unexpected response %+v", resp)
	}

	// Identity and role come from the JWT context, never the body.
	if svc.in.UserID != "ravi" || svc.in.Role != rag.RoleUser {
		t.Errorf("unexpected input %+v", svc.in)
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	t.Parallel()
	h := NewChatHandler(&stubChatService{})

	req := authedRequest(http.MethodPost, "/api/v1/assistant/chat", `{"message":""}`, "u", "user")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestChatHandler_InvalidJSON(t *testing.T) {
	t.Parallel()
	h := NewChatHandler(&stubChatService{})

	req := authedRequest(http.MethodPost, "/api/v1/assistant/chat", `{broken`, "u", "user")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestChatHandler_NoProviderAvailable(t *testing.T) {
	t.Parallel()
	h := NewChatHandler(&stubChatService{err: llm.ErrNoProviderAvailable})

	req := authedRequest(http.MethodPost, "/api/v1/assistant/chat", `{"message":"q"}`, "u", "user")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestChatHandler_InternalError(t *testing.T) {
	t.Parallel()
	h := NewChatHandler(&stubChatService{err: errors.New("index offline")})

	req := authedRequest(http.MethodPost, "/api/v1/assistant/chat", `{"message":"q"}`, "u", "user")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestChatHandler_MissingIdentity(t *testing.T) {
	t.Parallel()
	h := NewChatHandler(&stubChatService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/chat",
		strings.NewReader(`{"message":"q"}`))
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type stubModelManager struct {
	installed []string
	listErr   error
	pulled    []string
	set       string
}

func (m *stubModelManager) ListModels(ctx context.Context) ([]string, error) {
	return m.installed, m.listErr
}

func (m *stubModelManager) PullModel(ctx context.Context, name string) error {
	m.pulled = append(m.pulled, name)
	return nil
}

func (m *stubModelManager) SetModel(name string) { m.set = name }

type stubSwitcher struct {
	err   error
	model string
}

func (s *stubSwitcher) SwitchModel(ctx context.Context, modelName string) error {
	s.model = modelName
	return s.err
}

func TestModelsHandler_List(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(&stubModelManager{installed: []string{"llama3:8b", "mistral:7b"}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assistant/models", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp ListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Models) != 2 {
		t.Errorf("expected 2 models, got %v", resp.Models)
	}
}

func TestModelsHandler_List_Disabled(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(nil, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assistant/models", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

func TestModelsHandler_List_RuntimeError(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(&stubModelManager{listErr: errors.New("runtime down")}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/assistant/models", nil))
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestModelsHandler_Switch(t *testing.T) {
	t.Parallel()
	sw := &stubSwitcher{}
	h := NewModelsHandler(&stubModelManager{}, sw)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/models/switch",
		strings.NewReader(`{"model":"mistral:7b"}`))
	rec := httptest.NewRecorder()
	h.Switch(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if sw.model != "mistral:7b" {
		t.Errorf("expected switch to mistral:7b, got %q", sw.model)
	}
}

func TestModelsHandler_Switch_EmptyModel(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(&stubModelManager{}, &stubSwitcher{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/models/switch",
		strings.NewReader(`{"model":""}`))
	rec := httptest.NewRecorder()
	h.Switch(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestModelsHandler_Switch_Failure(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(&stubModelManager{}, &stubSwitcher{err: errors.New("pull failed")})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/models/switch",
		strings.NewReader(`{"model":"ghost"}`))
	rec := httptest.NewRecorder()
	h.Switch(rec, req)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("expected 502, got %d", rec.Code)
	}
}

func TestModelsHandler_Switch_Disabled(t *testing.T) {
	t.Parallel()
	h := NewModelsHandler(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/models/switch",
		strings.NewReader(`{"model":"x"}`))
	rec := httptest.NewRecorder()
	h.Switch(rec, req)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", rec.Code)
	}
}

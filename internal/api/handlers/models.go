// HTTP handlers for local model management: listing installed models and
// switching the active one. Switching is admin-only (enforced in routing).
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/agritechlabs/sahayak/internal/infra/llm"
)

// ModelSwitcher is the minimal contract for switching the active local model.
// llm.Selector satisfies this interface.
type ModelSwitcher interface {
	SwitchModel(ctx context.Context, modelName string) error
}

// ModelsHandler handles local model HTTP requests. manager is the local
// provider's model API and may be nil when the local provider is disabled.
type ModelsHandler struct {
	manager  llm.ModelManager
	switcher ModelSwitcher
}

// NewModelsHandler creates a ModelsHandler.
func NewModelsHandler(manager llm.ModelManager, switcher ModelSwitcher) *ModelsHandler {
	return &ModelsHandler{manager: manager, switcher: switcher}
}

// ListResponse is the response body for GET /api/v1/assistant/models.
type ListResponse struct {
	Models []string `json:"models"`
}

// List handles GET /api/v1/assistant/models.
func (h *ModelsHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.manager == nil {
		writeError(w, http.StatusServiceUnavailable, "local model provider is disabled")
		return
	}

	models, err := h.manager.ListModels(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, "could not list local models")
		return
	}
	writeJSON(w, http.StatusOK, ListResponse{Models: models})
}

// SwitchRequest is the request body for POST /api/v1/assistant/models/switch.
type SwitchRequest struct {
	Model string `json:"model"`
}

// Switch handles POST /api/v1/assistant/models/switch. Pulls the model if it
// is not installed, then makes it the active local model.
//
// Response codes:
//   - 200 OK: model is active
//   - 400 Bad Request: invalid JSON or empty model name
//   - 502 Bad Gateway: listing or pulling the model failed
//   - 503 Service Unavailable: local provider disabled
func (h *ModelsHandler) Switch(w http.ResponseWriter, r *http.Request) {
	if h.switcher == nil {
		writeError(w, http.StatusServiceUnavailable, "local model provider is disabled")
		return
	}

	var req SwitchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Model == "" {
		writeError(w, http.StatusBadRequest, "model is required")
		return
	}

	if err := h.switcher.SwitchModel(r.Context(), req.Model); err != nil {
		writeError(w, http.StatusBadGateway, "model switch failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"model": req.Model})
}

// HTTP handler exposing provider health for operators.
package handlers

import (
	"context"
	"net/http"

	"github.com/agritechlabs/sahayak/internal/infra/llm"
)

// StatusReporter is the minimal contract used by StatusHandler.
// llm.Selector satisfies this interface.
type StatusReporter interface {
	Status(ctx context.Context) []llm.ProviderStatus
	Current() (llm.Descriptor, bool)
}

// StatusHandler handles provider status HTTP requests.
type StatusHandler struct {
	selector StatusReporter
}

// NewStatusHandler creates a StatusHandler backed by the provider selector.
func NewStatusHandler(selector StatusReporter) *StatusHandler {
	return &StatusHandler{selector: selector}
}

// StatusResponse is the response body for GET /api/v1/assistant/status.
type StatusResponse struct {
	Providers []llm.ProviderStatus `json:"providers"`
	Current   string               `json:"current,omitempty"`
}

// Status handles GET /api/v1/assistant/status. Probes every enabled provider
// and reports which one is currently selected, if any.
func (h *StatusHandler) Status(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Providers: h.selector.Status(r.Context())}
	if current, ok := h.selector.Current(); ok {
		resp.Current = current.Name
	}
	writeJSON(w, http.StatusOK, resp)
}

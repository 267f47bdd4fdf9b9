// Ollama HTTP adapter for the self-hosted-local provider.
// Endpoints used:
//   - POST /api/chat  - non-streaming generation
//   - GET  /api/tags  - probe (lists installed models)
//   - POST /api/pull  - on-demand model download for model switches
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	mimeJSON          = "application/json"
	headerContentType = "Content-Type"
)

// OllamaProvider implements Provider against a running Ollama instance.
// It is the only provider whose model can change at runtime, so the model
// field is guarded by a mutex.
type OllamaProvider struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	model string
}

// NewOllamaProvider creates an OllamaProvider targeting baseURL with the
// given request timeout.
func NewOllamaProvider(baseURL, model string, timeout time.Duration) *OllamaProvider {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OllamaProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ─── internal Ollama JSON types ──────────────────────────────────────────────

type ollamaChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatRequest struct {
	Model    string              `json:"model"`
	Messages []ollamaChatMessage `json:"messages"`
	Stream   bool                `json:"stream"`
	Options  map[string]any      `json:"options,omitempty"`
}

type ollamaChatResponse struct {
	Message    ollamaChatMessage `json:"message"`
	DoneReason string            `json:"done_reason"`
	Done       bool              `json:"done"`
}

type ollamaTagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

type ollamaPullRequest struct {
	Name   string `json:"name"`
	Stream bool   `json:"stream"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// Generate performs a non-streaming chat call via POST /api/chat, sending the
// composed prompt as a single user message.
func (p *OllamaProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	opts := map[string]any{}
	if req.Temperature != 0 {
		opts["temperature"] = req.Temperature
	}
	if req.MaxTokens != 0 {
		opts["num_predict"] = req.MaxTokens
	}
	if len(opts) == 0 {
		opts = nil
	}

	body, err := json.Marshal(ollamaChatRequest{
		Model:    p.Model(),
		Messages: []ollamaChatMessage{{Role: "user", Content: req.Prompt}},
		Stream:   false,
		Options:  opts,
	})
	if err != nil {
		return "", err
	}

	respBody, postErr := p.doPost(ctx, "/api/chat", body)
	if postErr != nil {
		return "", postErr
	}
	defer respBody.Close()

	var chatResp ollamaChatResponse
	if decodeErr := json.NewDecoder(respBody).Decode(&chatResp); decodeErr != nil {
		return "", fmt.Errorf("decode chat response: %w", decodeErr)
	}
	return chatResp.Message.Content, nil
}

// Probe calls GET /api/tags and checks the configured model is installed,
// matching exactly or by the prefix before the ":" version separator.
func (p *OllamaProvider) Probe(ctx context.Context) Health {
	now := time.Now()

	installed, err := p.ListModels(ctx)
	if err != nil {
		return Health{CheckedAt: now, FailureReason: err.Error()}
	}

	model := p.Model()
	if !modelInstalled(installed, model) {
		return Health{
			CheckedAt:     now,
			FailureReason: fmt.Sprintf("model %q not installed in local runtime", model),
		}
	}
	return Health{Available: true, CheckedAt: now}
}

// Model returns the current target model.
func (p *OllamaProvider) Model() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.model
}

// ─── ModelManager implementation ─────────────────────────────────────────────

// ListModels returns the names of the models installed in the runtime.
func (p *OllamaProvider) ListModels(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: build request: %w", err)
	}
	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama tags: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama tags: status %d", resp.StatusCode)
	}

	var tags ollamaTagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode tags response: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// PullModel downloads a model via POST /api/pull. Pulls can take minutes for
// large models, so the call deliberately carries no client-side timeout
// beyond the caller's context.
func (p *OllamaProvider) PullModel(ctx context.Context, name string) error {
	body, err := json.Marshal(ollamaPullRequest{Name: name, Stream: false})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/pull", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("ollama pull: build request: %w", err)
	}
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return fmt.Errorf("ollama pull: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama pull: status %d", resp.StatusCode)
	}
	return nil
}

// SetModel commits a new target model. Callers must validate presence first.
func (p *OllamaProvider) SetModel(name string) {
	p.mu.Lock()
	p.model = name
	p.mu.Unlock()
}

// ─── helpers ─────────────────────────────────────────────────────────────────

// doPost sends a POST request to baseURL+path and returns the response body.
// Caller is responsible for closing the returned ReadCloser.
func (p *OllamaProvider) doPost(ctx context.Context, path string, body []byte) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama post %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close() //nolint:errcheck
		return nil, fmt.Errorf("ollama post %s: status %d", path, resp.StatusCode)
	}
	return resp.Body, nil
}

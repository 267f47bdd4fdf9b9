// Groq HTTP adapter for the cloud-fallback provider.
// Groq exposes an OpenAI-compatible API:
//   - POST /openai/v1/chat/completions - generation
//   - GET  /openai/v1/models           - probe (credential + reachability check)
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const defaultGroqBaseURL = "https://api.groq.com"

// GroqProvider implements Provider against the Groq chat completions API.
type GroqProvider struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqProvider creates a GroqProvider. baseURL may be empty to use the
// public endpoint.
func NewGroqProvider(baseURL, apiKey, model string, timeout time.Duration) *GroqProvider {
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GroqProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ─── internal OpenAI-compatible JSON types ───────────────────────────────────

type groqChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type groqChatRequest struct {
	Model       string            `json:"model"`
	Messages    []groqChatMessage `json:"messages"`
	Temperature float64           `json:"temperature,omitempty"`
	MaxTokens   int               `json:"max_tokens,omitempty"`
}

type groqChatResponse struct {
	Choices []struct {
		Message      groqChatMessage `json:"message"`
		FinishReason string          `json:"finish_reason"`
	} `json:"choices"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// Generate performs a chat completion with the composed prompt as a single
// user message.
func (p *GroqProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	payload, err := json.Marshal(groqChatRequest{
		Model:       p.model,
		Messages:    []groqChatMessage{{Role: "user", Content: req.Prompt}},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		p.baseURL+"/openai/v1/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("groq chat: build request: %w", err)
	}
	httpReq.Header.Set(headerContentType, mimeJSON)
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("groq chat: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("groq chat: status %d: %s", resp.StatusCode, truncateBody(raw))
	}

	var chatResp groqChatResponse
	if decodeErr := json.Unmarshal(raw, &chatResp); decodeErr != nil {
		return "", fmt.Errorf("groq chat: decode: %w", decodeErr)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("groq chat: no choices in response")
	}
	return chatResp.Choices[0].Message.Content, nil
}

// Probe lists models with the configured credentials. A 401/403 means the key
// is invalid; any non-200 or transport error is reported as unavailable.
func (p *GroqProvider) Probe(ctx context.Context) Health {
	now := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/openai/v1/models", nil)
	if err != nil {
		return Health{CheckedAt: now, FailureReason: err.Error()}
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return Health{CheckedAt: now, FailureReason: err.Error()}
	}
	defer resp.Body.Close() //nolint:errcheck
	if resp.StatusCode != http.StatusOK {
		return Health{CheckedAt: now, FailureReason: fmt.Sprintf("groq models: status %d", resp.StatusCode)}
	}
	return Health{Available: true, CheckedAt: now}
}

// Model returns the configured model.
func (p *GroqProvider) Model() string { return p.model }

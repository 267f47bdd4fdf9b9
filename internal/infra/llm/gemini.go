// Gemini HTTP adapter for the hosted-cloud primary provider.
// Calls the Generative Language REST API directly with stdlib net/http:
//   - POST /v1beta/models/{model}:generateContent - generation and probe
//   - POST /v1beta/models/{model}:embedContent    - query embeddings
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

const defaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiProvider implements Provider against the Gemini REST API.
type GeminiProvider struct {
	baseURL    string
	apiKey     string
	model      string
	embedModel string
	httpClient *http.Client
}

// NewGeminiProvider creates a GeminiProvider. baseURL may be empty to use the
// public endpoint; embedModel is the embedding model used for retrieval
// queries.
func NewGeminiProvider(baseURL, apiKey, model, embedModel string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = defaultGeminiBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GeminiProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		embedModel: embedModel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ─── internal Gemini JSON types ──────────────────────────────────────────────

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type geminiGenerateRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerateResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

type geminiEmbedRequest struct {
	Content geminiContent `json:"content"`
}

type geminiEmbedResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// ─── Provider implementation ─────────────────────────────────────────────────

// Generate sends the prompt as a single user content to generateContent and
// concatenates the candidate parts.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	body := geminiGenerateRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: req.Prompt}}}},
	}
	if req.Temperature != 0 || req.MaxTokens != 0 {
		body.GenerationConfig = &geminiGenerationConfig{
			Temperature:     req.Temperature,
			MaxOutputTokens: req.MaxTokens,
		}
	}

	var resp geminiGenerateResponse
	if err := p.doPost(ctx, p.generatePath(p.model), body, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("gemini: no candidates in response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

// Probe issues a minimal generateContent call. A non-success status means the
// endpoint is unreachable, the key is invalid, or the model is unknown; all
// reported as unavailable, never as an error.
func (p *GeminiProvider) Probe(ctx context.Context) Health {
	now := time.Now()
	body := geminiGenerateRequest{
		Contents:         []geminiContent{{Role: "user", Parts: []geminiPart{{Text: "ping"}}}},
		GenerationConfig: &geminiGenerationConfig{MaxOutputTokens: 1},
	}
	var resp geminiGenerateResponse
	if err := p.doPost(ctx, p.generatePath(p.model), body, &resp); err != nil {
		return Health{CheckedAt: now, FailureReason: err.Error()}
	}
	return Health{Available: true, CheckedAt: now}
}

// Model returns the configured generation model.
func (p *GeminiProvider) Model() string { return p.model }

// Embed computes an embedding for a single text via embedContent. Used by the
// Pinecone retriever to embed queries; not part of the Provider interface.
func (p *GeminiProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	body := geminiEmbedRequest{Content: geminiContent{Parts: []geminiPart{{Text: text}}}}
	var resp geminiEmbedResponse
	path := fmt.Sprintf("/v1beta/models/%s:embedContent", p.embedModel)
	if err := p.doPost(ctx, path, body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding")
	}
	return resp.Embedding.Values, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (p *GeminiProvider) generatePath(model string) string {
	return fmt.Sprintf("/v1beta/models/%s:generateContent", model)
}

// doPost sends an API-key-authenticated POST and decodes the JSON response.
func (p *GeminiProvider) doPost(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("gemini post %s: build request: %w", path, err)
	}
	req.Header.Set(headerContentType, mimeJSON)
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("gemini post %s: %w", path, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gemini post %s: status %d: %s", path, resp.StatusCode, truncateBody(raw))
	}
	if decodeErr := json.Unmarshal(raw, out); decodeErr != nil {
		return fmt.Errorf("gemini post %s: decode: %w", path, decodeErr)
	}
	return nil
}

// truncateBody keeps error messages readable when the API returns a long body.
func truncateBody(raw []byte) string {
	const max = 256
	if len(raw) > max {
		return string(raw[:max]) + "..."
	}
	return string(raw)
}

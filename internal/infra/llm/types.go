// Package llm defines the model-agnostic generation provider abstraction.
// All types here are shared between the provider interface, the adapters
// (Gemini, Ollama, Groq) and the failover selector.
package llm

import "time"

// Kind classifies a provider by where it runs.
type Kind string

const (
	KindHostedCloud     Kind = "hosted-cloud"
	KindSelfHostedLocal Kind = "self-hosted-local"
	KindCloudFallback   Kind = "cloud-fallback"
)

// Descriptor identifies a configured provider. Built once at startup from
// configuration; Rank and Enabled never change afterwards. Model may change
// for the local provider via a model switch.
type Descriptor struct {
	Name    string `json:"name"`
	Rank    int    `json:"-"` // lower = preferred
	Model   string `json:"model"`
	Kind    Kind   `json:"kind"`
	Enabled bool   `json:"enabled"`
}

// Health is the outcome of probing a provider. Unavailability is a normal
// result, not an error; FailureReason explains it when Available is false.
type Health struct {
	Available     bool      `json:"available"`
	CheckedAt     time.Time `json:"checkedAt"`
	FailureReason string    `json:"failureReason,omitempty"`
}

// GenerateRequest is the input for a single text generation call.
// Prompt is the fully composed prompt string; the adapters wrap it into
// whatever message shape their API expects.
type GenerateRequest struct {
	Prompt      string
	Temperature float64
	MaxTokens   int
}

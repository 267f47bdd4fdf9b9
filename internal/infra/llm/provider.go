package llm

import "context"

// Provider is the interface every generation backend implements. The
// application is never coupled to a specific vendor; adapters translate
// between GenerateRequest and the vendor's wire format.
type Provider interface {
	// Generate performs a single non-streaming generation call.
	// One attempt only; retry and failover belong to the Selector.
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// Probe checks liveness (reachability, credentials, model presence).
	// It never returns an error: an unreachable provider is reported as
	// Health{Available: false} with a FailureReason.
	Probe(ctx context.Context) Health

	// Model returns the model identifier the provider currently targets.
	Model() string
}

// ModelManager is implemented by providers whose model set can be inspected
// and extended at runtime (the local Ollama runtime). The selector uses it
// to validate a model switch before committing it.
type ModelManager interface {
	// ListModels returns the identifiers of the installed models.
	ListModels(ctx context.Context) ([]string, error)

	// PullModel downloads a model into the runtime.
	PullModel(ctx context.Context, name string) error

	// SetModel commits a new target model identifier.
	SetModel(name string)
}

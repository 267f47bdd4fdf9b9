package llm

import (
	"errors"
	"fmt"
)

// ErrNoProviderAvailable is the terminal failure returned when every enabled
// provider is unavailable or has already failed within the same request.
var ErrNoProviderAvailable = errors.New("no generation provider available")

// GenerationError reports a failed generation call against a provider that
// probed healthy. It is recovered by failover and surfaced only when all
// providers are exhausted.
type GenerationError struct {
	Provider string
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed on provider %q: %v", e.Provider, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

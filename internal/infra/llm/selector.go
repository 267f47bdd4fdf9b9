// Failover selector: picks exactly one provider per generation attempt,
// walking the fixed priority order (hosted-cloud → self-hosted-local →
// cloud-fallback) and probing each enabled provider until one reports
// available. The selected provider is cached until a generation attempt
// against it fails; the cache is then invalidated and selection restarts
// from the top of the priority order.
package llm

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultProbeTimeout = 5 * time.Second

// Selector owns provider selection and the failover generation loop.
// The current-provider cache is the only mutable state shared between
// concurrent requests; it is guarded by mu.
type Selector struct {
	registry     *Registry
	probeTimeout time.Duration
	log          *zap.Logger

	mu      sync.Mutex
	current *Entry // nil when no provider is cached
}

// NewSelector creates a Selector over the given registry.
func NewSelector(registry *Registry, probeTimeout time.Duration, log *zap.Logger) *Selector {
	if probeTimeout <= 0 {
		probeTimeout = defaultProbeTimeout
	}
	return &Selector{
		registry:     registry,
		probeTimeout: probeTimeout,
		log:          log,
	}
}

// Select returns the provider to use for the next generation attempt.
// A cached current provider is returned without re-probing unless it appears
// in exclude. Otherwise providers are probed in priority order and the first
// available one becomes the new current provider. Returns
// ErrNoProviderAvailable when every enabled, non-excluded provider is down.
func (s *Selector) Select(ctx context.Context, exclude map[string]bool) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != nil && !exclude[s.current.Descriptor.Name] {
		return *s.current, nil
	}

	for _, e := range s.registry.InPriorityOrder() {
		if !e.Descriptor.Enabled || exclude[e.Descriptor.Name] {
			continue
		}
		h := s.probe(ctx, e)
		if !h.Available {
			s.log.Debug("provider unavailable",
				zap.String("provider", e.Descriptor.Name),
				zap.String("reason", h.FailureReason))
			continue
		}
		entry := e
		s.current = &entry
		s.log.Info("provider selected",
			zap.String("provider", e.Descriptor.Name),
			zap.String("model", e.Provider.Model()))
		return e, nil
	}
	return Entry{}, ErrNoProviderAvailable
}

// probe runs the provider's health check under the selector's probe timeout.
func (s *Selector) probe(ctx context.Context, e Entry) Health {
	probeCtx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()
	return e.Provider.Probe(probeCtx)
}

// Invalidate drops the cached selection if it matches the named provider, so
// the next Select re-probes from the top of the priority order.
func (s *Selector) Invalidate(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil && s.current.Descriptor.Name == name {
		s.current = nil
	}
}

// Current returns the cached provider descriptor, if any.
func (s *Selector) Current() (Descriptor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return Descriptor{}, false
	}
	d := s.current.Descriptor
	d.Model = s.current.Provider.Model()
	return d, true
}

// Generate runs the failover loop: attempt generation against the selected
// provider, and on failure invalidate the cache, exclude the failed provider
// for the remainder of this request, and re-select from the top. Attempts are
// bounded by the number of registered providers. Returns the raw text and the
// descriptor of the provider that produced it.
func (s *Selector) Generate(ctx context.Context, req GenerateRequest) (string, Descriptor, error) {
	tried := make(map[string]bool, s.registry.Len())

	for attempt := 0; attempt < s.registry.Len(); attempt++ {
		entry, err := s.Select(ctx, tried)
		if err != nil {
			return "", Descriptor{}, err
		}

		text, genErr := entry.Provider.Generate(ctx, req)
		if genErr == nil {
			d := entry.Descriptor
			d.Model = entry.Provider.Model()
			return text, d, nil
		}

		name := entry.Descriptor.Name
		s.log.Warn("generation failed, failing over",
			zap.String("provider", name),
			zap.Error(genErr))
		tried[name] = true
		s.Invalidate(name)

		if ctx.Err() != nil {
			return "", Descriptor{}, ctx.Err()
		}
	}
	return "", Descriptor{}, ErrNoProviderAvailable
}

// ProviderStatus is the operational view of one configured provider.
type ProviderStatus struct {
	Name      string `json:"name"`
	Kind      Kind   `json:"kind"`
	Model     string `json:"model"`
	Enabled   bool   `json:"enabled"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// Status probes every enabled provider and reports per-provider availability.
// Disabled providers are reported without probing. Used for operational
// visibility only; the generation path never calls it.
func (s *Selector) Status(ctx context.Context) []ProviderStatus {
	entries := s.registry.InPriorityOrder()
	out := make([]ProviderStatus, 0, len(entries))
	for _, e := range entries {
		st := ProviderStatus{
			Name:    e.Descriptor.Name,
			Kind:    e.Descriptor.Kind,
			Model:   e.Provider.Model(),
			Enabled: e.Descriptor.Enabled,
		}
		if e.Descriptor.Enabled {
			h := s.probe(ctx, e)
			st.Available = h.Available
			st.Reason = h.FailureReason
		} else {
			st.Reason = "disabled by configuration"
		}
		out = append(out, st)
	}
	return out
}

// SwitchModel switches the local provider to the named model. The model must
// exist in the local runtime (or be pulled successfully) before the switch
// is committed; on any validation failure the current model is left
// unchanged and the error is returned.
func (s *Selector) SwitchModel(ctx context.Context, modelName string) error {
	for _, e := range s.registry.InPriorityOrder() {
		mgr, ok := e.Provider.(ModelManager)
		if !ok {
			continue
		}

		installed, err := mgr.ListModels(ctx)
		if err != nil {
			return &GenerationError{Provider: e.Descriptor.Name, Err: err}
		}
		if !modelInstalled(installed, modelName) {
			s.log.Info("model not installed, pulling",
				zap.String("provider", e.Descriptor.Name),
				zap.String("model", modelName))
			if pullErr := mgr.PullModel(ctx, modelName); pullErr != nil {
				return &GenerationError{Provider: e.Descriptor.Name, Err: pullErr}
			}
		}

		mgr.SetModel(modelName)
		s.Invalidate(e.Descriptor.Name)
		s.log.Info("model switched",
			zap.String("provider", e.Descriptor.Name),
			zap.String("model", modelName))
		return nil
	}
	return ErrNoProviderAvailable
}

// modelInstalled reports whether want matches any installed model, either
// exactly or by the prefix preceding the ":" version separator (requesting
// "llama3" matches an installed "llama3:8b"). Known precision gap: a model
// whose name is a prefix of another's will match both.
func modelInstalled(installed []string, want string) bool {
	base := strings.SplitN(want, ":", 2)[0]
	for _, m := range installed {
		if m == want || strings.HasPrefix(m, base) {
			return true
		}
	}
	return false
}

package llm

import "sort"

// Entry pairs a provider with its configured descriptor.
type Entry struct {
	Descriptor Descriptor
	Provider   Provider
}

// Registry holds the configured providers in a deterministic, total priority
// order. It is built once at startup and read-only afterwards; all requests
// share the same instance.
type Registry struct {
	entries []Entry
}

// NewRegistry creates a Registry from the given entries, sorted by ascending
// Rank. Registration order breaks ties, so the ordering is total.
func NewRegistry(entries ...Entry) *Registry {
	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Descriptor.Rank < sorted[j].Descriptor.Rank
	})
	return &Registry{entries: sorted}
}

// InPriorityOrder returns the entries ordered by priority (preferred first).
// The returned slice is a copy; callers cannot mutate registry state.
func (r *Registry) InPriorityOrder() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Lookup returns the entry registered under the given provider name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Descriptor.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of registered providers, enabled or not.
func (r *Registry) Len() int { return len(r.entries) }

// Package docstore provides local retrieval backends: an in-memory store for
// development and tests, and a SQLite FTS5 keyword index for deployments
// without a hosted vector index.
package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
)

const defaultTopK = 5

// MemoryStore is an in-process document store scored by case-insensitive
// term overlap. Zero-score documents are never returned.
type MemoryStore struct {
	mu   sync.RWMutex
	docs []retrieval.Document
	topK int
}

// NewMemoryStore creates an empty MemoryStore returning at most topK results.
func NewMemoryStore(topK int) *MemoryStore {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &MemoryStore{topK: topK}
}

// Add appends documents to the store.
func (s *MemoryStore) Add(docs ...retrieval.Document) {
	s.mu.Lock()
	s.docs = append(s.docs, docs...)
	s.mu.Unlock()
}

// Retrieve scores every document by the fraction of query terms it contains
// and returns the topK best matches, highest score first.
func (s *MemoryStore) Retrieve(_ context.Context, query string) ([]retrieval.Document, error) {
	terms := strings.Fields(strings.ToLower(query))
	if len(terms) == 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	scored := make([]retrieval.Document, 0, len(s.docs))
	for _, d := range s.docs {
		content := strings.ToLower(d.Content)
		hits := 0
		for _, t := range terms {
			if strings.Contains(content, t) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		d.Score = float64(hits) / float64(len(terms))
		scored = append(scored, d)
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > s.topK {
		scored = scored[:s.topK]
	}
	return scored, nil
}

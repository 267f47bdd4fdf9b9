package docstore

import (
	"context"
	"testing"

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
)

func newTestIndex(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(":memory:", 5)
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	t.Cleanup(func() { s.Close() }) //nolint:errcheck
	return s
}

func TestSQLiteStore_AddAndRetrieve(t *testing.T) {
	s := newTestIndex(t)
	ctx := context.Background()

	err := s.Add(ctx,
		retrieval.Document{Content: "rotavator blade replacement guide", Source: retrieval.SourceProduct},
		retrieval.Document{Content: "seasonal discount policy", Source: retrieval.SourceStore},
	)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	docs, err := s.Retrieve(ctx, "rotavator blade")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 match, got %d", len(docs))
	}
	if docs[0].Source != retrieval.SourceProduct {
		t.Errorf("unexpected source %q", docs[0].Source)
	}
	if docs[0].Score <= 0 {
		t.Errorf("expected positive score (negated bm25), got %f", docs[0].Score)
	}
}

func TestSQLiteStore_NoMatches(t *testing.T) {
	s := newTestIndex(t)
	ctx := context.Background()

	if err := s.Add(ctx, retrieval.Document{Content: "irrigation schedule"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	docs, err := s.Retrieve(ctx, "gearbox")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("expected no matches, got %v", docs)
	}
}

func TestSQLiteStore_InvalidQuerySyntaxTreatedAsNoResults(t *testing.T) {
	s := newTestIndex(t)

	docs, err := s.Retrieve(context.Background(), `"unbalanced`)
	if err != nil {
		t.Fatalf("invalid syntax must not error: %v", err)
	}
	if docs != nil {
		t.Errorf("expected nil results, got %v", docs)
	}
}

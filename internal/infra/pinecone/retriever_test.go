package pinecone

import (
	"context"
	"errors"
	"testing"

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
)

type stubClient struct {
	desc        *IndexDescription
	descErr     error
	queryResp   *QueryResponse
	queryErr    error
	queriedHost string
	lastQuery   QueryRequest
}

func (c *stubClient) DescribeIndex(ctx context.Context, indexName string) (*IndexDescription, error) {
	return c.desc, c.descErr
}

func (c *stubClient) Query(ctx context.Context, host string, req QueryRequest) (*QueryResponse, error) {
	c.queriedHost = host
	c.lastQuery = req
	return c.queryResp, c.queryErr
}

type stubEmbedder struct {
	vec []float32
	err error
}

func (e *stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.vec, e.err
}

func TestNewRetriever_ResolvesHostWhenEmpty(t *testing.T) {
	t.Parallel()
	c := &stubClient{desc: &IndexDescription{Host: "idx-abc.svc.pinecone.io"}}

	r, err := NewRetriever(context.Background(), c, &stubEmbedder{}, RetrieverConfig{IndexName: "docs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.cfg.IndexHost != "idx-abc.svc.pinecone.io" {
		t.Errorf("host not resolved, got %q", r.cfg.IndexHost)
	}
}

func TestNewRetriever_PinnedHostSkipsDescribe(t *testing.T) {
	t.Parallel()
	c := &stubClient{descErr: errors.New("control plane down")}

	_, err := NewRetriever(context.Background(), c, &stubEmbedder{},
		RetrieverConfig{IndexName: "docs", IndexHost: "pinned.host"})
	if err != nil {
		t.Fatalf("pinned host must not hit the control plane: %v", err)
	}
}

func TestNewRetriever_DescribeFailure(t *testing.T) {
	t.Parallel()
	c := &stubClient{descErr: errors.New("404")}

	if _, err := NewRetriever(context.Background(), c, &stubEmbedder{},
		RetrieverConfig{IndexName: "missing"}); err == nil {
		t.Error("expected error when host resolution fails")
	}
}

func TestRetriever_Retrieve(t *testing.T) {
	t.Parallel()
	c := &stubClient{
		desc: &IndexDescription{Host: "h"},
		queryResp: &QueryResponse{Matches: []Match{
			{ID: "1", Score: 0.92, Metadata: map[string]any{"chunk_text": "pump specs", "source_type": "product"}},
			{ID: "2", Score: 0.80, Metadata: map[string]any{"source_type": "order"}}, // no chunk_text
			{ID: "3", Score: 0.75, Metadata: map[string]any{"chunk_text": "order history"}},
		}},
	}
	e := &stubEmbedder{vec: []float32{0.1, 0.2}}

	r, err := NewRetriever(context.Background(), c, e, RetrieverConfig{IndexName: "docs", Namespace: "ns", TopK: 3})
	if err != nil {
		t.Fatalf("new retriever: %v", err)
	}

	docs, err := r.Retrieve(context.Background(), "pump query")
	if err != nil {
		t.Fatalf("retrieve: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 docs (empty content skipped), got %d", len(docs))
	}
	if docs[0].Content != "pump specs" || docs[0].Source != retrieval.SourceProduct {
		t.Errorf("unexpected first doc %+v", docs[0])
	}
	if c.lastQuery.TopK != 3 || !c.lastQuery.IncludeMetadata || c.lastQuery.Namespace != "ns" {
		t.Errorf("unexpected query %+v", c.lastQuery)
	}
}

func TestRetriever_EmbedFailure(t *testing.T) {
	t.Parallel()
	c := &stubClient{desc: &IndexDescription{Host: "h"}}
	e := &stubEmbedder{err: errors.New("embed quota exceeded")}

	r, err := NewRetriever(context.Background(), c, e, RetrieverConfig{IndexName: "docs"})
	if err != nil {
		t.Fatalf("new retriever: %v", err)
	}
	if _, err := r.Retrieve(context.Background(), "q"); err == nil {
		t.Error("expected error when embedding fails")
	}
}

package pinecone

import (
	"context"
	"fmt"
	"strings"

	"github.com/agritechlabs/sahayak/internal/domain/retrieval"
)

// Embedder turns a query string into the dense vector the index expects.
// Satisfied by the Gemini provider's Embed method; the same embedding model
// that populated the index.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// RetrieverConfig configures the Pinecone-backed retriever.
type RetrieverConfig struct {
	IndexName string
	IndexHost string // optional; resolved via describe_index when empty
	Namespace string
	TopK      int
}

// Retriever implements retrieval.Retriever over a Pinecone index.
type Retriever struct {
	client   Client
	embedder Embedder
	cfg      RetrieverConfig
}

// NewRetriever builds a Retriever, resolving the index host via the control
// plane when the config does not pin one.
func NewRetriever(ctx context.Context, c Client, e Embedder, cfg RetrieverConfig) (*Retriever, error) {
	if cfg.TopK <= 0 {
		cfg.TopK = 5
	}
	if strings.TrimSpace(cfg.IndexHost) == "" {
		desc, err := c.DescribeIndex(ctx, cfg.IndexName)
		if err != nil {
			return nil, fmt.Errorf("resolve index host: %w", err)
		}
		cfg.IndexHost = desc.Host
	}
	return &Retriever{client: c, embedder: e, cfg: cfg}, nil
}

// Retrieve embeds the query and returns the topK matches as documents.
// Chunk text and source type come from the metadata written by the external
// indexing job.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]retrieval.Document, error) {
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	resp, err := r.client.Query(ctx, r.cfg.IndexHost, QueryRequest{
		Namespace:       r.cfg.Namespace,
		Vector:          vec,
		TopK:            r.cfg.TopK,
		IncludeMetadata: true,
	})
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}

	docs := make([]retrieval.Document, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		content, _ := m.Metadata["chunk_text"].(string)
		if content == "" {
			continue
		}
		source, _ := m.Metadata["source_type"].(string)
		docs = append(docs, retrieval.Document{
			Content: content,
			Score:   m.Score,
			Source:  retrieval.SourceType(source),
		})
	}
	return docs, nil
}

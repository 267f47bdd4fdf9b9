// Package retrieval defines the boundary to the semantic document index.
// The chat core treats the index as an opaque capability: it does not know
// how documents were chunked, embedded or stored. Adapters live in
// internal/infra (pinecone, docstore).
package retrieval

import "context"

// SourceType tags a retrieved document with the domain entity it came from.
type SourceType string

const (
	SourceOrder    SourceType = "order"
	SourceProduct  SourceType = "product"
	SourceCustomer SourceType = "customer"
	SourceStore    SourceType = "store"
	SourceCategory SourceType = "category"
	SourceUnknown  SourceType = ""
)

// Document is one retrieved context chunk. Immutable; lives for one request.
type Document struct {
	Content string
	Score   float64 // relevance score when the backend provides one, else 0
	Source  SourceType
}

// Retriever returns the documents most relevant to a query, best first.
// A query that matches nothing returns an empty slice and no error.
type Retriever interface {
	Retrieve(ctx context.Context, query string) ([]Document, error)
}

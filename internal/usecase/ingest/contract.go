package ingest

import (
	"context"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// VectorWriter is the vector store write contract.
type VectorWriter interface {
	AddDocument(ctx context.Context, doc domain.Document, vec []float32) error
}

// GraphWriter is the graph store write contract.
type GraphWriter interface {
	AddNode(ctx context.Context, n domain.Node) error
	AddEdge(ctx context.Context, e domain.Edge) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

package documents

import (
	"context"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// VectorStore is the vector persistence contract.
type VectorStore interface {
	AddDocument(ctx context.Context, doc domain.Document, vec []float32) error
	GetDocument(ctx context.Context, id string) (domain.Document, error)
	UpdateDocument(ctx context.Context, doc domain.Document, vec []float32) error
	DeleteDocument(ctx context.Context, id string) (bool, error)
	ListDocuments(ctx context.Context, limit int) ([]domain.Document, error)
	Search(ctx context.Context, vec []float32, topK int) ([]domain.VectorHit, error)
	Stats(ctx context.Context) (domain.VectorStats, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

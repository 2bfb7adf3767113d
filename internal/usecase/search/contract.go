package search

import (
	"context"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/usecase/traverse"
)

// VectorSearcher runs similarity queries against the vector index.
type VectorSearcher interface {
	Search(ctx context.Context, vec []float32, topK int) ([]domain.VectorHit, error)
}

// KeywordMatcher supplies graph-derived relevance for a query string.
type KeywordMatcher interface {
	KeywordMatches(ctx context.Context, query string) ([]traverse.Match, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

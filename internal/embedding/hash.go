// Package embedding assembles the text vectorization chain: an optional real
// provider fronted by a decorator that silently degrades to a deterministic
// hash embedding on any provider failure.
package embedding

import (
	"context"
	"math"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// phaseStep is the per-dimension phase offset of the hash expansion.
const phaseStep = 0.1

// HashEmbedder turns text into a pseudo-random-looking vector that is a pure
// function of the text: identical input always yields the identical vector.
// Used as the fallback when no real provider is configured or it fails,
// and in tests that need reproducible vectors without a live model.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder creates a deterministic embedder of the given dimension.
func NewHashEmbedder(dim int) *HashEmbedder {
	return &HashEmbedder{dim: dim}
}

// Dimension returns the output vector dimension.
func (e *HashEmbedder) Dimension() int { return e.dim }

// Embed folds the text into a 32-bit rolling polynomial hash, then expands it
// into dim values via sin(hash + i*phaseStep)*0.5 + 0.5, each in [0,1].
// Total: never blocks, never fails.
func (e *HashEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	var h int32
	for _, c := range text {
		h = h*31 + c // overflow wraps to 32-bit signed semantics
	}

	vec := make([]float32, e.dim)
	for i := range vec {
		vec[i] = float32(math.Sin(float64(h)+float64(i)*phaseStep)*0.5 + 0.5)
	}

	return domain.EmbeddingResult{Embedding: vec}, nil
}

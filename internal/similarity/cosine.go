// Package similarity provides pure vector closeness scoring.
package similarity

import (
	"fmt"
	"math"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// Cosine computes cosine similarity between two vectors of equal length.
// Returns 0 when either vector has zero magnitude. Range is [-1,1].
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", domain.ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB)), nil
}

// Scored attaches the original input index to a similarity score. Downstream
// joins rely on this index, not on any re-sorted rank.
type Scored struct {
	Index int
	Score float64
}

// Batch maps Cosine over vectors against a single query, preserving input order.
func Batch(query []float32, vectors [][]float32) ([]Scored, error) {
	out := make([]Scored, len(vectors))
	for i, v := range vectors {
		score, err := Cosine(query, v)
		if err != nil {
			return nil, fmt.Errorf("vector %d: %w", i, err)
		}
		out[i] = Scored{Index: i, Score: score}
	}
	return out, nil
}

package embedding

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/metrics"
)

// Fallback is a decorator that delegates to a real provider and degrades
// silently to the deterministic hash embedding when the provider is absent,
// fails, or returns a vector of the wrong dimension. Provider failures are
// logged, never surfaced as request errors.
type Fallback struct {
	provider domain.Embedder // nil means no provider configured
	hash     *HashEmbedder
	logger   *zap.Logger
}

// NewFallback creates the fallback decorator. provider may be nil.
func NewFallback(provider domain.Embedder, hash *HashEmbedder, logger *zap.Logger) *Fallback {
	return &Fallback{provider: provider, hash: hash, logger: logger}
}

// Embed implements domain.Embedder. The error return is always nil.
func (f *Fallback) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	if f.provider == nil {
		metrics.EmbeddingFallbackTotal.WithLabelValues("no_provider").Inc()
		return f.hash.Embed(ctx, text)
	}

	res, err := f.provider.Embed(ctx, text)
	if err != nil {
		f.logger.Warn("embedding provider failed, using deterministic fallback",
			zap.Error(err))
		metrics.EmbeddingFallbackTotal.WithLabelValues("provider_error").Inc()
		return f.hash.Embed(ctx, text)
	}

	if len(res.Embedding) != f.hash.Dimension() {
		f.logger.Warn("embedding provider returned wrong dimension, using deterministic fallback",
			zap.Int("got", len(res.Embedding)),
			zap.Int("want", f.hash.Dimension()))
		metrics.EmbeddingFallbackTotal.WithLabelValues("bad_dimension").Inc()
		return f.hash.Embed(ctx, text)
	}

	res.Embedding = normalize(res.Embedding)
	return res, nil
}

// HealthCheck reports the real provider's health; healthy when running on
// the fallback alone.
func (f *Fallback) HealthCheck(ctx context.Context) error {
	if hc, ok := f.provider.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx)
	}
	return nil
}

// normalize scales v to unit L2 length. Zero vectors pass through unchanged.
func normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	if sum == 0 {
		return v
	}
	inv := 1 / math.Sqrt(sum)
	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = float32(float64(x) * inv)
	}
	return out
}

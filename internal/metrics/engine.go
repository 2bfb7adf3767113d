package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine Prometheus metrics.
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphdex",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"provider", "model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "graphdex",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"provider", "model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphdex",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"provider", "model", "type"}, // type: "prompt" / "total"
	)

	EmbeddingFallbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphdex",
			Name:      "embedding_fallback_total",
			Help:      "Embedding requests served by the deterministic fallback",
		},
		[]string{"reason"}, // "no_provider" / "provider_error" / "bad_dimension"
	)

	FusionSearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "graphdex",
			Name:      "fusion_search_duration_seconds",
			Help:      "Hybrid search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"mode"},
	)

	IngestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "graphdex",
			Name:      "ingest_total",
			Help:      "Ingested payloads by route decision",
		},
		[]string{"decision"},
	)

	TraversalRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "graphdex",
			Name:      "traversal_rows",
			Help:      "Rows returned per bounded multi-hop traversal",
			Buckets:   []float64{0, 1, 2, 5, 10, 20},
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers engine Prometheus metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingFallbackTotal)
	prometheus.MustRegister(FusionSearchDuration)
	prometheus.MustRegister(IngestTotal)
	prometheus.MustRegister(TraversalRows)
	engineMetricsRegistered = true
}

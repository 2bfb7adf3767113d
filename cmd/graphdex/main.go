package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/config"
	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/embedding"
	logpkg "github.com/kailas-cloud/graphdex/internal/logger"
	"github.com/kailas-cloud/graphdex/internal/metrics"
	graphstore "github.com/kailas-cloud/graphdex/internal/store/graph"
	vectorstore "github.com/kailas-cloud/graphdex/internal/store/vector"
	"github.com/kailas-cloud/graphdex/internal/transport/httpapi"
	openaiEmb "github.com/kailas-cloud/graphdex/internal/transport/openai"
	documentsuc "github.com/kailas-cloud/graphdex/internal/usecase/documents"
	graphopsuc "github.com/kailas-cloud/graphdex/internal/usecase/graphops"
	healthuc "github.com/kailas-cloud/graphdex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/graphdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/graphdex/internal/usecase/search"
	traverseuc "github.com/kailas-cloud/graphdex/internal/usecase/traverse"
	"github.com/kailas-cloud/graphdex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting graphdex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("vector_addrs", cfg.VectorStore.Addrs),
		zap.String("graph_uri", cfg.GraphStore.URI),
	)

	ctx := context.Background()

	// Vector store: connect, wait for readiness, ensure the HNSW index.
	vstore, err := vectorstore.New(vectorstore.Config{
		Addrs:     cfg.VectorStore.Addrs,
		Username:  cfg.VectorStore.Username,
		Password:  cfg.VectorStore.Password,
		DB:        cfg.VectorStore.DB,
		KeyPrefix: cfg.VectorStore.KeyPrefix,
		Dimension: cfg.Embedding.Dimensions,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer vstore.Close()

	readiness := time.Duration(cfg.VectorStore.ReadinessTimeout) * time.Second
	if err := vstore.WaitForReady(ctx, readiness); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	if err := vstore.EnsureIndex(ctx, vectorstore.HNSWConfig{
		M:           cfg.VectorStore.HNSWM,
		EFConstruct: cfg.VectorStore.HNSWEFConstruct,
	}); err != nil {
		logger.Fatal("Failed to ensure vector index", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	// Graph store.
	gstore, err := graphstore.New(graphstore.Config{
		URI:      cfg.GraphStore.URI,
		Username: cfg.GraphStore.Username,
		Password: cfg.GraphStore.Password,
	})
	if err != nil {
		logger.Fatal("Failed to create graph store", zap.Error(err))
	}
	defer gstore.Close(ctx)

	if err := gstore.Ping(ctx); err != nil {
		logger.Fatal("Graph store not ready", zap.Error(err))
	}
	logger.Info("Connected to graph store")

	// Register engine metrics explicitly (no init())
	metrics.RegisterEngineMetrics()

	// Embedder chain: optional remote provider behind the deterministic
	// fallback. A nil provider interface (not a typed nil pointer) keeps the
	// fallback's provider check meaningful.
	var provider domain.Embedder
	if cfg.Embedding.APIKey != "" {
		provider = openaiEmb.NewEmbedder(&openaiEmb.Config{
			APIKey:     cfg.Embedding.APIKey,
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
			Provider:   cfg.Embedding.Provider,
			Logger:     logger,
		})
	}
	embedder := embedding.NewFallback(
		provider,
		embedding.NewHashEmbedder(cfg.Embedding.Dimensions),
		logger,
	)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
		zap.Bool("remote", provider != nil),
	)

	// Usecase services.
	traverseSvc := traverseuc.New(gstore, traverseuc.Options{
		KeywordLimit:  cfg.Graph.KeywordLimit,
		TraverseLimit: cfg.Graph.TraverseLimit,
		BaseScore:     cfg.Fusion.KeywordBaseScore,
	}, logger)

	ingestSvc := ingestuc.New(vstore, gstore, embedder, logger)
	searchSvc := searchuc.New(vstore, traverseSvc, embedder, cfg.Fusion.CandidateLimit, logger)
	documentsSvc := documentsuc.New(vstore, embedder, logger)
	graphopsSvc := graphopsuc.New(gstore, logger)

	var embChecker healthuc.EmbeddingChecker
	if provider != nil {
		embChecker = embedder
	}
	healthSvc := healthuc.New(vstore, gstore, embChecker)

	server := httpapi.NewServer(
		ingestSvc, searchSvc, documentsSvc, graphopsSvc, traverseSvc, healthSvc, logger,
	)
	server.SetFusionDefaults(cfg.Fusion.VectorWeight, cfg.Fusion.GraphWeight)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(httpapi.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}

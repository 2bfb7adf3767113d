// Package httpapi exposes the retrieval engine over HTTP with JSON envelopes.
// Domain errors are mapped to status codes through an ordered handler chain;
// anything unmatched falls through to a 500 with a generic message.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	documentsuc "github.com/kailas-cloud/graphdex/internal/usecase/documents"
	graphopsuc "github.com/kailas-cloud/graphdex/internal/usecase/graphops"
	healthuc "github.com/kailas-cloud/graphdex/internal/usecase/health"
	ingestuc "github.com/kailas-cloud/graphdex/internal/usecase/ingest"
	searchuc "github.com/kailas-cloud/graphdex/internal/usecase/search"
	traverseuc "github.com/kailas-cloud/graphdex/internal/usecase/traverse"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server routes HTTP requests to the usecase services.
type Server struct {
	ingest        *ingestuc.Service
	search        *searchuc.Service
	documents     *documentsuc.Service
	graphops      *graphopsuc.Service
	traverse      *traverseuc.Service
	health        *healthuc.Service
	logger        *zap.Logger
	errorHandlers []errorHandler

	defVectorWeight *float64
	defGraphWeight  *float64
}

// NewServer creates an HTTP API server.
func NewServer(
	ingest *ingestuc.Service,
	search *searchuc.Service,
	documents *documentsuc.Service,
	graphops *graphopsuc.Service,
	traverse *traverseuc.Service,
	health *healthuc.Service,
	logger *zap.Logger,
) *Server {
	s := &Server{
		ingest:    ingest,
		search:    search,
		documents: documents,
		graphops:  graphops,
		traverse:  traverse,
		health:    health,
		logger:    logger,
	}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrNoiseRejected, http.StatusBadRequest, codeNoiseRejected),
		sentinelHandler(domain.ErrDimensionMismatch, http.StatusBadRequest, codeDimensionMismatch),
		sentinelHandler(domain.ErrDocumentNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNodeNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrStoreUnavailable, http.StatusBadGateway, codeStoreUnavailable),
	}
	return s
}

// SetFusionDefaults overrides the weights applied to search requests that
// omit them. Requests carrying explicit weights are untouched.
func (s *Server) SetFusionDefaults(vectorWeight, graphWeight float64) {
	s.defVectorWeight = &vectorWeight
	s.defGraphWeight = &graphWeight
}

// Routes registers all endpoints on the router. Health and metrics live
// outside the versioned prefix so probes and scrapers skip auth.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(api chi.Router) {
		api.Post("/nodes", s.CreateNode)
		api.Get("/nodes/{id}", s.GetNode)
		api.Put("/nodes/{id}", s.UpdateNode)
		api.Delete("/nodes/{id}", s.DeleteNode)

		api.Post("/edges", s.CreateEdge)
		api.Get("/edges", s.GetEdge)

		api.Get("/traverse/{id}", s.TraverseFrom)
		api.Get("/related/{id}", s.Related)

		api.Post("/documents", s.CreateDocument)
		api.Get("/documents", s.ListDocuments)
		api.Get("/documents/{id}", s.GetDocument)
		api.Put("/documents/{id}", s.UpdateDocument)
		api.Delete("/documents/{id}", s.DeleteDocument)

		api.Post("/search/vector", s.VectorSearch)
		api.Post("/search", s.Search)
		api.Post("/ingest", s.Ingest)

		api.Get("/stats", s.Stats)
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	sentinels := []error{
		domain.ErrNoiseRejected,
		domain.ErrDimensionMismatch,
		domain.ErrDocumentNotFound,
		domain.ErrNodeNotFound,
		domain.ErrNotFound,
		domain.ErrStoreUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code string) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler surfaces the full field list from ValidationError.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	writeError(w, http.StatusBadRequest, codeValidationFailed, msg)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

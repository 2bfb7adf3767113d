package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks over both stores and the embedding
// provider. An embedding failure still reports Degraded even though search
// keeps working on the deterministic fallback.
type Service struct {
	vector    Pinger
	graph     Pinger
	embedding EmbeddingChecker
}

// New creates a Service. embedding can be nil when no provider is configured.
func New(vector, graph Pinger, embedding EmbeddingChecker) *Service {
	return &Service{vector: vector, graph: graph, embedding: embedding}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	if err := s.vector.Ping(ctx); err != nil {
		checks["vector_store"] = CheckError
	} else {
		checks["vector_store"] = CheckOK
	}

	if err := s.graph.Ping(ctx); err != nil {
		checks["graph_store"] = CheckError
	} else {
		checks["graph_store"] = CheckOK
	}

	if s.embedding != nil {
		if err := s.embedding.HealthCheck(ctx); err != nil {
			checks["embedding"] = CheckError
		} else {
			checks["embedding"] = CheckOK
		}
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks}
}

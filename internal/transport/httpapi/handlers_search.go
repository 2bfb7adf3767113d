package httpapi

import (
	"net/http"

	"github.com/kailas-cloud/graphdex/internal/domain/fusion"
	"github.com/kailas-cloud/graphdex/internal/domain/fusion/mode"
	ingestuc "github.com/kailas-cloud/graphdex/internal/usecase/ingest"
)

// Ingest handles POST /ingest. The payload is auto-routed; the response
// carries the route decision and per-store counts so callers can detect
// partial completion.
func (s *Server) Ingest(w http.ResponseWriter, r *http.Request) {
	var payload ingestuc.Payload
	if !decodeBody(w, r, &payload) {
		return
	}

	res, err := s.ingest.Ingest(r.Context(), payload)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, ingestResponse{
		Decision:       string(res.Decision),
		DocID:          res.DocID,
		DocumentsAdded: res.DocumentsAdded,
		NodesAdded:     res.NodesAdded,
		EdgesAdded:     res.EdgesAdded,
		Errors:         res.Errors,
	})
}

// Search handles POST /search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	vw := req.VectorWeight
	if vw == nil {
		vw = s.defVectorWeight
	}
	gw := req.GraphWeight
	if gw == nil {
		gw = s.defGraphWeight
	}

	fusionReq, err := fusion.New(
		req.Query, mode.Mode(req.Type),
		vw, gw,
		req.TopK, req.Page,
	)
	if err != nil {
		writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
		return
	}

	page, err := s.search.Search(r.Context(), fusionReq)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	results := make([]searchHitResponse, len(page.Hits))
	for i, h := range page.Hits {
		results[i] = searchHitResponse{
			Rank:        h.Rank,
			DocID:       h.DocID,
			Content:     h.Content,
			Similarity:  h.Similarity,
			HybridScore: h.HybridScore,
			Metadata:    h.Metadata,
		}
	}
	writeJSON(w, http.StatusOK, searchResponse{
		Results:    results,
		Page:       page.Page,
		TopK:       page.TopK,
		TotalHits:  page.TotalHits,
		TotalPages: page.TotalPages,
		Mode:       string(page.Mode),
	})
}

// Stats handles GET /stats, combining both store reports.
func (s *Server) Stats(w http.ResponseWriter, r *http.Request) {
	vstats, err := s.documents.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	gstats, err := s.graphops.Stats(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Vector: vectorStatsResponse{
			TotalDocuments: vstats.TotalDocuments,
			Dimension:      vstats.Dimension,
			Status:         vstats.Status,
		},
		Graph: graphStatsResponse{
			TotalNodes: gstats.TotalNodes,
			TotalEdges: gstats.TotalEdges,
		},
	})
}

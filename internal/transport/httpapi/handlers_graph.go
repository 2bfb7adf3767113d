package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/graphdex/internal/domain"
	graphopsuc "github.com/kailas-cloud/graphdex/internal/usecase/graphops"
)

// CreateNode handles POST /nodes.
func (s *Server) CreateNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	node := nodeFromRequest(req)
	if err := s.graphops.AddNode(r.Context(), node); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, node)
}

// GetNode handles GET /nodes/{id}.
func (s *Server) GetNode(w http.ResponseWriter, r *http.Request) {
	node, err := s.graphops.GetNode(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, node)
}

// UpdateNode handles PUT /nodes/{id}. The stored node is replaced wholesale;
// fields absent from the body are dropped.
func (s *Server) UpdateNode(w http.ResponseWriter, r *http.Request) {
	var req nodeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	node := nodeFromRequest(req)
	if err := s.graphops.UpdateNode(r.Context(), node); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, node)
}

// DeleteNode handles DELETE /nodes/{id}.
func (s *Server) DeleteNode(w http.ResponseWriter, r *http.Request) {
	if err := s.graphops.DeleteNode(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateEdge handles POST /edges.
func (s *Server) CreateEdge(w http.ResponseWriter, r *http.Request) {
	var req edgeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	edge, err := s.graphops.AddEdge(r.Context(), graphopsuc.EdgeInput{
		Source: req.Source,
		Target: req.Target,
		Type:   req.Type,
		Weight: req.Weight,
	})
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, edge)
}

// GetEdge handles GET /edges?source=&target=&type=.
func (s *Server) GetEdge(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	source, target, edgeType := q.Get("source"), q.Get("target"), q.Get("type")
	if source == "" || target == "" || edgeType == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed,
			"source, target and type query parameters are required")
		return
	}

	edge, err := s.graphops.GetEdge(r.Context(), source, target, edgeType)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edge)
}

// TraverseFrom handles GET /traverse/{id}?depth=&types=.
func (s *Server) TraverseFrom(w http.ResponseWriter, r *http.Request) {
	depth := queryInt(r, "depth", 2)

	rows, err := s.traverse.Reachable(r.Context(), chi.URLParam(r, "id"), depth, queryTypes(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]traverseRowResponse, len(rows))
	for i, row := range rows {
		out[i] = traverseRowResponse{ID: row.NodeID, Name: row.Name, Types: row.Types}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"start":   chi.URLParam(r, "id"),
		"depth":   depth,
		"results": out,
	})
}

// Related handles GET /related/{id}?hops=&types=.
func (s *Server) Related(w http.ResponseWriter, r *http.Request) {
	hops := queryInt(r, "hops", 2)

	rows, err := s.traverse.Related(r.Context(), chi.URLParam(r, "id"), hops, queryTypes(r))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	out := make([]relatedNodeResponse, len(rows))
	for i, row := range rows {
		out[i] = relatedNodeResponse{
			ID:       row.NodeID,
			Name:     row.Name,
			NodeType: row.NodeType,
			Path:     row.Path,
			Hops:     row.Hops,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"start":    chi.URLParam(r, "id"),
		"max_hops": hops,
		"results":  out,
	})
}

func nodeFromRequest(req nodeRequest) domain.Node {
	return domain.Node{
		ID:    req.ID,
		Name:  req.Name,
		Type:  req.Type,
		Text:  req.Text,
		Tags:  req.Tags,
		Props: req.Props,
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

func queryTypes(r *http.Request) []string {
	raw := r.URL.Query().Get("types")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, p)
		}
	}
	return types
}

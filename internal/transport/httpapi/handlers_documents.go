package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// CreateDocument handles POST /documents.
func (s *Server) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	doc := domain.Document{ID: req.ID, Content: req.Content, Metadata: req.Metadata}
	if err := s.documents.Add(r.Context(), doc); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, documentToResponse(doc))
}

// GetDocument handles GET /documents/{id}.
func (s *Server) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.documents.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, documentToResponse(doc))
}

// UpdateDocument handles PUT /documents/{id}. The stored row is deleted and
// recreated from the new body with a fresh embedding.
func (s *Server) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	doc := domain.Document{ID: req.ID, Content: req.Content, Metadata: req.Metadata}
	if err := s.documents.Update(r.Context(), doc); err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentToResponse(doc))
}

// DeleteDocument handles DELETE /documents/{id}.
func (s *Server) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := s.documents.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListDocuments handles GET /documents?limit=.
func (s *Server) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.documents.List(r.Context(), queryInt(r, "limit", 0))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]documentResponse, len(docs))
	for i, d := range docs {
		items[i] = documentToResponse(d)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

// VectorSearch handles POST /search/vector.
func (s *Server) VectorSearch(w http.ResponseWriter, r *http.Request) {
	var req vectorSearchRequest
	if !decodeBody(w, r, &req) {
		return
	}

	hits, err := s.documents.Search(r.Context(), req.Query, req.TopK)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]vectorHitResponse, len(hits))
	for i, h := range hits {
		items[i] = vectorHitResponse{
			DocID:      h.DocID,
			Content:    h.Content,
			Similarity: h.Similarity,
			Metadata:   h.Metadata,
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": items,
		"total":   len(items),
	})
}

func documentToResponse(doc domain.Document) documentResponse {
	return documentResponse{ID: doc.ID, Content: doc.Content, Metadata: doc.Metadata}
}

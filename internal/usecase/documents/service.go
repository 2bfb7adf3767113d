// Package documents exposes direct document operations against the vector
// index: explicit add/get/update/delete plus pure similarity search. The
// ingestion router is the other write path; this one skips classification.
package documents

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// DefaultListLimit caps unpaged document listings.
const DefaultListLimit = 100

// Service owns direct vector document operations.
type Service struct {
	store  VectorStore
	embed  Embedder
	logger *zap.Logger
}

// New creates a documents service.
func New(store VectorStore, embed Embedder, logger *zap.Logger) *Service {
	return &Service{store: store, embed: embed, logger: logger}
}

// Add embeds the content and writes one document.
func (s *Service) Add(ctx context.Context, doc domain.Document) error {
	if err := validate(doc); err != nil {
		return err
	}
	emb, err := s.embed.Embed(ctx, doc.Content)
	if err != nil {
		return err
	}
	if err := s.store.AddDocument(ctx, doc, emb.Embedding); err != nil {
		return err
	}
	s.logger.Debug("document added", zap.String("id", doc.ID))
	return nil
}

// Get fetches one document by id.
func (s *Service) Get(ctx context.Context, id string) (domain.Document, error) {
	if id == "" {
		return domain.Document{}, domain.NewMissingFields("id")
	}
	return s.store.GetDocument(ctx, id)
}

// Update re-embeds the new content and replaces the stored document. The old
// row is removed first so stale fields never survive the rewrite.
func (s *Service) Update(ctx context.Context, doc domain.Document) error {
	if err := validate(doc); err != nil {
		return err
	}
	if _, err := s.store.GetDocument(ctx, doc.ID); err != nil {
		return err
	}
	emb, err := s.embed.Embed(ctx, doc.Content)
	if err != nil {
		return err
	}
	return s.store.UpdateDocument(ctx, doc, emb.Embedding)
}

// Delete removes a document by id.
func (s *Service) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewMissingFields("id")
	}
	deleted, err := s.store.DeleteDocument(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// List returns up to limit documents.
func (s *Service) List(ctx context.Context, limit int) ([]domain.Document, error) {
	if limit <= 0 || limit > DefaultListLimit {
		limit = DefaultListLimit
	}
	return s.store.ListDocuments(ctx, limit)
}

// Search embeds the query and returns similarity-ranked hits.
func (s *Service) Search(ctx context.Context, query string, topK int) ([]domain.VectorHit, error) {
	if query == "" {
		return nil, domain.NewMissingFields("query")
	}
	if topK <= 0 {
		topK = 10
	}
	emb, err := s.embed.Embed(ctx, query)
	if err != nil {
		return nil, err
	}
	return s.store.Search(ctx, emb.Embedding, topK)
}

// Stats reports vector store counters.
func (s *Service) Stats(ctx context.Context) (domain.VectorStats, error) {
	return s.store.Stats(ctx)
}

func validate(doc domain.Document) error {
	var missing []string
	if doc.ID == "" {
		missing = append(missing, "id")
	}
	if doc.Content == "" {
		missing = append(missing, "content")
	}
	if len(missing) > 0 {
		return domain.NewMissingFields(missing...)
	}
	return nil
}

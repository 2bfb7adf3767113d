// Package graphops exposes node and edge mutations. Every request is validated
// against the schema allow-lists before any store call so that a rejected
// request never leaves a partial write.
package graphops

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/domain/schema"
)

// EdgeInput carries an unvalidated edge creation request. A nil Weight means
// "not provided" and defaults to 1.0 after validation.
type EdgeInput struct {
	Source string
	Target string
	Type   string
	Weight *float64
}

// Service owns validated graph mutations.
type Service struct {
	store  GraphStore
	logger *zap.Logger
}

// New creates a graph operations service.
func New(store GraphStore, logger *zap.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// AddNode validates and persists one node.
func (s *Service) AddNode(ctx context.Context, n domain.Node) error {
	if err := schema.ValidateNode(n); err != nil {
		return err
	}
	if err := s.store.AddNode(ctx, n); err != nil {
		return err
	}
	s.logger.Debug("node added", zap.String("id", n.ID), zap.String("type", n.Type))
	return nil
}

// GetNode fetches one node by id.
func (s *Service) GetNode(ctx context.Context, id string) (domain.Node, error) {
	if id == "" {
		return domain.Node{}, domain.NewMissingFields("id")
	}
	return s.store.GetNode(ctx, id)
}

// UpdateNode replaces a node by deleting it and recreating it from the new
// payload. The node must exist; fields absent from the payload are dropped,
// not merged.
func (s *Service) UpdateNode(ctx context.Context, n domain.Node) error {
	if err := schema.ValidateNode(n); err != nil {
		return err
	}
	deleted, err := s.store.DeleteNode(ctx, n.ID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNodeNotFound
	}
	return s.store.AddNode(ctx, n)
}

// DeleteNode removes a node and its attached edges.
func (s *Service) DeleteNode(ctx context.Context, id string) error {
	if id == "" {
		return domain.NewMissingFields("id")
	}
	deleted, err := s.store.DeleteNode(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrNodeNotFound
	}
	s.logger.Debug("node deleted", zap.String("id", id))
	return nil
}

// AddEdge validates and persists one directed edge.
func (s *Service) AddEdge(ctx context.Context, in EdgeInput) (domain.Edge, error) {
	if err := schema.ValidateEdge(in.Source, in.Target, in.Type, in.Weight); err != nil {
		return domain.Edge{}, err
	}
	weight := 1.0
	if in.Weight != nil {
		weight = *in.Weight
	}
	edge := domain.Edge{Source: in.Source, Target: in.Target, Type: in.Type, Weight: weight}
	if err := s.store.AddEdge(ctx, edge); err != nil {
		return domain.Edge{}, err
	}
	s.logger.Debug("edge added",
		zap.String("source", edge.Source),
		zap.String("target", edge.Target),
		zap.String("type", edge.Type),
	)
	return edge, nil
}

// GetEdge fetches a typed edge between two nodes. The type is validated
// against the relation allow-list before it reaches the store, which
// interpolates it into the Cypher query.
func (s *Service) GetEdge(ctx context.Context, source, target, edgeType string) (domain.Edge, error) {
	if err := schema.ValidateEdge(source, target, edgeType, nil); err != nil {
		return domain.Edge{}, err
	}
	return s.store.GetEdge(ctx, source, target, edgeType)
}

// Stats reports graph store counters.
func (s *Service) Stats(ctx context.Context) (domain.GraphStats, error) {
	return s.store.Stats(ctx)
}

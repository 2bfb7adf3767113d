// Package graph implements the graph store contract over Neo4j. All node and
// edge mutations are validated upstream by the schema package; this client is
// a thin Cypher adapter.
package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// Config holds connection parameters for the graph store.
type Config struct {
	URI      string
	Username string
	Password string
}

// Store is the Neo4j-backed graph store client.
type Store struct {
	driver neo4j.DriverWithContext
}

// New creates a graph store client.
func New(cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, fmt.Errorf("uri is required")
	}

	driver, err := neo4j.NewDriverWithContext(
		cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	return &Store{driver: driver}, nil
}

// Ping verifies connectivity to the graph store.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.driver.VerifyConnectivity(ctx); err != nil {
		return fmt.Errorf("verify connectivity: %w", err)
	}
	return nil
}

// Close shuts down the driver.
func (s *Store) Close(ctx context.Context) {
	_ = s.driver.Close(ctx)
}

func (s *Store) readSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
}

func (s *Store) writeSession(ctx context.Context) neo4j.SessionWithContext {
	return s.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
}

// storeErr tags an underlying failure with the operation name and the
// ErrStoreUnavailable sentinel for HTTP mapping.
func storeErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStoreUnavailable, err)
}

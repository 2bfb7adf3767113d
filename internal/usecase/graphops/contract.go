package graphops

import (
	"context"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// GraphStore is the graph persistence contract.
type GraphStore interface {
	AddNode(ctx context.Context, n domain.Node) error
	GetNode(ctx context.Context, id string) (domain.Node, error)
	DeleteNode(ctx context.Context, id string) (bool, error)
	AddEdge(ctx context.Context, e domain.Edge) error
	GetEdge(ctx context.Context, source, target, edgeType string) (domain.Edge, error)
	Stats(ctx context.Context) (domain.GraphStats, error)
}

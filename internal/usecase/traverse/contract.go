package traverse

import (
	"context"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// GraphReader is the graph read contract used by the traversal engine.
type GraphReader interface {
	GetNode(ctx context.Context, id string) (domain.Node, error)
	SearchNodes(ctx context.Context, query string, limit int) ([]domain.Node, error)
	Neighbors(ctx context.Context, id string, allowedTypes []string) ([]domain.Neighbor, error)
	Traverse(ctx context.Context, startID string, depth, limit int, allowedTypes []string) ([]domain.TraverseRow, error)
}

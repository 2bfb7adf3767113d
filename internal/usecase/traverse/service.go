// Package traverse implements the two bounded graph query shapes: keyword
// matching over node fields and multi-hop expansion from a start node. Both
// are capped so dense graphs cannot fan out unboundedly; the caps, not cycle
// detection, are the safety mechanism.
package traverse

import (
	"context"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/domain/schema"
	"github.com/kailas-cloud/graphdex/internal/metrics"
)

// Options bounds traversal work per request.
type Options struct {
	// KeywordLimit caps keyword match results.
	KeywordLimit int
	// TraverseLimit caps rows emitted by a multi-hop expansion.
	TraverseLimit int
	// BaseScore is the flat relevance score every keyword match receives.
	BaseScore float64
	// DefaultTypes is the relationship-type filter applied when the caller
	// provides none.
	DefaultTypes []string
}

// DefaultOptions returns the standard traversal bounds.
func DefaultOptions() Options {
	return Options{
		KeywordLimit:  10,
		TraverseLimit: 20,
		BaseScore:     0.9,
		DefaultTypes:  schema.DefaultTraversalTypes(),
	}
}

// Match is one keyword-matched node. Every match carries the same flat base
// score; matches are not ranked by match quality.
type Match struct {
	NodeID string
	Name   string
	Score  float64
}

// RelatedNode is one node reached by a bounded multi-hop expansion.
type RelatedNode struct {
	NodeID   string
	Name     string
	NodeType string
	Path     []string
	Hops     int
}

// Service is the graph traversal engine.
type Service struct {
	graph  GraphReader
	opts   Options
	logger *zap.Logger
}

// New creates a traversal engine.
func New(graph GraphReader, opts Options, logger *zap.Logger) *Service {
	if opts.KeywordLimit <= 0 {
		opts.KeywordLimit = 10
	}
	if opts.TraverseLimit <= 0 {
		opts.TraverseLimit = 20
	}
	if opts.BaseScore == 0 {
		opts.BaseScore = 0.9
	}
	if len(opts.DefaultTypes) == 0 {
		opts.DefaultTypes = schema.DefaultTraversalTypes()
	}
	return &Service{graph: graph, opts: opts, logger: logger}
}

// KeywordMatches finds nodes whose id, name, type, or tags contain the query
// and assigns each the flat base score.
func (s *Service) KeywordMatches(ctx context.Context, query string) ([]Match, error) {
	if query == "" {
		return nil, domain.NewMissingFields("query")
	}
	nodes, err := s.graph.SearchNodes(ctx, query, s.opts.KeywordLimit)
	if err != nil {
		return nil, err
	}
	matches := make([]Match, 0, len(nodes))
	for _, n := range nodes {
		matches = append(matches, Match{NodeID: n.ID, Name: n.Name, Score: s.opts.BaseScore})
	}
	return matches, nil
}

// Reachable lists nodes reachable from startID within depth hops, via the
// store's path query. The start node must exist.
func (s *Service) Reachable(ctx context.Context, startID string, depth int, types []string) ([]domain.TraverseRow, error) {
	if startID == "" {
		return nil, domain.NewMissingFields("id")
	}
	if _, err := s.graph.GetNode(ctx, startID); err != nil {
		return nil, err
	}
	if depth < 1 {
		depth = 1
	}
	if len(types) == 0 {
		types = s.opts.DefaultTypes
	}
	rows, err := s.graph.Traverse(ctx, startID, depth, s.opts.TraverseLimit, types)
	if err != nil {
		return nil, err
	}
	metrics.TraversalRows.Observe(float64(len(rows)))
	return rows, nil
}

// Related expands breadth-first from startID up to maxHops, emitting one row
// per reached node in ascending hop order. A node reached by several paths is
// emitted once, at its shortest hop distance. The start node must exist and
// is never emitted itself.
func (s *Service) Related(ctx context.Context, startID string, maxHops int, types []string) ([]RelatedNode, error) {
	if startID == "" {
		return nil, domain.NewMissingFields("id")
	}
	if _, err := s.graph.GetNode(ctx, startID); err != nil {
		return nil, err
	}
	if maxHops < 1 {
		maxHops = 1
	}
	if len(types) == 0 {
		types = s.opts.DefaultTypes
	}

	type frontier struct {
		id   string
		hop  int
		path []string
	}

	emitted := map[string]struct{}{startID: {}}
	queue := []frontier{{id: startID, hop: 0}}
	var out []RelatedNode

	for len(queue) > 0 && len(out) < s.opts.TraverseLimit {
		cur := queue[0]
		queue = queue[1:]

		neighbors, err := s.graph.Neighbors(ctx, cur.id, types)
		if err != nil {
			return nil, err
		}
		for _, nb := range neighbors {
			path := append(append([]string(nil), cur.path...), nb.EdgeType)

			if _, seen := emitted[nb.NodeID]; !seen {
				out = append(out, RelatedNode{
					NodeID:   nb.NodeID,
					Name:     nb.Name,
					NodeType: nb.NodeType,
					Path:     path,
					Hops:     cur.hop + 1,
				})
				emitted[nb.NodeID] = struct{}{}
				if len(out) == s.opts.TraverseLimit {
					break
				}
			}

			if cur.hop+1 < maxHops {
				queue = append(queue, frontier{id: nb.NodeID, hop: cur.hop + 1, path: path})
			}
		}
	}

	metrics.TraversalRows.Observe(float64(len(out)))
	s.logger.Debug("traversal complete",
		zap.String("start", startID),
		zap.Int("max_hops", maxHops),
		zap.Int("rows", len(out)),
	)
	return out, nil
}

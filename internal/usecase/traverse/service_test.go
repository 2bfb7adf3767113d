package traverse

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

type mockGraph struct {
	nodes     map[string]domain.Node
	neighbors map[string][]domain.Neighbor
	searched  []domain.Node
	rows      []domain.TraverseRow

	searchQuery string
	searchLimit int
}

func newMockGraph() *mockGraph {
	return &mockGraph{
		nodes:     map[string]domain.Node{},
		neighbors: map[string][]domain.Neighbor{},
	}
}

func (m *mockGraph) GetNode(_ context.Context, id string) (domain.Node, error) {
	n, ok := m.nodes[id]
	if !ok {
		return domain.Node{}, domain.ErrNodeNotFound
	}
	return n, nil
}

func (m *mockGraph) SearchNodes(_ context.Context, query string, limit int) ([]domain.Node, error) {
	m.searchQuery = query
	m.searchLimit = limit
	if len(m.searched) > limit {
		return m.searched[:limit], nil
	}
	return m.searched, nil
}

func (m *mockGraph) Neighbors(_ context.Context, id string, _ []string) ([]domain.Neighbor, error) {
	return m.neighbors[id], nil
}

func (m *mockGraph) Traverse(_ context.Context, _ string, _, limit int, _ []string) ([]domain.TraverseRow, error) {
	if len(m.rows) > limit {
		return m.rows[:limit], nil
	}
	return m.rows, nil
}

// chain builds a linear graph a -> b -> c ... with RELATES_TO edges.
func (m *mockGraph) chain(ids ...string) {
	for i, id := range ids {
		m.nodes[id] = domain.Node{ID: id, Name: id}
		if i > 0 {
			prev := ids[i-1]
			m.neighbors[prev] = append(m.neighbors[prev], domain.Neighbor{
				NodeID: id, Name: id, EdgeType: "RELATES_TO", Weight: 1.0,
			})
		}
	}
}

func TestKeywordMatchesFlatScore(t *testing.T) {
	g := newMockGraph()
	g.searched = []domain.Node{{ID: "n1", Name: "alpha"}, {ID: "n2", Name: "beta"}}
	svc := New(g, DefaultOptions(), zap.NewNop())

	matches, err := svc.KeywordMatches(context.Background(), "alph")
	if err != nil {
		t.Fatalf("KeywordMatches() error = %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("matches = %d, want 2", len(matches))
	}
	for _, m := range matches {
		if m.Score != 0.9 {
			t.Errorf("Score = %v, want flat 0.9", m.Score)
		}
	}
	if g.searchLimit != 10 {
		t.Errorf("search limit = %d, want 10", g.searchLimit)
	}
}

func TestKeywordMatchesCap(t *testing.T) {
	g := newMockGraph()
	for i := 0; i < 15; i++ {
		g.searched = append(g.searched, domain.Node{ID: string(rune('a' + i))})
	}
	svc := New(g, DefaultOptions(), zap.NewNop())

	matches, err := svc.KeywordMatches(context.Background(), "x")
	if err != nil {
		t.Fatalf("KeywordMatches() error = %v", err)
	}
	if len(matches) != 10 {
		t.Errorf("matches = %d, want capped at 10", len(matches))
	}
}

func TestRelatedMissingStart(t *testing.T) {
	svc := New(newMockGraph(), DefaultOptions(), zap.NewNop())

	_, err := svc.Related(context.Background(), "ghost", 2, nil)
	if !errors.Is(err, domain.ErrNodeNotFound) {
		t.Fatalf("Related() error = %v, want ErrNodeNotFound", err)
	}
}

func TestRelatedHopOrderAndBound(t *testing.T) {
	g := newMockGraph()
	g.chain("a", "b", "c", "d")
	svc := New(g, DefaultOptions(), zap.NewNop())

	rows, err := svc.Related(context.Background(), "a", 2, nil)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (hop limit excludes d)", len(rows))
	}
	if rows[0].NodeID != "b" || rows[0].Hops != 1 {
		t.Errorf("rows[0] = %+v, want b at hop 1", rows[0])
	}
	if rows[1].NodeID != "c" || rows[1].Hops != 2 {
		t.Errorf("rows[1] = %+v, want c at hop 2", rows[1])
	}
	if len(rows[1].Path) != 2 || rows[1].Path[0] != "RELATES_TO" {
		t.Errorf("Path = %v, want two-step relationship sequence", rows[1].Path)
	}
}

func TestRelatedDeduplicatesByShortestPath(t *testing.T) {
	g := newMockGraph()
	g.nodes["a"] = domain.Node{ID: "a"}
	g.nodes["b"] = domain.Node{ID: "b"}
	g.nodes["c"] = domain.Node{ID: "c"}
	// a reaches c both directly and through b.
	g.neighbors["a"] = []domain.Neighbor{
		{NodeID: "b", EdgeType: "RELATES_TO"},
		{NodeID: "c", EdgeType: "USES"},
	}
	g.neighbors["b"] = []domain.Neighbor{{NodeID: "c", EdgeType: "RELATES_TO"}}
	svc := New(g, DefaultOptions(), zap.NewNop())

	rows, err := svc.Related(context.Background(), "a", 3, nil)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (c emitted once)", len(rows))
	}
	for _, r := range rows {
		if r.NodeID == "c" && r.Hops != 1 {
			t.Errorf("c emitted at hop %d, want shortest distance 1", r.Hops)
		}
	}
}

func TestRelatedResultCap(t *testing.T) {
	g := newMockGraph()
	g.nodes["hub"] = domain.Node{ID: "hub"}
	for i := 0; i < 30; i++ {
		id := "leaf-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		g.neighbors["hub"] = append(g.neighbors["hub"], domain.Neighbor{
			NodeID: id, EdgeType: "RELATES_TO",
		})
	}
	svc := New(g, DefaultOptions(), zap.NewNop())

	rows, err := svc.Related(context.Background(), "hub", 1, nil)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(rows) != 20 {
		t.Errorf("rows = %d, want capped at 20", len(rows))
	}
}

func TestRelatedCycleStaysBounded(t *testing.T) {
	g := newMockGraph()
	g.nodes["a"] = domain.Node{ID: "a"}
	g.nodes["b"] = domain.Node{ID: "b"}
	g.neighbors["a"] = []domain.Neighbor{{NodeID: "b", EdgeType: "RELATES_TO"}}
	g.neighbors["b"] = []domain.Neighbor{{NodeID: "a", EdgeType: "RELATES_TO"}}
	svc := New(g, DefaultOptions(), zap.NewNop())

	rows, err := svc.Related(context.Background(), "a", 5, nil)
	if err != nil {
		t.Fatalf("Related() error = %v", err)
	}
	if len(rows) != 1 || rows[0].NodeID != "b" {
		t.Errorf("rows = %+v, want only b once", rows)
	}
}

func TestReachableMissingStart(t *testing.T) {
	svc := New(newMockGraph(), DefaultOptions(), zap.NewNop())

	_, err := svc.Reachable(context.Background(), "ghost", 2, nil)
	if !errors.Is(err, domain.ErrNodeNotFound) {
		t.Fatalf("Reachable() error = %v, want ErrNodeNotFound", err)
	}
}

func TestReachableCapsRows(t *testing.T) {
	g := newMockGraph()
	g.nodes["a"] = domain.Node{ID: "a"}
	for i := 0; i < 25; i++ {
		g.rows = append(g.rows, domain.TraverseRow{NodeID: "n"})
	}
	svc := New(g, DefaultOptions(), zap.NewNop())

	rows, err := svc.Reachable(context.Background(), "a", 3, nil)
	if err != nil {
		t.Fatalf("Reachable() error = %v", err)
	}
	if len(rows) != 20 {
		t.Errorf("rows = %d, want capped at 20", len(rows))
	}
}

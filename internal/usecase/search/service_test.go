package search

import (
	"context"
	"fmt"
	"math"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/domain/fusion"
	"github.com/kailas-cloud/graphdex/internal/domain/fusion/mode"
	"github.com/kailas-cloud/graphdex/internal/usecase/traverse"
)

type mockVector struct {
	hits      []domain.VectorHit
	lastLimit int
}

func (m *mockVector) Search(_ context.Context, _ []float32, topK int) ([]domain.VectorHit, error) {
	m.lastLimit = topK
	if len(m.hits) > topK {
		return m.hits[:topK], nil
	}
	return m.hits, nil
}

type mockGraph struct {
	matches []traverse.Match
	calls   int
}

func (m *mockGraph) KeywordMatches(_ context.Context, _ string) ([]traverse.Match, error) {
	m.calls++
	return m.matches, nil
}

type mockEmbedder struct{}

func (mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	return domain.EmbeddingResult{Embedding: []float32{1, 0, 0}}, nil
}

func newRequest(t *testing.T, m mode.Mode, topK, page int) fusion.Request {
	t.Helper()
	req, err := fusion.New("graph retrieval", m, nil, nil, topK, page)
	if err != nil {
		t.Fatalf("fusion.New() error = %v", err)
	}
	return req
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSearchFusesGraphBoosts(t *testing.T) {
	v := &mockVector{hits: []domain.VectorHit{
		{DocID: "x", Similarity: 0.8},
		{DocID: "y", Similarity: 0.6},
	}}
	g := &mockGraph{matches: []traverse.Match{{NodeID: "y", Score: 1.0}}}
	svc := New(v, g, mockEmbedder{}, 0, zap.NewNop())

	page, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 10, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(page.Hits))
	}
	// x: 0.8*0.7 = 0.56; y: 0.6*0.7 + 1.0*0.3 = 0.72; boost flips the order.
	if page.Hits[0].DocID != "y" || !almostEqual(page.Hits[0].HybridScore, 0.72) {
		t.Errorf("Hits[0] = %s score %v, want y at 0.72", page.Hits[0].DocID, page.Hits[0].HybridScore)
	}
	if page.Hits[1].DocID != "x" || !almostEqual(page.Hits[1].HybridScore, 0.56) {
		t.Errorf("Hits[1] = %s score %v, want x at 0.56", page.Hits[1].DocID, page.Hits[1].HybridScore)
	}
}

func TestSearchVectorOnlySkipsGraph(t *testing.T) {
	v := &mockVector{hits: []domain.VectorHit{{DocID: "x", Similarity: 0.8}}}
	g := &mockGraph{matches: []traverse.Match{{NodeID: "x", Score: 1.0}}}
	svc := New(v, g, mockEmbedder{}, 0, zap.NewNop())

	page, err := svc.Search(context.Background(), newRequest(t, mode.VectorOnly, 10, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if g.calls != 0 {
		t.Errorf("graph queried %d times in vector_only mode, want 0", g.calls)
	}
	if !almostEqual(page.Hits[0].HybridScore, 0.8*0.7) {
		t.Errorf("HybridScore = %v, want similarity*vectorWeight only", page.Hits[0].HybridScore)
	}
}

func TestSearchGraphModeRanksByBoostsAlone(t *testing.T) {
	v := &mockVector{hits: []domain.VectorHit{
		{DocID: "x", Similarity: 0.9},
		{DocID: "y", Similarity: 0.1},
	}}
	g := &mockGraph{matches: []traverse.Match{{NodeID: "y", Score: 0.9}}}
	svc := New(v, g, mockEmbedder{}, 0, zap.NewNop())

	page, err := svc.Search(context.Background(), newRequest(t, mode.Graph, 10, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Hits[0].DocID != "y" {
		t.Errorf("Hits[0] = %s, want y (similarity ignored in graph mode)", page.Hits[0].DocID)
	}
	if !almostEqual(page.Hits[1].HybridScore, 0) {
		t.Errorf("unboosted hit score = %v, want 0", page.Hits[1].HybridScore)
	}
}

func TestSearchGraphOnlyMatchesNotInjected(t *testing.T) {
	v := &mockVector{hits: []domain.VectorHit{{DocID: "x", Similarity: 0.5}}}
	g := &mockGraph{matches: []traverse.Match{{NodeID: "orphan", Score: 0.9}}}
	svc := New(v, g, mockEmbedder{}, 0, zap.NewNop())

	page, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 10, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page.Hits) != 1 || page.Hits[0].DocID != "x" {
		t.Errorf("hits = %+v, want only the vector hit", page.Hits)
	}
}

func TestSearchStableSortPreservesVectorOrderOnTies(t *testing.T) {
	v := &mockVector{hits: []domain.VectorHit{
		{DocID: "first", Similarity: 0.5},
		{DocID: "second", Similarity: 0.5},
	}}
	svc := New(v, &mockGraph{}, mockEmbedder{}, 0, zap.NewNop())

	page, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 10, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if page.Hits[0].DocID != "first" || page.Hits[1].DocID != "second" {
		t.Errorf("tie order = [%s %s], want vector order preserved",
			page.Hits[0].DocID, page.Hits[1].DocID)
	}
}

func TestSearchPagination(t *testing.T) {
	v := &mockVector{}
	for i := 0; i < 12; i++ {
		v.hits = append(v.hits, domain.VectorHit{
			DocID:      fmt.Sprintf("d%02d", i),
			Similarity: 1.0 - float64(i)*0.05,
		})
	}
	svc := New(v, &mockGraph{}, mockEmbedder{}, 0, zap.NewNop())

	page1, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 5, 1))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page1.Hits) != 5 || page1.TotalHits != 12 || page1.TotalPages != 3 {
		t.Errorf("page1 = %d hits, total %d, pages %d; want 5/12/3",
			len(page1.Hits), page1.TotalHits, page1.TotalPages)
	}
	if page1.Hits[0].Rank != 1 {
		t.Errorf("first rank = %d, want 1", page1.Hits[0].Rank)
	}

	page3, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 5, 3))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page3.Hits) != 2 {
		t.Errorf("page3 hits = %d, want 2", len(page3.Hits))
	}
	if page3.Hits[0].Rank != 11 {
		t.Errorf("page3 first rank = %d, want absolute rank 11", page3.Hits[0].Rank)
	}

	page4, err := svc.Search(context.Background(), newRequest(t, mode.Hybrid, 5, 4))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(page4.Hits) != 0 {
		t.Errorf("page4 hits = %d, want empty beyond the end", len(page4.Hits))
	}
	if page4.TotalPages != 3 {
		t.Errorf("page4 TotalPages = %d, want 3", page4.TotalPages)
	}
}

func TestSearchPoolCoversRequestedPage(t *testing.T) {
	v := &mockVector{}
	svc := New(v, &mockGraph{}, mockEmbedder{}, 50, zap.NewNop())

	_, err := svc.Search(context.Background(), newRequest(t, mode.VectorOnly, 100, 2))
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if v.lastLimit != 200 {
		t.Errorf("vector limit = %d, want 200 to cover page 2 of 100", v.lastLimit)
	}
}

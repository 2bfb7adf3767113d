// Package search is the score fusion engine. It anchors the ranked list on
// vector hits and folds graph-derived relevance in as additive boosts; graph
// matches with no corresponding vector hit never enter the list on their own.
package search

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/domain/fusion"
	"github.com/kailas-cloud/graphdex/internal/domain/fusion/mode"
	"github.com/kailas-cloud/graphdex/internal/metrics"
)

// DefaultCandidateLimit is the vector hit pool size fused before pagination.
const DefaultCandidateLimit = 50

// Page is one page of fused search results.
type Page struct {
	Hits       []domain.SearchHit
	Page       int
	TopK       int
	TotalHits  int
	TotalPages int
	Mode       mode.Mode
}

// Service fuses vector similarity with graph relevance.
type Service struct {
	vector         VectorSearcher
	graph          KeywordMatcher
	embed          Embedder
	candidateLimit int
	logger         *zap.Logger
}

// New creates a fusion search service. candidateLimit bounds the vector hit
// pool; zero selects the default.
func New(vector VectorSearcher, graph KeywordMatcher, embed Embedder, candidateLimit int, logger *zap.Logger) *Service {
	if candidateLimit <= 0 {
		candidateLimit = DefaultCandidateLimit
	}
	return &Service{
		vector:         vector,
		graph:          graph,
		embed:          embed,
		candidateLimit: candidateLimit,
		logger:         logger,
	}
}

// Search runs one fused query and returns the requested page.
func (s *Service) Search(ctx context.Context, req fusion.Request) (Page, error) {
	start := time.Now()
	defer func() {
		metrics.FusionSearchDuration.WithLabelValues(string(req.Mode())).Observe(time.Since(start).Seconds())
	}()

	emb, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return Page{}, err
	}

	// The pool must cover the requested page so late pages stay reachable.
	limit := s.candidateLimit
	if need := req.Page() * req.TopK(); need > limit {
		limit = need
	}
	hits, err := s.vector.Search(ctx, emb.Embedding, limit)
	if err != nil {
		return Page{}, err
	}

	boosts, err := s.graphBoosts(ctx, req)
	if err != nil {
		return Page{}, err
	}

	vectorWeight := req.VectorWeight()
	if req.Mode() == mode.Graph {
		vectorWeight = 0
	}

	fused := make([]domain.SearchHit, 0, len(hits))
	for _, h := range hits {
		fused = append(fused, domain.SearchHit{
			DocID:       h.DocID,
			Content:     h.Content,
			Similarity:  h.Similarity,
			HybridScore: h.Similarity*vectorWeight + boosts[h.DocID],
			Metadata:    h.Metadata,
		})
	}

	// Stable sort preserves vector-rank order among equal scores.
	sort.SliceStable(fused, func(i, j int) bool {
		return fused[i].HybridScore > fused[j].HybridScore
	})
	for i := range fused {
		fused[i].Rank = i + 1
	}

	page := paginate(fused, req.Page(), req.TopK())
	page.Mode = req.Mode()

	s.logger.Debug("search fused",
		zap.String("mode", string(req.Mode())),
		zap.Int("candidates", len(hits)),
		zap.Int("boosted", len(boosts)),
		zap.Int("page", req.Page()),
		zap.Int("returned", len(page.Hits)),
	)
	return page, nil
}

// graphBoosts maps document id to graph relevance pre-multiplied by the graph
// weight. The graph query is skipped entirely in vector_only mode.
func (s *Service) graphBoosts(ctx context.Context, req fusion.Request) (map[string]float64, error) {
	if req.Mode() == mode.VectorOnly {
		return nil, nil
	}
	matches, err := s.graph.KeywordMatches(ctx, req.Query())
	if err != nil {
		return nil, err
	}
	boosts := make(map[string]float64, len(matches))
	for _, m := range matches {
		boosts[m.NodeID] = m.Score * req.GraphWeight()
	}
	return boosts, nil
}

func paginate(hits []domain.SearchHit, pageNum, topK int) Page {
	total := len(hits)
	totalPages := (total + topK - 1) / topK

	offset := (pageNum - 1) * topK
	var slice []domain.SearchHit
	if offset < total {
		end := offset + topK
		if end > total {
			end = total
		}
		slice = hits[offset:end]
	}

	return Page{
		Hits:       slice,
		Page:       pageNum,
		TopK:       topK,
		TotalHits:  total,
		TotalPages: totalPages,
	}
}

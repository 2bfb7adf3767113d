// Package ingest classifies incoming records and routes them to the vector
// index, the relationship graph, both, or neither. The route decision is
// computed once per payload and drives all further branching.
package ingest

import (
	"context"
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/graphdex/internal/domain"
	"github.com/kailas-cloud/graphdex/internal/domain/schema"
	"github.com/kailas-cloud/graphdex/internal/metrics"
)

// MinCleanedLength is the minimum cleaned-text length below which a payload
// with no structural data is rejected as noise.
const MinCleanedLength = 10

// Payload is an arbitrary ingest record. All fields are optional; the
// classification step turns field presence into an explicit route decision.
type Payload struct {
	ID          string `json:"id,omitempty"`
	Text        string `json:"text,omitempty"`
	Content     string `json:"content,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`

	Metadata map[string]string `json:"metadata,omitempty"`

	Nodes         []NodePayload `json:"nodes,omitempty"`
	Edges         []EdgePayload `json:"edges,omitempty"`
	Relationships []EdgePayload `json:"relationships,omitempty"`
	ParentID      string        `json:"parent_id,omitempty"`
	Children      []string      `json:"children,omitempty"`
}

// NodePayload is one node element of a structural list.
type NodePayload struct {
	ID   string            `json:"id"`
	Name string            `json:"name,omitempty"`
	Type string            `json:"type,omitempty"`
	Text string            `json:"text,omitempty"`
	Tags []string          `json:"tags,omitempty"`
	Props map[string]string `json:"props,omitempty"`
}

// EdgePayload is one edge element of a structural list.
type EdgePayload struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   string   `json:"type"`
	Weight *float64 `json:"weight,omitempty"`
}

// Result reports the route decision and per-store outcome counts. Dispatch is
// best-effort: a partial failure is visible through Errors, never rolled back.
type Result struct {
	Decision       domain.RouteDecision
	DocID          string
	DocumentsAdded int
	NodesAdded     int
	EdgesAdded     int
	Errors         []string
}

// Service is the ingestion router.
type Service struct {
	vector VectorWriter
	graph  GraphWriter
	embed  Embedder
	logger *zap.Logger
}

// New creates an ingestion router.
func New(vector VectorWriter, graph GraphWriter, embed Embedder, logger *zap.Logger) *Service {
	return &Service{vector: vector, graph: graph, embed: embed, logger: logger}
}

// Ingest cleans, classifies, and dispatches one payload.
func (s *Service) Ingest(ctx context.Context, p Payload) (Result, error) {
	structural := len(p.Nodes) > 0 || len(p.Edges) > 0 || len(p.Relationships) > 0

	raw := firstText(p)
	text := raw
	if !structural {
		text = cleanText(raw)
		if raw != "" && len(text) < MinCleanedLength {
			return Result{}, fmt.Errorf("cleaned text %q is below %d characters: %w",
				text, MinCleanedLength, domain.ErrNoiseRejected)
		}
	}

	hasText := p.Text != "" || p.Content != "" || p.Title != "" || p.Description != ""
	hasRelationships := structural || p.ParentID != "" || len(p.Children) > 0

	decision := domain.DecideRoute(hasText, hasRelationships)
	metrics.IngestTotal.WithLabelValues(string(decision)).Inc()

	res := Result{Decision: decision}

	if decision == domain.RouteVectorOnly || decision == domain.RouteBoth {
		s.dispatchVector(ctx, p, text, &res)
	}
	if decision == domain.RouteGraphOnly || decision == domain.RouteBoth {
		s.dispatchGraph(ctx, p, &res)
	}

	s.logger.Info("payload ingested",
		zap.String("decision", string(decision)),
		zap.Int("documents", res.DocumentsAdded),
		zap.Int("nodes", res.NodesAdded),
		zap.Int("edges", res.EdgesAdded),
		zap.Int("errors", len(res.Errors)),
	)
	return res, nil
}

// dispatchVector embeds the text and writes one document.
func (s *Service) dispatchVector(ctx context.Context, p Payload, text string, res *Result) {
	id := p.ID
	if id == "" {
		id = generateDocID(text)
	}
	res.DocID = id

	emb, err := s.embed.Embed(ctx, text)
	if err != nil {
		// The fallback chain makes this unreachable in practice.
		res.Errors = append(res.Errors, "embed: "+err.Error())
		return
	}

	doc := domain.Document{ID: id, Content: text, Metadata: p.Metadata}
	if err := s.vector.AddDocument(ctx, doc, emb.Embedding); err != nil {
		res.Errors = append(res.Errors, "vector add: "+err.Error())
		return
	}
	res.DocumentsAdded++
}

// dispatchGraph iterates the structural lists, each element independently
// best-effort. parent_id and children are expressed as CHILD_OF edges
// anchored on the payload id.
func (s *Service) dispatchGraph(ctx context.Context, p Payload, res *Result) {
	for _, np := range p.Nodes {
		if np.ID == "" {
			res.Errors = append(res.Errors, "node: missing id")
			continue
		}
		if np.Type != "" {
			if _, ok := schema.NodeTypes[np.Type]; !ok {
				res.Errors = append(res.Errors, fmt.Sprintf("node %s: type %q not allowed", np.ID, np.Type))
				continue
			}
		}
		node := domain.Node{
			ID: np.ID, Name: np.Name, Type: np.Type,
			Text: np.Text, Tags: np.Tags, Props: np.Props,
		}
		if err := s.graph.AddNode(ctx, node); err != nil {
			res.Errors = append(res.Errors, "node "+np.ID+": "+err.Error())
			continue
		}
		res.NodesAdded++
	}

	edges := make([]EdgePayload, 0, len(p.Edges)+len(p.Relationships)+1+len(p.Children))
	edges = append(edges, p.Edges...)
	edges = append(edges, p.Relationships...)

	anchor := p.ID
	if anchor == "" {
		anchor = res.DocID
	}
	if p.ParentID != "" && anchor != "" {
		edges = append(edges, EdgePayload{Source: anchor, Target: p.ParentID, Type: "CHILD_OF"})
	}
	for _, child := range p.Children {
		if anchor != "" {
			edges = append(edges, EdgePayload{Source: child, Target: anchor, Type: "CHILD_OF"})
		}
	}

	for _, ep := range edges {
		if err := schema.ValidateEdge(ep.Source, ep.Target, ep.Type, ep.Weight); err != nil {
			res.Errors = append(res.Errors, "edge: "+err.Error())
			continue
		}
		weight := 1.0
		if ep.Weight != nil {
			weight = *ep.Weight
		}
		edge := domain.Edge{Source: ep.Source, Target: ep.Target, Type: ep.Type, Weight: weight}
		if err := s.graph.AddEdge(ctx, edge); err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("edge %s->%s: %v", ep.Source, ep.Target, err))
			continue
		}
		res.EdgesAdded++
	}
}

// firstText returns the first non-empty of the four text-like fields.
func firstText(p Payload) string {
	for _, t := range []string{p.Text, p.Content, p.Title, p.Description} {
		if t != "" {
			return t
		}
	}
	return ""
}

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	disallowed    = regexp.MustCompile(`[^\w\s.,!?]`)
)

// cleanText collapses whitespace runs, strips characters outside word chars,
// whitespace and basic punctuation, and trims.
func cleanText(text string) string {
	text = whitespaceRun.ReplaceAllString(text, " ")
	text = disallowed.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// generateDocID derives an id for payloads that do not carry one.
func generateDocID(text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(text))
	return fmt.Sprintf("doc-%x-%x", h.Sum64(), time.Now().UnixNano())
}

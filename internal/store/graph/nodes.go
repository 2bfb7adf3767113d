package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// AddNode upserts a node by id. Name defaults to the id when empty.
func (s *Store) AddNode(ctx context.Context, n domain.Node) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	name := n.Name
	if name == "" {
		name = n.ID
	}

	props := map[string]any{}
	for k, v := range n.Props {
		props[k] = v
	}

	query := `
		MERGE (n:Entity {id: $id})
		SET n.name = $name,
		    n.type = $type,
		    n.text = $text,
		    n.tags = $tags
		SET n += $props
	`

	_, err := session.Run(ctx, query, map[string]any{
		"id":    n.ID,
		"name":  name,
		"type":  n.Type,
		"text":  n.Text,
		"tags":  n.Tags,
		"props": props,
	})
	if err != nil {
		return storeErr("add node", err)
	}
	return nil
}

// GetNode fetches a node by id.
func (s *Store) GetNode(ctx context.Context, id string) (domain.Node, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (n:Entity {id: $id})
		RETURN n.id AS id, n.name AS name, n.type AS type, n.text AS text, n.tags AS tags
	`

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return domain.Node{}, storeErr("get node", err)
	}

	if result.Next(ctx) {
		rec := result.Record()
		return domain.Node{
			ID:   recordString(rec, "id"),
			Name: recordString(rec, "name"),
			Type: recordString(rec, "type"),
			Text: recordString(rec, "text"),
			Tags: recordStrings(rec, "tags"),
		}, nil
	}
	if err := result.Err(); err != nil {
		return domain.Node{}, storeErr("get node", err)
	}
	return domain.Node{}, fmt.Errorf("node %q: %w", id, domain.ErrNodeNotFound)
}

// DeleteNode removes a node and its relationships. Returns false when the
// node did not exist.
func (s *Store) DeleteNode(ctx context.Context, id string) (bool, error) {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (n:Entity {id: $id})
		DETACH DELETE n
	`

	result, err := session.Run(ctx, query, map[string]any{"id": id})
	if err != nil {
		return false, storeErr("delete node", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return false, storeErr("delete node", err)
	}
	return summary.Counters().NodesDeleted() > 0, nil
}

// AddEdge creates a directed typed edge between two existing nodes. The edge
// type must be validated against the allow-list before this call: Cypher
// cannot parameterize relationship types, so the type is interpolated.
func (s *Store) AddEdge(ctx context.Context, e domain.Edge) error {
	session := s.writeSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:Entity {id: $source})
		MATCH (b:Entity {id: $target})
		MERGE (a)-[r:%s]->(b)
		SET r.weight = $weight
	`, e.Type)

	result, err := session.Run(ctx, query, map[string]any{
		"source": e.Source,
		"target": e.Target,
		"weight": e.Weight,
	})
	if err != nil {
		return storeErr("add edge", err)
	}
	summary, err := result.Consume(ctx)
	if err != nil {
		return storeErr("add edge", err)
	}
	// MERGE touches nothing when either endpoint is missing.
	if summary.Counters().RelationshipsCreated() == 0 && summary.Counters().PropertiesSet() == 0 {
		return fmt.Errorf("edge %s->%s: endpoint %w", e.Source, e.Target, domain.ErrNodeNotFound)
	}
	return nil
}

// GetEdge fetches a typed edge between two nodes.
func (s *Store) GetEdge(ctx context.Context, source, target, edgeType string) (domain.Edge, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	query := fmt.Sprintf(`
		MATCH (a:Entity {id: $source})-[r:%s]->(b:Entity {id: $target})
		RETURN r.weight AS weight
	`, edgeType)

	result, err := session.Run(ctx, query, map[string]any{
		"source": source,
		"target": target,
	})
	if err != nil {
		return domain.Edge{}, storeErr("get edge", err)
	}

	if result.Next(ctx) {
		weight := 1.0
		if w, ok := result.Record().Get("weight"); ok {
			if f, isFloat := w.(float64); isFloat {
				weight = f
			}
		}
		return domain.Edge{Source: source, Target: target, Type: edgeType, Weight: weight}, nil
	}
	if err := result.Err(); err != nil {
		return domain.Edge{}, storeErr("get edge", err)
	}
	return domain.Edge{}, fmt.Errorf("edge %s-[%s]->%s: %w", source, edgeType, target, domain.ErrNotFound)
}

// Stats reports node and edge counts.
func (s *Store) Stats(ctx context.Context) (domain.GraphStats, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	query := `
		MATCH (n:Entity)
		OPTIONAL MATCH (:Entity)-[r]->(:Entity)
		RETURN count(DISTINCT n) AS nodes, count(DISTINCT r) AS edges
	`

	result, err := session.Run(ctx, query, nil)
	if err != nil {
		return domain.GraphStats{}, storeErr("stats", err)
	}

	if result.Next(ctx) {
		rec := result.Record()
		return domain.GraphStats{
			TotalNodes: int(recordInt(rec, "nodes")),
			TotalEdges: int(recordInt(rec, "edges")),
		}, nil
	}
	if err := result.Err(); err != nil {
		return domain.GraphStats{}, storeErr("stats", err)
	}
	return domain.GraphStats{}, nil
}

// --- record helpers ---

func recordString(rec *db.Record, key string) string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

func recordStrings(rec *db.Record, key string) []string {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, isStr := item.(string); isStr {
			out = append(out, s)
		}
	}
	return out
}

func recordInt(rec *db.Record, key string) int64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	n, _ := v.(int64)
	return n
}

func recordFloat(rec *db.Record, key string) float64 {
	v, ok := rec.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

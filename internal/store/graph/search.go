package graph

import (
	"context"
	"strconv"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// SearchNodes finds nodes whose id contains the query, or whose name, type,
// or any tag contains it case-insensitively. Capped at limit.
func (s *Store) SearchNodes(ctx context.Context, query string, limit int) ([]domain.Node, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	cypher := `
		MATCH (n:Entity)
		WHERE n.id CONTAINS $q
		   OR toLower(coalesce(n.name, '')) CONTAINS toLower($q)
		   OR toLower(coalesce(n.type, '')) CONTAINS toLower($q)
		   OR any(t IN coalesce(n.tags, []) WHERE toLower(t) CONTAINS toLower($q))
		RETURN n.id AS id, n.name AS name, n.type AS type, n.tags AS tags
		LIMIT $limit
	`

	result, err := session.Run(ctx, cypher, map[string]any{
		"q":     query,
		"limit": limit,
	})
	if err != nil {
		return nil, storeErr("search nodes", err)
	}

	var nodes []domain.Node
	for result.Next(ctx) {
		rec := result.Record()
		nodes = append(nodes, domain.Node{
			ID:   recordString(rec, "id"),
			Name: recordString(rec, "name"),
			Type: recordString(rec, "type"),
			Tags: recordStrings(rec, "tags"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, storeErr("search nodes", err)
	}
	return nodes, nil
}

// Neighbors returns the outgoing relationships of a node whose type is in
// allowedTypes. The single-hop primitive behind the engine's bounded
// multi-hop traversal.
func (s *Store) Neighbors(ctx context.Context, id string, allowedTypes []string) ([]domain.Neighbor, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	cypher := `
		MATCH (a:Entity {id: $id})-[r]->(b:Entity)
		WHERE type(r) IN $types
		RETURN b.id AS id, b.name AS name, b.type AS node_type,
		       type(r) AS edge_type, coalesce(r.weight, 1.0) AS weight
	`

	result, err := session.Run(ctx, cypher, map[string]any{
		"id":    id,
		"types": allowedTypes,
	})
	if err != nil {
		return nil, storeErr("neighbors", err)
	}

	var neighbors []domain.Neighbor
	for result.Next(ctx) {
		rec := result.Record()
		neighbors = append(neighbors, domain.Neighbor{
			NodeID:   recordString(rec, "id"),
			Name:     recordString(rec, "name"),
			NodeType: recordString(rec, "node_type"),
			EdgeType: recordString(rec, "edge_type"),
			Weight:   recordFloat(rec, "weight"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, storeErr("neighbors", err)
	}
	return neighbors, nil
}

// Traverse lists nodes reachable within depth hops along edges of the
// allowed types, capped at limit.
func (s *Store) Traverse(ctx context.Context, startID string, depth, limit int, allowedTypes []string) ([]domain.TraverseRow, error) {
	session := s.readSession(ctx)
	defer session.Close(ctx)

	if depth < 1 {
		depth = 1
	}

	// Variable-length bounds cannot be parameterized; depth is clamped by the
	// caller to a small positive integer.
	cypher := `
		MATCH p = (a:Entity {id: $id})-[*1..` + strconv.Itoa(depth) + `]->(b:Entity)
		WHERE ALL(r IN relationships(p) WHERE type(r) IN $types)
		RETURN DISTINCT b.id AS id, b.name AS name,
		       [r IN relationships(p) | type(r)] AS types
		LIMIT $limit
	`

	result, err := session.Run(ctx, cypher, map[string]any{
		"id":    startID,
		"types": allowedTypes,
		"limit": limit,
	})
	if err != nil {
		return nil, storeErr("traverse", err)
	}

	var rows []domain.TraverseRow
	for result.Next(ctx) {
		rec := result.Record()
		rows = append(rows, domain.TraverseRow{
			NodeID: recordString(rec, "id"),
			Name:   recordString(rec, "name"),
			Types:  recordStrings(rec, "types"),
		})
	}
	if err := result.Err(); err != nil {
		return nil, storeErr("traverse", err)
	}
	return rows, nil
}

// Package schema validates node and edge creation requests against the fixed
// type allow-lists before any store mutation. Both checks are pure; a failure
// aborts the operation with no partial write.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kailas-cloud/graphdex/internal/domain"
)

// NodeTypes is the node-type allow-list. A node may also omit the type entirely.
var NodeTypes = map[string]struct{}{
	"concept":      {},
	"document":     {},
	"entity":       {},
	"person":       {},
	"organization": {},
	"location":     {},
	"event":        {},
	"topic":        {},
}

// EdgeTypes is the relation-kind allow-list for directed edges.
var EdgeTypes = map[string]struct{}{
	"RELATES_TO": {},
	"PART_OF":    {},
	"USES":       {},
	"CREATED_BY": {},
	"DEPENDS_ON": {},
	"REFERENCES": {},
	"SIMILAR_TO": {},
	"CHILD_OF":   {},
}

// DefaultTraversalTypes returns the default allowed relation kinds for
// bounded multi-hop traversal: the full edge allow-list, sorted for stable
// query construction.
func DefaultTraversalTypes() []string {
	types := make([]string, 0, len(EdgeTypes))
	for t := range EdgeTypes {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// ValidateNode checks required fields {id, text} and the optional type against
// the allow-list. Every missing required field is named in the error.
func ValidateNode(n domain.Node) error {
	var missing []string
	if n.ID == "" {
		missing = append(missing, "id")
	}
	if n.Text == "" {
		missing = append(missing, "text")
	}
	if len(missing) > 0 {
		return domain.NewMissingFields(missing...)
	}

	if n.Type != "" {
		if _, ok := NodeTypes[n.Type]; !ok {
			return domain.NewInvalidValue(fmt.Sprintf(
				"node type %q is not allowed (expected one of: %s)",
				n.Type, joinTypes(NodeTypes)))
		}
	}
	return nil
}

// ValidateEdge checks required fields {source, target, type}, the relation
// type against the allow-list, and the weight range [0,1]. A nil weight means
// "not provided" and defaults later.
func ValidateEdge(source, target, edgeType string, weight *float64) error {
	var missing []string
	if source == "" {
		missing = append(missing, "source")
	}
	if target == "" {
		missing = append(missing, "target")
	}
	if edgeType == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		return domain.NewMissingFields(missing...)
	}

	if _, ok := EdgeTypes[edgeType]; !ok {
		return domain.NewInvalidValue(fmt.Sprintf(
			"edge type %q is not allowed (expected one of: %s)",
			edgeType, joinTypes(EdgeTypes)))
	}

	if weight != nil && (*weight < 0 || *weight > 1) {
		return domain.NewInvalidValue(fmt.Sprintf(
			"edge weight %g is out of range [0,1]", *weight))
	}
	return nil
}

func joinTypes(set map[string]struct{}) string {
	names := make([]string, 0, len(set))
	for n := range set {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

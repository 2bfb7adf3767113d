package domain

// RouteDecision classifies an ingest payload into which backing store(s)
// receive it. Computed once per ingest and never re-derived later.
type RouteDecision string

const (
	// RouteVectorOnly stores the payload in the vector index only.
	RouteVectorOnly RouteDecision = "VECTOR_ONLY"
	// RouteGraphOnly stores the payload in the relationship graph only.
	RouteGraphOnly RouteDecision = "GRAPH_ONLY"
	// RouteBoth stores the payload in both stores.
	RouteBoth RouteDecision = "BOTH"
	// RouteMetadataOnly accepts the payload but stores it nowhere.
	RouteMetadataOnly RouteDecision = "METADATA_ONLY"
)

// DecideRoute is the pure decision table over field-presence flags.
func DecideRoute(hasText, hasRelationships bool) RouteDecision {
	switch {
	case hasText && hasRelationships:
		return RouteBoth
	case hasText:
		return RouteVectorOnly
	case hasRelationships:
		return RouteGraphOnly
	default:
		return RouteMetadataOnly
	}
}

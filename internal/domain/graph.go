package domain

// Node is a graph entity. Name defaults to ID when absent; Type, when set,
// must belong to the node-type allow-list enforced by the schema validator.
type Node struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Type  string            `json:"type,omitempty"`
	Text  string            `json:"text,omitempty"`
	Tags  []string          `json:"tags,omitempty"`
	Props map[string]string `json:"props,omitempty"`
}

// Edge is a directed, typed relationship. Weight lies in [0,1] and defaults to 1.
// Parallel edges of different types between the same pair are allowed.
type Edge struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Type   string  `json:"type"`
	Weight float64 `json:"weight"`
}

// Neighbor is one outgoing relationship from a node, as returned by the
// graph store's single-hop expansion.
type Neighbor struct {
	NodeID   string
	Name     string
	NodeType string
	EdgeType string
	Weight   float64
}

// TraverseRow is one reachable node from a store-level traversal, carrying
// the relationship types along the path that reached it.
type TraverseRow struct {
	NodeID string
	Name   string
	Types  []string
}

// GraphStats reports graph store counters.
type GraphStats struct {
	TotalNodes int
	TotalEdges int
}

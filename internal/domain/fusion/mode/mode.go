package mode

// Mode is the fusion search strategy.
type Mode string

// Search mode constants.
const (
	// Hybrid combines vector similarity with graph-derived boosts.
	Hybrid Mode = "hybrid"
	// VectorOnly skips the graph query entirely; all boosts are zero.
	VectorOnly Mode = "vector_only"
	// Graph ranks vector hits by graph boosts alone.
	Graph Mode = "graph"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == VectorOnly || m == Graph
}

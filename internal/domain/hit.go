package domain

// SearchHit is one fused search result. Rank is the 1-based absolute position
// in the full fused ordering, not the position within the returned page slice.
type SearchHit struct {
	Rank        int
	DocID       string
	Content     string
	Similarity  float64
	HybridScore float64
	Metadata    map[string]string
}

package domain

// Document is a text record owned by the vector store. The engine only shapes
// it before handoff; it holds no independent copy.
type Document struct {
	ID       string
	Content  string
	Metadata map[string]string
}

// VectorHit is a single similarity-scored row returned by the vector store.
type VectorHit struct {
	DocID      string
	Content    string
	Similarity float64
	Metadata   map[string]string
}

// VectorStats reports vector store counters. TotalDocuments may briefly lag
// writes because index compaction is asynchronous.
type VectorStats struct {
	TotalDocuments int
	Dimension      int
	Status         string
}

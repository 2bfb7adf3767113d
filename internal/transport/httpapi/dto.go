package httpapi

// Error codes returned in the error envelope.
const (
	codeBadRequest        = "bad_request"
	codeUnauthorized      = "unauthorized"
	codeValidationFailed  = "validation_failed"
	codeNotFound          = "not_found"
	codeNoiseRejected     = "noise_rejected"
	codeDimensionMismatch = "dimension_mismatch"
	codeStoreUnavailable  = "store_unavailable"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type nodeRequest struct {
	ID    string            `json:"id"`
	Name  string            `json:"name,omitempty"`
	Type  string            `json:"type,omitempty"`
	Text  string            `json:"text,omitempty"`
	Tags  []string          `json:"tags,omitempty"`
	Props map[string]string `json:"props,omitempty"`
}

type edgeRequest struct {
	Source string   `json:"source"`
	Target string   `json:"target"`
	Type   string   `json:"type"`
	Weight *float64 `json:"weight,omitempty"`
}

type documentRequest struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID       string            `json:"id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type vectorSearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"top_k,omitempty"`
}

type vectorHitResponse struct {
	DocID      string            `json:"doc_id"`
	Content    string            `json:"content"`
	Similarity float64           `json:"similarity"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type searchRequest struct {
	Query        string   `json:"query"`
	Type         string   `json:"type,omitempty"`
	VectorWeight *float64 `json:"vector_weight,omitempty"`
	GraphWeight  *float64 `json:"graph_weight,omitempty"`
	TopK         int      `json:"top_k,omitempty"`
	Page         int      `json:"page,omitempty"`
}

type searchHitResponse struct {
	Rank        int               `json:"rank"`
	DocID       string            `json:"doc_id"`
	Content     string            `json:"content"`
	Similarity  float64           `json:"similarity"`
	HybridScore float64           `json:"hybrid_score"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type searchResponse struct {
	Results    []searchHitResponse `json:"results"`
	Page       int                 `json:"page"`
	TopK       int                 `json:"top_k"`
	TotalHits  int                 `json:"total_hits"`
	TotalPages int                 `json:"total_pages"`
	Mode       string              `json:"mode"`
}

type ingestResponse struct {
	Decision       string   `json:"decision"`
	DocID          string   `json:"doc_id,omitempty"`
	DocumentsAdded int      `json:"documents_added"`
	NodesAdded     int      `json:"nodes_added"`
	EdgesAdded     int      `json:"edges_added"`
	Errors         []string `json:"errors,omitempty"`
}

type traverseRowResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

type relatedNodeResponse struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	NodeType string   `json:"node_type,omitempty"`
	Path     []string `json:"path"`
	Hops     int      `json:"hops"`
}

type statsResponse struct {
	Vector vectorStatsResponse `json:"vector"`
	Graph  graphStatsResponse  `json:"graph"`
}

type vectorStatsResponse struct {
	TotalDocuments int    `json:"total_documents"`
	Dimension      int    `json:"dimension"`
	Status         string `json:"status"`
}

type graphStatsResponse struct {
	TotalNodes int `json:"total_nodes"`
	TotalEdges int `json:"total_edges"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

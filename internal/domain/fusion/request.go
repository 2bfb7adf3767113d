// Package fusion holds the validated hybrid search request value object.
package fusion

import (
	"fmt"

	"github.com/kailas-cloud/graphdex/internal/domain/fusion/mode"
)

// Search parameter limits.
const (
	MaxQueryLength = 4096
	DefaultTopK    = 10
	MaxTopK        = 100

	DefaultVectorWeight = 0.7
	DefaultGraphWeight  = 0.3
)

// Request is a validated fusion search query.
type Request struct {
	query        string
	searchMode   mode.Mode
	vectorWeight float64
	graphWeight  float64
	topK         int
	page         int
}

// New validates and normalizes hybrid search parameters.
// Defaults: mode=hybrid, topK=10, page=1, vectorWeight=0.7, graphWeight=0.3.
// Weights are passed as pointers so that an explicit zero survives defaulting.
func New(
	query string,
	m mode.Mode,
	vectorWeight, graphWeight *float64,
	topK, page int,
) (Request, error) {
	if query == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search type: %q", m)
	}

	vw := DefaultVectorWeight
	if vectorWeight != nil {
		vw = *vectorWeight
	}
	gw := DefaultGraphWeight
	if graphWeight != nil {
		gw = *graphWeight
	}
	if vw < 0 || gw < 0 {
		return Request{}, fmt.Errorf("weights must be non-negative")
	}

	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		topK = MaxTopK
	}
	if page <= 0 {
		page = 1
	}

	return Request{
		query:        query,
		searchMode:   m,
		vectorWeight: vw,
		graphWeight:  gw,
		topK:         topK,
		page:         page,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the search mode.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// VectorWeight returns the weight applied to vector similarity.
func (r *Request) VectorWeight() float64 { return r.vectorWeight }

// GraphWeight returns the weight applied to graph relevance.
func (r *Request) GraphWeight() float64 { return r.graphWeight }

// TopK returns the page size.
func (r *Request) TopK() int { return r.topK }

// Page returns the 1-based page number.
func (r *Request) Page() int { return r.page }

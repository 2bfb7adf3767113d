package fusion

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/graphdex/internal/domain/fusion/mode"
)

func TestNewDefaults(t *testing.T) {
	req, err := New("machine learning", "", nil, nil, 0, 0)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if req.Mode() != mode.Hybrid {
		t.Errorf("Mode = %s, want hybrid", req.Mode())
	}
	if req.VectorWeight() != DefaultVectorWeight {
		t.Errorf("VectorWeight = %v, want %v", req.VectorWeight(), DefaultVectorWeight)
	}
	if req.GraphWeight() != DefaultGraphWeight {
		t.Errorf("GraphWeight = %v, want %v", req.GraphWeight(), DefaultGraphWeight)
	}
	if req.TopK() != DefaultTopK {
		t.Errorf("TopK = %d, want %d", req.TopK(), DefaultTopK)
	}
	if req.Page() != 1 {
		t.Errorf("Page = %d, want 1", req.Page())
	}
}

func TestNewExplicitZeroWeightSurvives(t *testing.T) {
	zero := 0.0
	req, err := New("q", mode.Graph, &zero, nil, 5, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if req.VectorWeight() != 0 {
		t.Errorf("VectorWeight = %v, want explicit 0", req.VectorWeight())
	}
	if req.GraphWeight() != DefaultGraphWeight {
		t.Errorf("GraphWeight = %v, want default", req.GraphWeight())
	}
}

func TestNewValidation(t *testing.T) {
	neg := -0.1

	tests := []struct {
		name   string
		query  string
		m      mode.Mode
		vw, gw *float64
	}{
		{name: "empty query", query: ""},
		{name: "query too long", query: strings.Repeat("q", MaxQueryLength+1)},
		{name: "invalid mode", query: "q", m: "fuzzy"},
		{name: "negative vector weight", query: "q", vw: &neg},
		{name: "negative graph weight", query: "q", gw: &neg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.query, tt.m, tt.vw, tt.gw, 10, 1); err == nil {
				t.Error("New() = nil error, want validation failure")
			}
		})
	}
}

func TestNewClampsTopK(t *testing.T) {
	req, err := New("q", "", nil, nil, 500, 1)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if req.TopK() != MaxTopK {
		t.Errorf("TopK = %d, want clamped to %d", req.TopK(), MaxTopK)
	}
}

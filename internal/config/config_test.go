package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		VectorStore: VectorStoreConfig{
			Addrs: []string{"localhost:6379"},
		},
		GraphStore: GraphStoreConfig{
			URI: "bolt://localhost:7687",
		},
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTP.Port = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingVectorStoreAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.VectorStore.Addrs = nil

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing vector store addrs")
	}
}

func TestValidate_MissingGraphStoreURI(t *testing.T) {
	cfg := validConfig()
	cfg.GraphStore.URI = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing graph store uri")
	}
}

func TestValidate_NegativeWeight(t *testing.T) {
	cfg := validConfig()
	cfg.Fusion.VectorWeight = -0.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative fusion weight")
	}
}

func TestValidate_BaseScoreAboveOne(t *testing.T) {
	cfg := validConfig()
	cfg.Fusion.KeywordBaseScore = 1.5

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for keyword base score above 1")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.VectorStore.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.VectorStore.ReadinessTimeout)
	}
	if cfg.VectorStore.HNSWM != 32 {
		t.Errorf("expected HNSWM=32, got %d", cfg.VectorStore.HNSWM)
	}
	if cfg.VectorStore.HNSWEFConstruct != 400 {
		t.Errorf("expected HNSWEFConstruct=400, got %d", cfg.VectorStore.HNSWEFConstruct)
	}
	if cfg.VectorStore.KeyPrefix != "graphdex:" {
		t.Errorf("expected KeyPrefix='graphdex:', got %q", cfg.VectorStore.KeyPrefix)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("expected Dimensions=384, got %d", cfg.Embedding.Dimensions)
	}
	if cfg.Fusion.VectorWeight != 0.7 || cfg.Fusion.GraphWeight != 0.3 {
		t.Errorf("expected weights 0.7/0.3, got %g/%g", cfg.Fusion.VectorWeight, cfg.Fusion.GraphWeight)
	}
	if cfg.Fusion.KeywordBaseScore != 0.9 {
		t.Errorf("expected KeywordBaseScore=0.9, got %g", cfg.Fusion.KeywordBaseScore)
	}
	if cfg.Fusion.CandidateLimit != 50 {
		t.Errorf("expected CandidateLimit=50, got %d", cfg.Fusion.CandidateLimit)
	}
	if cfg.Graph.KeywordLimit != 10 {
		t.Errorf("expected KeywordLimit=10, got %d", cfg.Graph.KeywordLimit)
	}
	if cfg.Graph.TraverseLimit != 20 {
		t.Errorf("expected TraverseLimit=20, got %d", cfg.Graph.TraverseLimit)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP: HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		VectorStore: VectorStoreConfig{
			ReadinessTimeout: 15,
			HNSWM:            16,
			HNSWEFConstruct:  200,
			KeyPrefix:        "custom:",
		},
		Fusion: FusionConfig{VectorWeight: 0.5, GraphWeight: 0.5, KeywordBaseScore: 0.8, CandidateLimit: 200},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.VectorStore.HNSWM != 16 {
		t.Errorf("expected HNSWM=16, got %d", cfg.VectorStore.HNSWM)
	}
	if cfg.VectorStore.KeyPrefix != "custom:" {
		t.Errorf("expected KeyPrefix='custom:', got %q", cfg.VectorStore.KeyPrefix)
	}
	if cfg.Fusion.VectorWeight != 0.5 || cfg.Fusion.GraphWeight != 0.5 {
		t.Errorf("expected weights 0.5/0.5, got %g/%g", cfg.Fusion.VectorWeight, cfg.Fusion.GraphWeight)
	}
	if cfg.Fusion.KeywordBaseScore != 0.8 {
		t.Errorf("expected KeywordBaseScore=0.8, got %g", cfg.Fusion.KeywordBaseScore)
	}
}

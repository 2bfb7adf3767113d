package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the graphdex API configuration.
type Config struct {
	HTTP        HTTPConfig        `yaml:"http"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	GraphStore  GraphStoreConfig  `yaml:"graph_store"`
	Embedding   EmbeddingConfig   `yaml:"embedding"`
	Fusion      FusionConfig      `yaml:"fusion"`
	Graph       GraphConfig       `yaml:"graph"`
	Auth        AuthConfig        `yaml:"auth"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// VectorStoreConfig holds vector index connection and HNSW settings.
type VectorStoreConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	KeyPrefix        string   `yaml:"key_prefix"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	HNSWM            int      `yaml:"hnsw_m"`
	HNSWEFConstruct  int      `yaml:"hnsw_ef_construction"`
}

// GraphStoreConfig holds graph database connection settings.
type GraphStoreConfig struct {
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// EmbeddingConfig holds embedding provider settings. An empty APIKey disables
// the remote provider entirely; the deterministic fallback serves alone.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
}

// FusionConfig holds score fusion weights and limits.
type FusionConfig struct {
	VectorWeight     float64 `yaml:"vector_weight"`
	GraphWeight      float64 `yaml:"graph_weight"`
	KeywordBaseScore float64 `yaml:"keyword_base_score"`
	CandidateLimit   int     `yaml:"candidate_limit"`
}

// GraphConfig holds traversal bounds.
type GraphConfig struct {
	KeywordLimit  int `yaml:"keyword_limit"`
	TraverseLimit int `yaml:"traverse_limit"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.VectorStore.KeyPrefix == "" {
		c.VectorStore.KeyPrefix = "graphdex:"
	}
	if c.VectorStore.ReadinessTimeout <= 0 {
		c.VectorStore.ReadinessTimeout = 10
	}
	if c.VectorStore.HNSWM <= 0 {
		c.VectorStore.HNSWM = 32
	}
	if c.VectorStore.HNSWEFConstruct <= 0 {
		c.VectorStore.HNSWEFConstruct = 400
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 384
	}
	if c.Fusion.VectorWeight == 0 && c.Fusion.GraphWeight == 0 {
		c.Fusion.VectorWeight = 0.7
		c.Fusion.GraphWeight = 0.3
	}
	if c.Fusion.KeywordBaseScore <= 0 {
		c.Fusion.KeywordBaseScore = 0.9
	}
	if c.Fusion.CandidateLimit <= 0 {
		c.Fusion.CandidateLimit = 50
	}
	if c.Graph.KeywordLimit <= 0 {
		c.Graph.KeywordLimit = 10
	}
	if c.Graph.TraverseLimit <= 0 {
		c.Graph.TraverseLimit = 20
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.VectorStore.Addrs) == 0 {
		return fmt.Errorf("vector_store.addrs is required")
	}
	if c.GraphStore.URI == "" {
		return fmt.Errorf("graph_store.uri is required")
	}
	if c.Fusion.VectorWeight < 0 || c.Fusion.GraphWeight < 0 {
		return fmt.Errorf("fusion weights must be non-negative")
	}
	if c.Fusion.KeywordBaseScore > 1 {
		return fmt.Errorf("fusion.keyword_base_score must be at most 1, got %g", c.Fusion.KeywordBaseScore)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}

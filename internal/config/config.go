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

// Config holds the creator search API configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Database     DatabaseConfig     `yaml:"database"`
	Relational   RelationalConfig   `yaml:"relational"`
	Embedding    EmbeddingConfig    `yaml:"embedding"`
	Intelligence IntelligenceConfig `yaml:"intelligence"`
	Search       SearchConfig       `yaml:"search"`
	Index        IndexConfig        `yaml:"index"`
	Auth         AuthConfig         `yaml:"auth"`
	Logging      LoggingConfig      `yaml:"logging"`
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

// DatabaseConfig holds vector store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// RelationalConfig holds the creator record store settings.
type RelationalConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
	Table  string `yaml:"table"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider    string `yaml:"provider"`
	APIKey      string `yaml:"api_key"`
	BaseURL     string `yaml:"base_url"`
	Model       string `yaml:"model"`
	Dimensions  int    `yaml:"dimensions"`
	CacheTTLSec int    `yaml:"cache_ttl_sec"` // 0 = cached vectors never expire
}

// IntelligenceConfig holds query analysis settings.
type IntelligenceConfig struct {
	APIKey         string  `yaml:"api_key"` // falls back to embedding.api_key when empty
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	ConfidenceGate float64 `yaml:"confidence_gate"`
}

// SearchConfig holds search pipeline tuning knobs.
type SearchConfig struct {
	VectorBoost       float64 `yaml:"vector_boost"`
	VectorShare       float64 `yaml:"vector_share"`
	MinScore          float64 `yaml:"min_score"`
	RequestTimeoutSec int     `yaml:"request_timeout_sec"`
}

// IndexConfig holds HNSW index settings.
type IndexConfig struct {
	HNSWM           int `yaml:"hnsw_m"`
	HNSWEFConstruct int `yaml:"hnsw_ef_construction"`
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
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Relational.Table == "" {
		c.Relational.Table = "creators"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions <= 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.Intelligence.APIKey == "" {
		c.Intelligence.APIKey = c.Embedding.APIKey
	}
	if c.Intelligence.BaseURL == "" {
		c.Intelligence.BaseURL = c.Embedding.BaseURL
	}
	if c.Intelligence.Model == "" {
		c.Intelligence.Model = "gpt-4o-mini"
	}
	if c.Intelligence.ConfidenceGate <= 0 {
		c.Intelligence.ConfidenceGate = 0.9
	}
	if c.Search.VectorBoost <= 0 {
		c.Search.VectorBoost = 1.2
	}
	if c.Search.VectorShare <= 0 {
		c.Search.VectorShare = 0.7
	}
	if c.Search.MinScore <= 0 {
		c.Search.MinScore = 0.2
	}
	if c.Search.RequestTimeoutSec <= 0 {
		c.Search.RequestTimeoutSec = 15
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 32
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 400
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Relational.URL == "" {
		return fmt.Errorf("relational.url is required")
	}
	if c.Search.VectorShare > 1 {
		return fmt.Errorf("search.vector_share must be in (0, 1], got %v", c.Search.VectorShare)
	}
	if c.Search.MinScore > 1 {
		return fmt.Errorf("search.min_score must be in (0, 1], got %v", c.Search.MinScore)
	}
	if c.Intelligence.ConfidenceGate > 1 {
		return fmt.Errorf("intelligence.confidence_gate must be in (0, 1], got %v", c.Intelligence.ConfidenceGate)
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

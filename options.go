package creatorsearch

import (
	"time"

	"go.uber.org/zap"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	addrs    []string
	username string
	password string
	db       int

	relationalURL    string
	relationalAPIKey string
	relationalTable  string

	embedder Embedder
	analyzer Analyzer

	vectorDimensions int
	hnswM            int
	hnswEFConstruct  int

	confidenceGate float64
	vectorBoost    float64
	vectorShare    float64
	minScore       float64
	requestTimeout time.Duration

	logger *zap.Logger
}

// WithRedis configures the client to connect to a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedisCluster configures the client with multiple seed addresses.
func WithRedisCluster(addrs []string, username, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.addrs = addrs
		c.username = username
		c.password = password
	})
}

// WithRelationalStore points the client at the creator record store.
// Required: search results are enriched from this store.
func WithRelationalStore(url, apiKey, table string) Option {
	return optionFunc(func(c *clientConfig) {
		c.relationalURL = url
		c.relationalAPIKey = apiKey
		c.relationalTable = table
	})
}

// WithEmbedder sets the text embedding provider. Required.
func WithEmbedder(e Embedder) Option {
	return optionFunc(func(c *clientConfig) {
		c.embedder = e
	})
}

// WithAnalyzer sets the query analysis provider. Optional: without it
// every query is parsed with keyword heuristics instead of an LLM.
func WithAnalyzer(a Analyzer) Option {
	return optionFunc(func(c *clientConfig) {
		c.analyzer = a
	})
}

// WithVectorDimensions sets the embedding vector dimension.
// Defaults to 1536 (text-embedding-3-small).
func WithVectorDimensions(dim int) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorDimensions = dim
	})
}

// WithHNSW configures HNSW index parameters (M and EF construction).
// Defaults: M=32, EFConstruct=400.
func WithHNSW(m, efConstruct int) Option {
	return optionFunc(func(c *clientConfig) {
		c.hnswM = m
		c.hnswEFConstruct = efConstruct
	})
}

// WithConfidenceGate sets the minimum extraction confidence at which
// the inferred niche filter is applied. Default: 0.9.
func WithConfidenceGate(gate float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.confidenceGate = gate
	})
}

// WithSearchTuning overrides the fusion knobs: the score boost for
// vector-only matches, the vector share of hybrid candidates and the
// minimum similarity score. Zero values keep the defaults.
func WithSearchTuning(vectorBoost, vectorShare, minScore float64) Option {
	return optionFunc(func(c *clientConfig) {
		c.vectorBoost = vectorBoost
		c.vectorShare = vectorShare
		c.minScore = minScore
	})
}

// WithRequestTimeout bounds a single search end to end. Zero disables it.
func WithRequestTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.requestTimeout = d
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default).
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

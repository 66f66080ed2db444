// Package db defines the storage contract for the creator vector index and
// the small key-value surface used by the embedding cache.
package db

import (
	"context"
	"time"

	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
)

// Store is the vector-index backend contract.
type Store interface {
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()

	// EnsureIndex creates the FT index if it does not exist yet.
	EnsureIndex(ctx context.Context, spec *IndexSpec) error

	// SearchKNN runs a top-K vector similarity query with pre-filtering.
	SearchKNN(ctx context.Context, q *KNNQuery) (*SearchResult, error)

	// SetFields writes document hash fields.
	SetFields(ctx context.Context, key string, fields map[string]string) error
	// FetchFields reads selected document hash fields. Missing keys yield
	// ErrKeyNotFound.
	FetchFields(ctx context.Context, key string, fields []string) (map[string]string, error)
	// DeleteKey removes a document.
	DeleteKey(ctx context.Context, key string) error

	// Get and Set are the KV surface for the embedding cache.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// IndexSpec describes the creator FT index.
type IndexSpec struct {
	Name      string
	KeyPrefix string
	TagFields []string
	NumFields []string
	VectorDim int
	// HNSW construction parameters.
	HNSWM           int
	HNSWEFConstruct int
}

// KNNQuery is the input for a vector similarity search.
type KNNQuery struct {
	IndexName    string
	Filters      filter.Set
	Vector       []float32
	K            int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}

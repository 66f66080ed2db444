// Package creatorindex is the vector-index repository for creator profiles.
package creatorindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/brandpulse/creatorsearch/internal/db"
	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

// Key layout of the creator index.
const (
	KeyPrefix = "creatorsearch:creators:"
	IndexName = "creatorsearch:creators:idx"
)

// store is the consumer interface for index operations (ISP).
type store interface {
	EnsureIndex(ctx context.Context, spec *db.IndexSpec) error
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SetFields(ctx context.Context, key string, fields map[string]string) error
	FetchFields(ctx context.Context, key string, fields []string) (map[string]string, error)
	DeleteKey(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// HNSWConfig holds index construction parameters.
type HNSWConfig struct {
	M           int
	EFConstruct int
}

// Repo implements the vector-index side of the search pipeline.
type Repo struct {
	store     store
	vectorDim int
	hnsw      HNSWConfig
}

// New creates a creator index repository.
func New(s store, vectorDim int) *Repo {
	return &Repo{store: s, vectorDim: vectorDim}
}

// WithHNSW overrides HNSW construction parameters.
func (r *Repo) WithHNSW(cfg HNSWConfig) *Repo {
	r.hnsw = cfg
	return r
}

// EnsureIndex creates the FT index if absent.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	spec := &db.IndexSpec{
		Name:            IndexName,
		KeyPrefix:       KeyPrefix,
		TagFields:       tagFields,
		NumFields:       numFields,
		VectorDim:       r.vectorDim,
		HNSWM:           r.hnsw.M,
		HNSWEFConstruct: r.hnsw.EFConstruct,
	}
	if err := r.store.EnsureIndex(ctx, spec); err != nil {
		return fmt.Errorf("ensure creator index: %w", err)
	}
	return nil
}

// Query runs a top-K similarity search and returns raw matches.
func (r *Repo) Query(
	ctx context.Context, vector []float32, filters filter.Set, topK int,
) ([]result.Match, int, error) {
	q := &db.KNNQuery{
		IndexName:    IndexName,
		Filters:      filters,
		Vector:       vector,
		K:            topK,
		ReturnFields: matchReturnFields,
	}

	sr, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, 0, fmt.Errorf("query creator index: %w", err)
	}
	if sr == nil || sr.Total == 0 {
		return nil, 0, nil
	}

	matches := make([]result.Match, 0, len(sr.Entries))
	for _, entry := range sr.Entries {
		matches = append(matches, entryToMatch(entry, KeyPrefix))
	}
	return matches, sr.Total, nil
}

// FetchVector reads a creator's stored embedding by ID.
// A missing document maps to domain.ErrCreatorNotIndexed.
func (r *Repo) FetchVector(ctx context.Context, creatorID string) ([]float32, error) {
	fields, err := r.store.FetchFields(ctx, KeyPrefix+creatorID, []string{fieldVector})
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("creator %s: %w", creatorID, domain.ErrCreatorNotIndexed)
		}
		return nil, fmt.Errorf("fetch vector %s: %w", creatorID, err)
	}

	vec := bytesToVector(fields[fieldVector])
	if len(vec) == 0 {
		return nil, fmt.Errorf("creator %s: %w", creatorID, domain.ErrCreatorNotIndexed)
	}
	return vec, nil
}

// Upsert writes a creator profile document with its embedding.
func (r *Repo) Upsert(ctx context.Context, c *creator.Creator, vector []float32) error {
	if len(vector) != r.vectorDim {
		return fmt.Errorf("vector dim %d, index expects %d", len(vector), r.vectorDim)
	}
	if err := r.store.SetFields(ctx, KeyPrefix+c.ID(), docFields(c, vector)); err != nil {
		return fmt.Errorf("upsert creator %s: %w", c.ID(), err)
	}
	return nil
}

// Delete removes a creator document from the index.
func (r *Repo) Delete(ctx context.Context, creatorID string) error {
	if err := r.store.DeleteKey(ctx, KeyPrefix+creatorID); err != nil {
		return fmt.Errorf("delete creator %s: %w", creatorID, err)
	}
	return nil
}

// HealthCheck verifies index backend connectivity.
func (r *Repo) HealthCheck(ctx context.Context) error {
	if err := r.store.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

package domain

import "errors"

var (
	// ErrInvalidQuery signals a query that failed validation before any backend call.
	ErrInvalidQuery = errors.New("invalid query")
	// ErrCreatorNotFound signals a creator missing from the relational store.
	ErrCreatorNotFound = errors.New("creator not found")
	// ErrCreatorNotIndexed signals a creator absent from the vector index.
	// Distinct from a search returning zero matches.
	ErrCreatorNotIndexed = errors.New("creator not indexed")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnalysisProviderError signals a query-analysis provider failure.
	// The intelligence layer catches it and falls back to keyword heuristics.
	ErrAnalysisProviderError = errors.New("analysis provider error")
	// ErrIndexUnavailable signals that the vector index backend is unreachable.
	ErrIndexUnavailable = errors.New("vector index unavailable")
	// ErrStoreUnavailable signals that the relational store is unreachable.
	ErrStoreUnavailable = errors.New("relational store unavailable")
)

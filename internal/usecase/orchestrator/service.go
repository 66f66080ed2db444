package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/intent"
	"github.com/brandpulse/creatorsearch/internal/domain/search/query"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
	"github.com/brandpulse/creatorsearch/internal/metrics"
	"github.com/brandpulse/creatorsearch/internal/usecase/recommend"
	"github.com/brandpulse/creatorsearch/internal/usecase/vectorsearch"
)

// DefaultVectorShare is the fraction of the requested result count
// served by the vector branch in hybrid mode; the keyword branch gets
// the remainder.
const DefaultVectorShare = 0.7

// Strategy names reported in response metadata and metrics.
const (
	StrategyHybrid       = "hybrid"
	StrategyVector       = "vector"
	StrategySimilarity   = "similarity"
	StrategyAudience     = "audience"
	StrategyContentStyle = "content_style"
	StrategyBrandHistory = "brand_history"
)

// Config tunes the orchestration pipeline.
type Config struct {
	// Timeout bounds one search request end to end. Zero disables it.
	Timeout time.Duration

	// VectorBoost multiplies vector-only scores before fusion.
	VectorBoost float64

	// VectorShare is the hybrid split; zero picks DefaultVectorShare.
	VectorShare float64

	// MinScore is the similarity cutoff passed to vector queries.
	MinScore float64
}

func (c Config) vectorShare() float64 {
	if c.VectorShare <= 0 || c.VectorShare > 1 {
		return DefaultVectorShare
	}
	return c.VectorShare
}

// SearchRequest is the orchestrator's input surface.
type SearchRequest struct {
	Text       string
	Filters    filter.Set
	MaxResults int
	UseHybrid  bool
}

// Metadata describes how a response was produced.
type Metadata struct {
	Analysis       query.Analysis
	Strategy       string
	ExecutionTime  time.Duration
	AppliedFilters []filter.Attr
	TotalMatches   int
	Warnings       []string
}

// Response is a structured search outcome. Failures are carried in
// Errors with Success=false, never surfaced as a panic or a raw error
// to the transport layer.
type Response struct {
	Success     bool
	Results     []result.Enriched
	Unresolved  []string
	Metadata    Metadata
	Errors      []string
	Suggestions []string
}

// Service drives one search request through
// validate, analyze, dispatch, merge, enrich.
type Service struct {
	analyzer QueryAnalyzer
	vector   VectorSearcher
	store    CreatorStore
	cfg      Config
	logger   *zap.Logger
}

// New creates a search orchestrator.
func New(
	analyzer QueryAnalyzer, vector VectorSearcher, store CreatorStore,
	cfg Config, logger *zap.Logger,
) *Service {
	return &Service{
		analyzer: analyzer,
		vector:   vector,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// Search runs the full pipeline. Validation failures short-circuit
// before any backend call.
func (s *Service) Search(ctx context.Context, req SearchRequest) *Response {
	start := time.Now()

	q, err := query.New(req.Text, req.Filters, req.MaxResults, req.UseHybrid)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues("invalid", "error").Inc()
		return &Response{
			Success: false,
			Errors:  []string{err.Error()},
			Suggestions: []string{
				fmt.Sprintf("Use a query between %d and %d characters describing the creator you need",
					query.MinQueryLength, query.MaxQueryLength),
			},
			Metadata: Metadata{ExecutionTime: time.Since(start)},
		}
	}

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	analysis := s.analyzer.Analyze(ctx, q.Text())

	// Explicit filter overrides from the caller win over inferred ones.
	filters := analysis.Filters().Clone()
	filters.Merge(q.Filters())

	strategy, merged, err := s.dispatch(ctx, &q, analysis, filters)
	duration := time.Since(start)
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(strategy, "error").Inc()
		s.logger.Warn("Search strategy failed",
			zap.String("strategy", strategy), zap.Error(err))
		return &Response{
			Success:     false,
			Errors:      []string{err.Error()},
			Suggestions: failureSuggestions(err),
			Metadata: Metadata{
				Analysis:       analysis,
				Strategy:       strategy,
				ExecutionTime:  duration,
				AppliedFilters: filters.Attrs(),
				Warnings:       q.Warnings(),
			},
		}
	}

	enriched, unresolved := s.enrich(ctx, merged)

	duration = time.Since(start)
	metrics.SearchRequestsTotal.WithLabelValues(strategy, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(strategy).Observe(duration.Seconds())

	s.logger.Info("Search completed",
		zap.String("strategy", strategy),
		zap.String("intent", string(analysis.Intent())),
		zap.Int("results", len(enriched)),
		zap.Int("unresolved", len(unresolved)),
		zap.Duration("duration", duration),
	)

	return &Response{
		Success:    true,
		Results:    enriched,
		Unresolved: unresolved,
		Metadata: Metadata{
			Analysis:       analysis,
			Strategy:       strategy,
			ExecutionTime:  duration,
			AppliedFilters: filters.Attrs(),
			TotalMatches:   len(merged),
			Warnings:       q.Warnings(),
		},
	}
}

// Similar searches around a known creator ID and enriches the matches.
// Unlike the similarity strategy inside Search, the reference here is
// an ID, not a free-text name.
func (s *Service) Similar(
	ctx context.Context, creatorID string, maxResults int, includeOriginal bool,
) *Response {
	start := time.Now()

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}
	if maxResults <= 0 {
		maxResults = query.DefaultMaxResults
	}

	res, err := s.vector.FindSimilar(ctx, creatorID, vectorsearch.SimilarOptions{
		Options: vectorsearch.Options{
			TopK:     maxResults,
			MinScore: s.cfg.MinScore,
		},
		IncludeOriginal: includeOriginal,
	})
	if err != nil {
		metrics.SearchRequestsTotal.WithLabelValues(StrategySimilarity, "error").Inc()
		return &Response{
			Success:     false,
			Errors:      []string{err.Error()},
			Suggestions: failureSuggestions(err),
			Metadata:    Metadata{Strategy: StrategySimilarity, ExecutionTime: time.Since(start)},
		}
	}

	merged := matchesToMerged(res.Matches, result.SourceVector, maxResults)
	enriched, unresolved := s.enrich(ctx, merged)

	duration := time.Since(start)
	metrics.SearchRequestsTotal.WithLabelValues(StrategySimilarity, "ok").Inc()
	metrics.SearchDuration.WithLabelValues(StrategySimilarity).Observe(duration.Seconds())

	return &Response{
		Success:    true,
		Results:    enriched,
		Unresolved: unresolved,
		Metadata: Metadata{
			Strategy:      StrategySimilarity,
			ExecutionTime: duration,
			TotalMatches:  len(merged),
		},
	}
}

// Recommend runs a search and ranks the enriched results with the
// fixed recommendation rubric.
func (s *Service) Recommend(ctx context.Context, req SearchRequest) (*Response, []recommend.ScoredRecommendation) {
	resp := s.Search(ctx, req)
	if !resp.Success {
		return resp, nil
	}
	return resp, recommend.Rank(resp.Results)
}

// dispatch selects a strategy from the detected intent. Every
// intent-specific path degrades to plain semantic search when its
// aspect text is missing.
func (s *Service) dispatch(
	ctx context.Context, q *query.Query, analysis query.Analysis, filters filter.Set,
) (string, []result.Merged, error) {
	opts := vectorsearch.Options{
		Filters:  filters,
		TopK:     q.MaxResults(),
		MinScore: s.cfg.MinScore,
	}

	switch analysis.Intent() {
	case intent.SimilarTo:
		if name, ok := analysis.Aspect(query.AspectReference); ok {
			merged, err := s.searchSimilar(ctx, name, q, opts)
			if err == nil && merged != nil {
				return StrategySimilarity, merged, nil
			}
			if err != nil {
				return StrategySimilarity, nil, err
			}
			// Name did not resolve: fall through to general search.
		}
	case intent.AudienceMatch:
		if aspect, ok := analysis.Aspect(query.AspectAudience); ok {
			res, err := s.vector.ByAudience(ctx, aspect, opts)
			if err != nil {
				return StrategyAudience, nil, err
			}
			return StrategyAudience, matchesToMerged(res.Matches, result.SourceVector, q.MaxResults()), nil
		}
	case intent.ContentMatch:
		if aspect, ok := analysis.Aspect(query.AspectContentStyle); ok {
			res, err := s.vector.ByContentStyle(ctx, aspect, opts)
			if err != nil {
				return StrategyContentStyle, nil, err
			}
			return StrategyContentStyle, matchesToMerged(res.Matches, result.SourceVector, q.MaxResults()), nil
		}
	case intent.BrandMatch:
		if aspect, ok := analysis.Aspect(query.AspectBrandHistory); ok {
			res, err := s.vector.ByBrandHistory(ctx, aspect, opts)
			if err != nil {
				return StrategyBrandHistory, nil, err
			}
			return StrategyBrandHistory, matchesToMerged(res.Matches, result.SourceVector, q.MaxResults()), nil
		}
	}

	if q.UseHybrid() {
		return StrategyHybrid, s.searchHybrid(ctx, analysis.SemanticQuery(), filters, q.MaxResults(), opts), nil
	}

	res, err := s.vector.Semantic(ctx, analysis.SemanticQuery(), opts)
	if err != nil {
		return StrategyVector, nil, err
	}
	return StrategyVector, matchesToMerged(res.Matches, result.SourceVector, q.MaxResults()), nil
}

// searchSimilar resolves a creator name and searches around its stored
// vector. A nil, nil return means the name did not resolve and the
// caller should fall back to general search.
func (s *Service) searchSimilar(
	ctx context.Context, name string, q *query.Query, opts vectorsearch.Options,
) ([]result.Merged, error) {
	ref, err := s.store.SearchByName(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCreatorNotFound) {
			s.logger.Debug("Reference creator name not found, degrading to general search",
				zap.String("name", name))
			return nil, nil
		}
		return nil, fmt.Errorf("resolve reference creator: %w", err)
	}

	res, err := s.vector.FindSimilar(ctx, ref.ID(), vectorsearch.SimilarOptions{Options: opts})
	if err != nil {
		return nil, fmt.Errorf("find similar: %w", err)
	}
	return matchesToMerged(res.Matches, result.SourceVector, q.MaxResults()), nil
}

// searchHybrid fans out to the vector and keyword branches
// concurrently. A failed branch contributes an empty set instead of
// failing the request.
func (s *Service) searchHybrid(
	ctx context.Context, semanticQuery string, filters filter.Set, maxResults int,
	opts vectorsearch.Options,
) []result.Merged {
	share := s.cfg.vectorShare()
	vectorK := int(math.Ceil(float64(maxResults) * share))
	keywordK := maxResults - vectorK
	if keywordK < 1 {
		keywordK = 1
	}

	var (
		wg             sync.WaitGroup
		vectorMatches  []result.Match
		keywordMatches []result.Match
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		vectorOpts := opts
		vectorOpts.TopK = vectorK
		res, err := s.vector.Semantic(ctx, semanticQuery, vectorOpts)
		if err != nil {
			s.logger.Warn("Hybrid vector branch failed", zap.Error(err))
			return
		}
		vectorMatches = res.Matches
	}()
	go func() {
		defer wg.Done()
		matches, err := s.store.SearchByText(ctx, semanticQuery, filters, keywordK)
		if err != nil {
			s.logger.Warn("Hybrid keyword branch failed", zap.Error(err))
			return
		}
		keywordMatches = matches
	}()
	wg.Wait()

	return mergeMatches(vectorMatches, keywordMatches, s.cfg.VectorBoost, maxResults)
}

// enrich fetches the full relational record for every merged ID
// concurrently, one fetch per ID. IDs that fail to resolve are dropped
// from the result list and reported separately.
func (s *Service) enrich(ctx context.Context, merged []result.Merged) ([]result.Enriched, []string) {
	if len(merged) == 0 {
		return nil, nil
	}

	type slot struct {
		enriched result.Enriched
		ok       bool
	}

	slots := make([]slot, len(merged))
	var wg sync.WaitGroup
	wg.Add(len(merged))

	for i, m := range merged {
		go func(i int, m result.Merged) {
			defer wg.Done()
			c, err := s.store.GetByID(ctx, m.CreatorID())
			if err != nil {
				s.logger.Debug("Dropping unresolved creator",
					zap.String("creator_id", m.CreatorID()), zap.Error(err))
				return
			}
			slots[i] = slot{enriched: result.NewEnriched(m, c), ok: true}
		}(i, m)
	}
	wg.Wait()

	enriched := make([]result.Enriched, 0, len(merged))
	var unresolved []string
	for i, sl := range slots {
		if sl.ok {
			enriched = append(enriched, sl.enriched)
		} else {
			unresolved = append(unresolved, merged[i].CreatorID())
		}
	}
	if len(unresolved) > 0 {
		metrics.EnrichmentDroppedTotal.Add(float64(len(unresolved)))
	}
	return enriched, unresolved
}

func failureSuggestions(err error) []string {
	switch {
	case errors.Is(err, domain.ErrCreatorNotIndexed), errors.Is(err, domain.ErrCreatorNotFound):
		return []string{"Check the referenced creator name or search without a reference"}
	case errors.Is(err, context.DeadlineExceeded):
		return []string{"The search took too long; retry with fewer filters or a shorter query"}
	default:
		return []string{"Retry the search or simplify the query"}
	}
}

// Package creatorsearch provides an embedded, in-process client for the
// creator search pipeline: LLM query analysis, vector similarity search
// over a Redis index and weighted recommendation scoring, without
// running the HTTP server.
package creatorsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	dbRedis "github.com/brandpulse/creatorsearch/internal/db/redis"
	"github.com/brandpulse/creatorsearch/internal/domain"
	domcreator "github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/repository/creatorindex"
	"github.com/brandpulse/creatorsearch/internal/repository/creatorstore"
	healthuc "github.com/brandpulse/creatorsearch/internal/usecase/health"
	indexeruc "github.com/brandpulse/creatorsearch/internal/usecase/indexer"
	inteluc "github.com/brandpulse/creatorsearch/internal/usecase/intel"
	"github.com/brandpulse/creatorsearch/internal/usecase/orchestrator"
	"github.com/brandpulse/creatorsearch/internal/usecase/recommend"
	"github.com/brandpulse/creatorsearch/internal/usecase/vectorsearch"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultVectorDimensions = 1536
)

// Embedder converts text to vector embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}

// EmbeddingResult carries the embedding vector and token counts.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Analyzer turns a free-text query into a structured extraction.
// Return an error on provider failure; the pipeline then falls back
// to keyword heuristics instead of failing the search.
type Analyzer interface {
	Extract(ctx context.Context, rawQuery string) (Extraction, error)
}

// Extraction is the raw analyzer output. Zero values mean "not extracted".
type Extraction struct {
	Intent           string
	Niche            string
	Tier             string
	Platform         string
	Country          string
	MinFollowers     int64
	MaxFollowers     int64
	MinEngagement    float64
	MaxBudget        float64
	SemanticQuery    string
	Confidence       float64
	Audience         string
	ContentStyle     string
	BrandHistory     string
	ReferenceCreator string
}

// Client is the creatorsearch SDK entry point.
type Client struct {
	store      *dbRedis.Store
	searchSvc  *orchestrator.Service
	indexerSvc *indexeruc.Service
	healthSvc  *healthuc.Service
}

// New creates a Client and connects to the backends.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		vectorDimensions: defaultVectorDimensions,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("creatorsearch: redis address required (use WithRedis)")
	}
	if cfg.relationalURL == "" {
		return nil, errors.New("creatorsearch: relational store required (use WithRelationalStore)")
	}
	if cfg.embedder == nil {
		return nil, errors.New("creatorsearch: embedder required (use WithEmbedder)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.addrs,
		Username: cfg.username,
		Password: cfg.password,
		DB:       cfg.db,
	})
	if err != nil {
		return nil, fmt.Errorf("creatorsearch: create store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("creatorsearch: store not ready: %w", err)
	}

	return wireClient(store, cfg)
}

func wireClient(store *dbRedis.Store, cfg *clientConfig) (*Client, error) {
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	storeRepo, err := creatorstore.New(creatorstore.Config{
		URL:    cfg.relationalURL,
		APIKey: cfg.relationalAPIKey,
		Table:  cfg.relationalTable,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creatorsearch: create creator store: %w", err)
	}

	indexRepo := creatorindex.New(store, cfg.vectorDimensions)
	if cfg.hnswM > 0 || cfg.hnswEFConstruct > 0 {
		indexRepo = indexRepo.WithHNSW(creatorindex.HNSWConfig{
			M:           cfg.hnswM,
			EFConstruct: cfg.hnswEFConstruct,
		})
	}

	embedder := &embedderAdapter{inner: cfg.embedder}

	// Analyzer: when none is configured every query goes through the
	// keyword heuristics path.
	var analyzer inteluc.Analyzer = &noAnalyzer{}
	if cfg.analyzer != nil {
		analyzer = &analyzerAdapter{inner: cfg.analyzer}
	}

	intelSvc := inteluc.New(analyzer, cfg.confidenceGate, logger)
	vectorSvc := vectorsearch.New(indexRepo, embedder)
	searchSvc := orchestrator.New(intelSvc, vectorSvc, storeRepo, orchestrator.Config{
		Timeout:     cfg.requestTimeout,
		VectorBoost: cfg.vectorBoost,
		VectorShare: cfg.vectorShare,
		MinScore:    cfg.minScore,
	}, logger)
	indexerSvc := indexeruc.New(indexRepo, embedder, logger)
	healthSvc := healthuc.New(indexRepo, storeRepo, nil)

	return &Client{
		store:      store,
		searchSvc:  searchSvc,
		indexerSvc: indexerSvc,
		healthSvc:  healthSvc,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks vector store connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// EnsureIndex creates the vector index if it does not exist (idempotent).
func (c *Client) EnsureIndex(ctx context.Context) error {
	return c.indexerSvc.EnsureIndex(ctx)
}

// SearchParams describes one search call.
type SearchParams struct {
	Query      string
	Filters    map[string]Filter
	MaxResults int

	// DisableHybrid turns off keyword fusion; only vector matches
	// are returned then.
	DisableHybrid bool
}

// Filter constrains one creator attribute.
type Filter struct {
	Equals string
	In     []string
	Min    *float64
	Max    *float64
}

// Search runs the full pipeline and returns a structured output.
// It never returns a Go error for pipeline failures; inspect
// Output.Success and Output.Errors instead.
func (c *Client) Search(ctx context.Context, p SearchParams) *Output {
	resp := c.searchSvc.Search(ctx, orchestrator.SearchRequest{
		Text:       p.Query,
		Filters:    filtersFromParams(p.Filters),
		MaxResults: p.MaxResults,
		UseHybrid:  !p.DisableHybrid,
	})
	return outputFromResponse(resp, nil)
}

// Similar finds creators similar to a known, already indexed creator.
func (c *Client) Similar(ctx context.Context, creatorID string, maxResults int, includeOriginal bool) *Output {
	resp := c.searchSvc.Similar(ctx, creatorID, maxResults, includeOriginal)
	return outputFromResponse(resp, nil)
}

// Recommend runs a search and ranks the results with weighted
// business scoring on top of similarity.
func (c *Client) Recommend(ctx context.Context, p SearchParams) *Output {
	resp, scored := c.searchSvc.Recommend(ctx, orchestrator.SearchRequest{
		Text:       p.Query,
		Filters:    filtersFromParams(p.Filters),
		MaxResults: p.MaxResults,
		UseHybrid:  !p.DisableHybrid,
	})
	return outputFromResponse(resp, scored)
}

// Suggest returns query completions for a partial input.
func (c *Client) Suggest(partial string, max int) []string {
	return c.searchSvc.Suggest(partial, max)
}

// IndexCreator embeds a creator profile and writes it to the vector index.
func (c *Client) IndexCreator(ctx context.Context, cr Creator) error {
	dc := domcreator.Reconstruct(
		cr.ID, cr.Name, cr.Niche, cr.Tier, cr.Platform, cr.Country, cr.Bio,
		cr.Followers, cr.EngagementRate, cr.Price, cr.Satisfaction,
		cr.Collaborations,
	)
	return c.indexerSvc.Upsert(ctx, &dc)
}

// RemoveCreator deletes a creator from the vector index.
func (c *Client) RemoveCreator(ctx context.Context, creatorID string) error {
	return c.indexerSvc.Delete(ctx, creatorID)
}

// Health reports per-backend availability.
func (c *Client) Health(ctx context.Context) (string, map[string]string) {
	report := c.healthSvc.Check(ctx)
	checks := make(map[string]string, len(report.Checks))
	for name, res := range report.Checks {
		checks[name] = string(res)
	}
	return string(report.Status), checks
}

// Creator is the public creator record.
type Creator struct {
	ID             string
	Name           string
	Niche          string
	Tier           string
	Platform       string
	Country        string
	Bio            string
	Followers      int64
	EngagementRate float64
	Price          float64
	Satisfaction   float64
	Collaborations int
}

// ResultItem is one enriched search hit.
type ResultItem struct {
	CreatorID string
	Score     float64
	Source    string
	Creator   Creator
}

// Recommendation is a result item with business scoring applied.
type Recommendation struct {
	ResultItem
	TotalScore float64
	Breakdown  map[string]float64
}

// Output is the structured outcome of a search call.
type Output struct {
	Success         bool
	Results         []ResultItem
	Recommendations []Recommendation
	Unresolved      []string

	Intent        string
	Confidence    float64
	SemanticQuery string
	Strategy      string
	ExecutionTime time.Duration
	TotalMatches  int
	Warnings      []string

	Errors      []string
	Suggestions []string
}

// embedderAdapter wraps the public Embedder to satisfy internal domain.Embedder.
type embedderAdapter struct {
	inner Embedder
}

func (a *embedderAdapter) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	r, err := a.inner.Embed(ctx, text)
	if err != nil {
		return domain.EmbeddingResult{}, fmt.Errorf("embed: %w", err)
	}
	return domain.EmbeddingResult{
		Embedding:    r.Embedding,
		PromptTokens: r.PromptTokens,
		TotalTokens:  r.TotalTokens,
	}, nil
}

// analyzerAdapter wraps the public Analyzer to satisfy the internal contract.
type analyzerAdapter struct {
	inner Analyzer
}

func (a *analyzerAdapter) Extract(ctx context.Context, rawQuery string) (domain.Extraction, error) {
	ext, err := a.inner.Extract(ctx, rawQuery)
	if err != nil {
		return domain.Extraction{}, fmt.Errorf("%w: %w", domain.ErrAnalysisProviderError, err)
	}
	return domain.Extraction(ext), nil
}

// noAnalyzer always fails, which routes every query through the
// keyword heuristics fallback.
type noAnalyzer struct{}

func (noAnalyzer) Extract(_ context.Context, _ string) (domain.Extraction, error) {
	return domain.Extraction{}, domain.ErrAnalysisProviderError
}

func filtersFromParams(params map[string]Filter) filter.Set {
	set := filter.NewSet()
	for name, f := range params {
		attr := filter.Attr(name)
		if f.Equals != "" {
			set.SetEquals(attr, f.Equals)
		}
		if len(f.In) > 0 {
			set.SetIn(attr, f.In)
		}
		if f.Min != nil {
			set.SetMin(attr, *f.Min)
		}
		if f.Max != nil {
			set.SetMax(attr, *f.Max)
		}
	}
	return set
}

func creatorFromDomain(dc domcreator.Creator) Creator {
	return Creator{
		ID:             dc.ID(),
		Name:           dc.Name(),
		Niche:          dc.Niche(),
		Tier:           dc.Tier(),
		Platform:       dc.Platform(),
		Country:        dc.Country(),
		Bio:            dc.Bio(),
		Followers:      dc.Followers(),
		EngagementRate: dc.EngagementRate(),
		Price:          dc.Price(),
		Satisfaction:   dc.Satisfaction(),
		Collaborations: dc.Collaborations(),
	}
}

func outputFromResponse(resp *orchestrator.Response, scored []recommend.ScoredRecommendation) *Output {
	analysis := resp.Metadata.Analysis
	out := &Output{
		Success:       resp.Success,
		Unresolved:    resp.Unresolved,
		Intent:        string(analysis.Intent()),
		Confidence:    analysis.Confidence(),
		SemanticQuery: analysis.SemanticQuery(),
		Strategy:      resp.Metadata.Strategy,
		ExecutionTime: resp.Metadata.ExecutionTime,
		TotalMatches:  resp.Metadata.TotalMatches,
		Warnings:      resp.Metadata.Warnings,
		Errors:        resp.Errors,
		Suggestions:   resp.Suggestions,
	}
	for i := range resp.Results {
		e := &resp.Results[i]
		out.Results = append(out.Results, ResultItem{
			CreatorID: e.CreatorID(),
			Score:     e.CombinedScore(),
			Source:    string(e.Source()),
			Creator:   creatorFromDomain(e.Creator()),
		})
	}
	for i := range scored {
		s := &scored[i]
		out.Recommendations = append(out.Recommendations, Recommendation{
			ResultItem: ResultItem{
				CreatorID: s.Result.CreatorID(),
				Score:     s.Result.CombinedScore(),
				Source:    string(s.Result.Source()),
				Creator:   creatorFromDomain(s.Result.Creator()),
			},
			TotalScore: s.TotalScore,
			Breakdown:  s.Breakdown,
		})
	}
	return out
}

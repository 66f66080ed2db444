package intel

import (
	"context"

	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/intent"
	"github.com/brandpulse/creatorsearch/internal/domain/search/query"
	"github.com/brandpulse/creatorsearch/internal/domain/taxonomy"
	"github.com/brandpulse/creatorsearch/internal/metrics"
)

// DefaultConfidenceGate is the minimum extraction confidence at which
// an inferred niche filter is trusted. Niche filters over-constrain
// ambiguous queries more than any other attribute, so they are held to
// a higher bar than the rest of the extraction.
const DefaultConfidenceGate = 0.9

// Service turns a raw search phrase into a validated query analysis.
// Analyze never returns an error: a provider failure degrades to the
// keyword fallback, which is the terminal error boundary here.
type Service struct {
	analyzer       Analyzer
	confidenceGate float64
	logger         *zap.Logger
}

// New creates a query intelligence service. A zero confidenceGate
// falls back to DefaultConfidenceGate.
func New(analyzer Analyzer, confidenceGate float64, logger *zap.Logger) *Service {
	if confidenceGate <= 0 {
		confidenceGate = DefaultConfidenceGate
	}
	return &Service{
		analyzer:       analyzer,
		confidenceGate: confidenceGate,
		logger:         logger,
	}
}

// Analyze extracts intent and filters from rawQuery via the analysis
// provider, validating every enum against the taxonomy. On provider
// failure it degrades to the deterministic keyword heuristic.
func (s *Service) Analyze(ctx context.Context, rawQuery string) query.Analysis {
	ext, err := s.analyzer.Extract(ctx, rawQuery)
	if err != nil {
		metrics.AnalysisRequestsTotal.WithLabelValues("llm", "error").Inc()
		s.logger.Warn("Query analysis provider failed, using keyword fallback",
			zap.String("query", rawQuery), zap.Error(err))
		analysis := analyzeFallback(rawQuery)
		metrics.AnalysisRequestsTotal.WithLabelValues("fallback", "ok").Inc()
		return analysis
	}
	metrics.AnalysisRequestsTotal.WithLabelValues("llm", "ok").Inc()

	filters := filter.NewSet()

	// Enum values outside the taxonomy are dropped, not forwarded.
	if niche, ok := taxonomy.ParseNiche(ext.Niche); ok {
		if ext.Confidence >= s.confidenceGate {
			filters.SetEquals(filter.AttrNiche, string(niche))
		} else {
			s.logger.Debug("Dropping low-confidence niche filter",
				zap.String("niche", string(niche)),
				zap.Float64("confidence", ext.Confidence))
		}
	}
	if platform, ok := taxonomy.ParsePlatform(ext.Platform); ok {
		filters.SetEquals(filter.AttrPlatform, string(platform))
	}
	if ext.Country != "" {
		filters.SetEquals(filter.AttrCountry, ext.Country)
	}

	if ext.MinFollowers > 0 {
		filters.SetMin(filter.AttrFollowers, float64(ext.MinFollowers))
	}
	if ext.MaxFollowers > 0 {
		filters.SetMax(filter.AttrFollowers, float64(ext.MaxFollowers))
	}

	if tier, ok := taxonomy.ParseTier(ext.Tier); ok {
		filters.SetEquals(filter.AttrTier, string(tier))
		// Expand the tier into follower bounds only when the query did
		// not state explicit bounds of its own.
		if ext.MinFollowers == 0 && ext.MaxFollowers == 0 {
			if minF, maxF, ok := taxonomy.FollowerRange(tier); ok {
				if minF > 0 {
					filters.SetMin(filter.AttrFollowers, float64(minF))
				}
				if maxF > 0 {
					filters.SetMax(filter.AttrFollowers, float64(maxF))
				}
			}
		}
	}

	if ext.MinEngagement > 0 {
		filters.SetMin(filter.AttrEngagement, ext.MinEngagement)
	}
	if ext.MaxBudget > 0 {
		filters.SetMax(filter.AttrPrice, ext.MaxBudget)
	}

	semanticQuery := ext.SemanticQuery
	if semanticQuery == "" {
		semanticQuery = rawQuery
	}

	aspects := map[string]string{}
	if ext.Audience != "" {
		aspects[query.AspectAudience] = ext.Audience
	}
	if ext.ContentStyle != "" {
		aspects[query.AspectContentStyle] = ext.ContentStyle
	}
	if ext.BrandHistory != "" {
		aspects[query.AspectBrandHistory] = ext.BrandHistory
	}
	if ext.ReferenceCreator != "" {
		aspects[query.AspectReference] = ext.ReferenceCreator
	}

	return query.NewAnalysis(
		intent.Parse(ext.Intent), filters, semanticQuery, ext.Confidence, aspects,
	)
}

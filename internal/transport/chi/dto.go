package chi

import (
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
	"github.com/brandpulse/creatorsearch/internal/usecase/orchestrator"
	"github.com/brandpulse/creatorsearch/internal/usecase/recommend"
)

// Error codes on the wire.
const (
	codeBadRequest        = "bad_request"
	codeInvalidQuery      = "invalid_query"
	codeCreatorNotFound   = "creator_not_found"
	codeCreatorNotIndexed = "creator_not_indexed"
	codeProviderError     = "provider_error"
	codeBackendDown       = "backend_unavailable"
	codeInternalError     = "internal_error"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type filterPayload struct {
	Equals string   `json:"equals,omitempty"`
	In     []string `json:"in,omitempty"`
	Min    *float64 `json:"min,omitempty"`
	Max    *float64 `json:"max,omitempty"`
}

type searchPayload struct {
	Query           string                   `json:"query"`
	Filters         map[string]filterPayload `json:"filters,omitempty"`
	MaxResults      int                      `json:"max_results,omitempty"`
	UseHybridSearch *bool                    `json:"use_hybrid_search,omitempty"`
}

type similarPayload struct {
	MaxResults      int  `json:"max_results,omitempty"`
	IncludeOriginal bool `json:"include_original,omitempty"`
}

type creatorPayload struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Niche          string  `json:"niche"`
	Tier           string  `json:"tier"`
	Platform       string  `json:"platform"`
	Country        string  `json:"country,omitempty"`
	Bio            string  `json:"bio,omitempty"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	Price          float64 `json:"price"`
	Satisfaction   float64 `json:"satisfaction_score"`
	Collaborations int     `json:"collaboration_count"`
}

type enrichedItem struct {
	CreatorID     string         `json:"creator_id"`
	CombinedScore float64        `json:"combined_score"`
	Source        string         `json:"source"`
	Creator       creatorPayload `json:"creator"`
}

type scoredItem struct {
	enrichedItem
	TotalScore     float64            `json:"total_score"`
	ScoreBreakdown map[string]float64 `json:"score_breakdown"`
}

type searchMetadata struct {
	Intent          string   `json:"intent,omitempty"`
	Confidence      float64  `json:"confidence,omitempty"`
	SemanticQuery   string   `json:"semantic_query,omitempty"`
	Strategy        string   `json:"strategy,omitempty"`
	ExecutionTimeMs int64    `json:"execution_time_ms"`
	AppliedFilters  []string `json:"applied_filters,omitempty"`
	TotalMatches    int      `json:"total_matches"`
	Warnings        []string `json:"warnings,omitempty"`
}

type searchResponse struct {
	Success       bool            `json:"success"`
	Results       []enrichedItem  `json:"results,omitempty"`
	UnresolvedIDs []string        `json:"unresolved_ids,omitempty"`
	Metadata      *searchMetadata `json:"metadata,omitempty"`
	Errors        []string        `json:"errors,omitempty"`
	Suggestions   []string        `json:"suggestions,omitempty"`
}

type recommendationsResponse struct {
	Success         bool            `json:"success"`
	Recommendations []scoredItem    `json:"recommendations,omitempty"`
	UnresolvedIDs   []string        `json:"unresolved_ids,omitempty"`
	Metadata        *searchMetadata `json:"metadata,omitempty"`
	Errors          []string        `json:"errors,omitempty"`
	Suggestions     []string        `json:"suggestions,omitempty"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func filtersFromPayload(payload map[string]filterPayload) filter.Set {
	set := filter.NewSet()
	for name, p := range payload {
		attr := filter.Attr(name)
		if p.Equals != "" {
			set.SetEquals(attr, p.Equals)
		}
		if len(p.In) > 0 {
			set.SetIn(attr, p.In)
		}
		if p.Min != nil {
			set.SetMin(attr, *p.Min)
		}
		if p.Max != nil {
			set.SetMax(attr, *p.Max)
		}
	}
	return set
}

func creatorToPayload(c creator.Creator) creatorPayload {
	return creatorPayload{
		ID:             c.ID(),
		Name:           c.Name(),
		Niche:          c.Niche(),
		Tier:           c.Tier(),
		Platform:       c.Platform(),
		Country:        c.Country(),
		Bio:            c.Bio(),
		Followers:      c.Followers(),
		EngagementRate: c.EngagementRate(),
		Price:          c.Price(),
		Satisfaction:   c.Satisfaction(),
		Collaborations: c.Collaborations(),
	}
}

func enrichedToItem(r result.Enriched) enrichedItem {
	return enrichedItem{
		CreatorID:     r.CreatorID(),
		CombinedScore: r.CombinedScore(),
		Source:        string(r.Source()),
		Creator:       creatorToPayload(r.Creator()),
	}
}

func metadataToPayload(m orchestrator.Metadata) *searchMetadata {
	applied := make([]string, 0, len(m.AppliedFilters))
	for _, a := range m.AppliedFilters {
		applied = append(applied, string(a))
	}
	analysis := m.Analysis
	return &searchMetadata{
		Intent:          string(analysis.Intent()),
		Confidence:      analysis.Confidence(),
		SemanticQuery:   analysis.SemanticQuery(),
		Strategy:        m.Strategy,
		ExecutionTimeMs: m.ExecutionTime.Milliseconds(),
		AppliedFilters:  applied,
		TotalMatches:    m.TotalMatches,
		Warnings:        m.Warnings,
	}
}

func searchResponseFromDomain(resp *orchestrator.Response) searchResponse {
	out := searchResponse{
		Success:       resp.Success,
		UnresolvedIDs: resp.Unresolved,
		Metadata:      metadataToPayload(resp.Metadata),
		Errors:        resp.Errors,
		Suggestions:   resp.Suggestions,
	}
	for _, r := range resp.Results {
		out.Results = append(out.Results, enrichedToItem(r))
	}
	return out
}

func recommendationsFromDomain(
	resp *orchestrator.Response, scored []recommend.ScoredRecommendation,
) recommendationsResponse {
	out := recommendationsResponse{
		Success:       resp.Success,
		UnresolvedIDs: resp.Unresolved,
		Metadata:      metadataToPayload(resp.Metadata),
		Errors:        resp.Errors,
		Suggestions:   resp.Suggestions,
	}
	for _, s := range scored {
		out.Recommendations = append(out.Recommendations, scoredItem{
			enrichedItem:   enrichedToItem(s.Result),
			TotalScore:     s.TotalScore,
			ScoreBreakdown: s.Breakdown,
		})
	}
	return out
}

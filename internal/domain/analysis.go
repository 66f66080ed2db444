package domain

import "context"

// Extraction is the raw structured output of the query-analysis provider,
// before taxonomy validation. Zero values mean "not extracted".
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

// Analyzer turns a free-text query into a raw structured extraction.
// Implementations return ErrAnalysisProviderError on provider failure so
// the intelligence layer can fall back to keyword heuristics.
type Analyzer interface {
	Extract(ctx context.Context, rawQuery string) (Extraction, error)
}

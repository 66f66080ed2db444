// Package query holds the validated search input and its derived analysis.
package query

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/intent"
)

// Query length and result-count limits.
const (
	MinQueryLength    = 2
	MaxQueryLength    = 500
	DefaultMaxResults = 20
	MaxMaxResults     = 50
)

// Query is a validated, immutable search input.
type Query struct {
	text       string
	filters    filter.Set
	maxResults int
	useHybrid  bool
}

// New validates and normalizes a raw search input.
// Defaults: maxResults=20 (capped at 50), hybrid search on.
func New(text string, overrides filter.Set, maxResults int, useHybrid bool) (Query, error) {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < MinQueryLength {
		return Query{}, fmt.Errorf("%w: query must be at least %d characters", domain.ErrInvalidQuery, MinQueryLength)
	}
	if len(trimmed) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query must be at most %d characters", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults > MaxMaxResults {
		maxResults = MaxMaxResults
	}
	if overrides == nil {
		overrides = filter.NewSet()
	}
	return Query{
		text:       trimmed,
		filters:    overrides,
		maxResults: maxResults,
		useHybrid:  useHybrid,
	}, nil
}

// Text returns the trimmed query text.
func (q *Query) Text() string { return q.text }

// Filters returns caller-supplied filter overrides.
func (q *Query) Filters() filter.Set { return q.filters }

// MaxResults returns the requested result-count bound.
func (q *Query) MaxResults() int { return q.maxResults }

// UseHybrid reports whether hybrid fusion is enabled for general search.
func (q *Query) UseHybrid() bool { return q.useHybrid }

// Warnings returns advisory notes about overly generic queries.
// They never block execution.
func (q *Query) Warnings() []string {
	var warnings []string
	hasLetter := false
	allDigits := true
	for _, r := range q.text {
		if unicode.IsLetter(r) {
			hasLetter = true
		}
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			allDigits = false
		}
	}
	if allDigits {
		warnings = append(warnings, "query is purely numeric and may be too generic")
	} else if !hasLetter {
		warnings = append(warnings, "query contains no letters and may be too generic")
	}
	return warnings
}

// Aspect keys on an Analysis, one per intent-specific search text.
const (
	AspectAudience     = "audience"
	AspectContentStyle = "content_style"
	AspectBrandHistory = "brand_history"
	AspectReference    = "reference_creator"
)

// Analysis is the structured interpretation of a query: detected intent,
// extracted filters, a cleaned semantic query string, and the extractor's
// confidence. Created per request, never persisted.
type Analysis struct {
	intent        intent.Intent
	filters       filter.Set
	semanticQuery string
	confidence    float64
	aspects       map[string]string
}

// NewAnalysis builds an analysis. Confidence is clamped to [0,1] and a
// missing semantic query falls back to the raw text provided here.
func NewAnalysis(
	in intent.Intent, filters filter.Set,
	semanticQuery string, confidence float64,
	aspects map[string]string,
) Analysis {
	if !in.IsValid() {
		in = intent.General
	}
	if filters == nil {
		filters = filter.NewSet()
	}
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}
	return Analysis{
		intent:        in,
		filters:       filters,
		semanticQuery: semanticQuery,
		confidence:    confidence,
		aspects:       aspects,
	}
}

// Intent returns the detected intent.
func (a *Analysis) Intent() intent.Intent { return a.intent }

// Filters returns the extracted constraint set.
func (a *Analysis) Filters() filter.Set { return a.filters }

// SemanticQuery returns the cleaned text used for embedding.
func (a *Analysis) SemanticQuery() string { return a.semanticQuery }

// Confidence returns the extraction confidence in [0,1].
func (a *Analysis) Confidence() float64 { return a.confidence }

// Aspect returns the intent-specific search text for a key, if present.
func (a *Analysis) Aspect(key string) (string, bool) {
	v, ok := a.aspects[key]
	return v, ok && v != ""
}

// Package creatorstore is the relational repository for creator records,
// backed by Supabase Postgres through postgrest.
package creatorstore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/supabase-community/supabase-go"

	"github.com/brandpulse/creatorsearch/internal/domain"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

const defaultTable = "creators"

// Config holds Supabase connection settings.
type Config struct {
	URL    string
	APIKey string
	Table  string
}

// Store reads creator records from the relational store.
type Store struct {
	client *supabase.Client
	table  string
}

// New creates a relational creator store.
func New(cfg Config) (*Store, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("supabase URL is required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("supabase API key is required")
	}
	if cfg.Table == "" {
		cfg.Table = defaultTable
	}

	client, err := supabase.NewClient(cfg.URL, cfg.APIKey, nil)
	if err != nil {
		return nil, fmt.Errorf("create supabase client: %w", err)
	}

	return &Store{client: client, table: cfg.Table}, nil
}

// GetByID fetches one creator record. Missing rows map to
// domain.ErrCreatorNotFound.
//
// The ctx parameter is accepted for interface symmetry; postgrest-go does
// not thread contexts through its request builder.
func (s *Store) GetByID(_ context.Context, id string) (creator.Creator, error) {
	var rows []row
	_, err := s.client.From(s.table).
		Select("*", "", false).
		Eq("id", id).
		ExecuteTo(&rows)
	if err != nil {
		return creator.Creator{}, fmt.Errorf("get creator %s: %w: %w", id, domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return creator.Creator{}, fmt.Errorf("creator %s: %w", id, domain.ErrCreatorNotFound)
	}
	return rows[0].toDomain(), nil
}

// SearchByName resolves a free-text creator name to a record.
// First match wins; no disambiguation.
func (s *Store) SearchByName(_ context.Context, name string) (creator.Creator, error) {
	pattern := "%" + sanitizeTerm(name) + "%"

	var rows []row
	_, err := s.client.From(s.table).
		Select("*", "", false).
		Ilike("name", pattern).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return creator.Creator{}, fmt.Errorf("search name %q: %w: %w", name, domain.ErrStoreUnavailable, err)
	}
	if len(rows) == 0 {
		return creator.Creator{}, fmt.Errorf("name %q: %w", name, domain.ErrCreatorNotFound)
	}
	return rows[0].toDomain(), nil
}

// SearchByText runs the keyword branch of hybrid search: substring match
// over name and bio, constrained by the recognized filters, capped at limit.
// Scores are rank-derived since Postgres substring match carries no
// relevance score; the fusion step rescales them.
func (s *Store) SearchByText(
	_ context.Context, term string, filters filter.Set, limit int,
) ([]result.Match, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + sanitizeTerm(term) + "%"

	q := s.client.From(s.table).
		Select("*", "", false).
		Or(fmt.Sprintf("name.ilike.%s,bio.ilike.%s", pattern, pattern), "")

	for _, attr := range filters.Attrs() {
		c, _ := filters.Get(attr)
		col := columnFor(attr)
		if c.IsEquality() {
			q = q.Eq(col, c.Equals())
		} else if c.IsMembership() {
			q = q.In(col, c.In())
		}
		if c.Min() != nil {
			q = q.Gte(col, strconv.FormatFloat(*c.Min(), 'f', -1, 64))
		}
		if c.Max() != nil {
			q = q.Lte(col, strconv.FormatFloat(*c.Max(), 'f', -1, 64))
		}
	}

	var rows []row
	_, err := q.Limit(limit, "").ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("search text %q: %w: %w", term, domain.ErrStoreUnavailable, err)
	}

	matches := make([]result.Match, 0, len(rows))
	for i, r := range rows {
		score := float64(len(rows)-i) / float64(len(rows))
		matches = append(matches, result.NewMatch(r.ID, score, map[string]string{
			"name":     r.Name,
			"niche":    r.Niche,
			"platform": r.Platform,
		}))
	}
	return matches, nil
}

// HealthCheck verifies the relational store is reachable.
func (s *Store) HealthCheck(_ context.Context) error {
	var rows []row
	_, err := s.client.From(s.table).
		Select("id", "", false).
		Limit(1, "").
		ExecuteTo(&rows)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// columnFor maps a filter attribute to its table column.
func columnFor(a filter.Attr) string {
	switch a {
	case filter.AttrSatisfaction:
		return "satisfaction_score"
	default:
		return string(a)
	}
}

// sanitizeTerm strips postgrest reserved characters from a user term.
var termSanitizer = strings.NewReplacer(",", " ", "(", " ", ")", " ", "%", " ", ".", " ")

func sanitizeTerm(term string) string {
	return strings.TrimSpace(termSanitizer.Replace(term))
}

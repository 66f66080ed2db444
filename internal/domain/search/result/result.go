// Package result holds the search pipeline's intermediate and final hits.
package result

import "github.com/brandpulse/creatorsearch/internal/domain/creator"

// Source tags which branch produced a merged result.
type Source string

// Result sources.
const (
	SourceVector      Source = "vector"
	SourceTraditional Source = "traditional"
	SourceHybrid      Source = "hybrid"
)

// Match is a single un-enriched hit from one search strategy.
type Match struct {
	creatorID string
	score     float64
	metadata  map[string]string
}

// NewMatch creates a match. Score is expected in [0,1].
func NewMatch(creatorID string, score float64, metadata map[string]string) Match {
	return Match{creatorID: creatorID, score: score, metadata: metadata}
}

// CreatorID returns the matched creator identifier.
func (m *Match) CreatorID() string { return m.creatorID }

// Score returns the similarity or keyword relevance score.
func (m *Match) Score() float64 { return m.score }

// Metadata returns source metadata attached by the index.
func (m *Match) Metadata() map[string]string { return m.metadata }

// Merged is a match after fusion: one entry per creator ID with a bounded
// combined score and a source tag.
type Merged struct {
	creatorID     string
	combinedScore float64
	source        Source
	metadata      map[string]string
}

// NewMerged creates a merged result.
func NewMerged(creatorID string, combinedScore float64, source Source, metadata map[string]string) Merged {
	return Merged{
		creatorID:     creatorID,
		combinedScore: combinedScore,
		source:        source,
		metadata:      metadata,
	}
}

// CreatorID returns the creator identifier.
func (m *Merged) CreatorID() string { return m.creatorID }

// CombinedScore returns the fused score.
func (m *Merged) CombinedScore() float64 { return m.combinedScore }

// Source returns which branches contributed the result.
func (m *Merged) Source() Source { return m.source }

// Metadata returns source metadata carried through the merge.
func (m *Merged) Metadata() map[string]string { return m.metadata }

// Enriched joins a merged result with the full creator record.
type Enriched struct {
	merged  Merged
	creator creator.Creator
}

// NewEnriched creates an enriched result.
func NewEnriched(m Merged, c creator.Creator) Enriched {
	return Enriched{merged: m, creator: c}
}

// CreatorID returns the creator identifier.
func (e *Enriched) CreatorID() string { return e.merged.CreatorID() }

// CombinedScore returns the fused score.
func (e *Enriched) CombinedScore() float64 { return e.merged.CombinedScore() }

// Source returns which branches contributed the result.
func (e *Enriched) Source() Source { return e.merged.Source() }

// Creator returns the full relational record.
func (e *Enriched) Creator() creator.Creator { return e.creator }

package orchestrator

import (
	"sort"

	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

// DefaultVectorBoost is applied to vector-only scores before merging.
// Vector relevance is trusted more than keyword rank, which is only a
// position-derived score.
const DefaultVectorBoost = 1.2

// mergeMatches fuses the vector and keyword result sets into one list
// keyed by creator ID. A creator present in both sources gets the
// average of its two scores and the hybrid tag; a vector-only creator
// gets its score boosted then capped at 1.0. The result is sorted by
// combined score descending and truncated to limit.
func mergeMatches(vector, keyword []result.Match, boost float64, limit int) []result.Merged {
	if boost <= 0 {
		boost = DefaultVectorBoost
	}

	type entry struct {
		vectorScore  float64
		keywordScore float64
		inVector     bool
		inKeyword    bool
		metadata     map[string]string
	}

	merged := make(map[string]*entry, len(vector)+len(keyword))
	order := make([]string, 0, len(vector)+len(keyword))

	for _, m := range vector {
		e, ok := merged[m.CreatorID()]
		if !ok {
			e = &entry{}
			merged[m.CreatorID()] = e
			order = append(order, m.CreatorID())
		}
		e.vectorScore = m.Score()
		e.inVector = true
		e.metadata = m.Metadata()
	}

	for _, m := range keyword {
		e, ok := merged[m.CreatorID()]
		if !ok {
			e = &entry{}
			merged[m.CreatorID()] = e
			order = append(order, m.CreatorID())
		}
		e.keywordScore = m.Score()
		e.inKeyword = true
		if e.metadata == nil {
			e.metadata = m.Metadata()
		}
	}

	out := make([]result.Merged, 0, len(merged))
	for _, id := range order {
		e := merged[id]
		var score float64
		var source result.Source
		switch {
		case e.inVector && e.inKeyword:
			// Averaged, not summed, to keep the scale bounded.
			score = (e.vectorScore + e.keywordScore) / 2
			source = result.SourceHybrid
		case e.inVector:
			score = e.vectorScore * boost
			if score > 1.0 {
				score = 1.0
			}
			source = result.SourceVector
		default:
			score = e.keywordScore
			source = result.SourceTraditional
		}
		out = append(out, result.NewMerged(id, score, source, e.metadata))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CombinedScore() > out[j].CombinedScore()
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// matchesToMerged tags a single-source result list without fusion.
func matchesToMerged(matches []result.Match, source result.Source, limit int) []result.Merged {
	out := make([]result.Merged, 0, len(matches))
	for _, m := range matches {
		out = append(out, result.NewMerged(m.CreatorID(), m.Score(), source, m.Metadata()))
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

package orchestrator

import (
	"math"
	"testing"

	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

func matches(pairs ...any) []result.Match {
	out := make([]result.Match, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, result.NewMatch(pairs[i].(string), pairs[i+1].(float64), nil))
	}
	return out
}

func TestMergeMatches_AveragesSharedCreators(t *testing.T) {
	vector := matches("a", 0.6)
	keyword := matches("a", 0.8)

	merged := mergeMatches(vector, keyword, 1.2, 10)

	if len(merged) != 1 {
		t.Fatalf("expected one entry per unique creator, got %d", len(merged))
	}
	if merged[0].Source() != result.SourceHybrid {
		t.Errorf("expected hybrid tag, got %s", merged[0].Source())
	}
	if merged[0].CombinedScore() != 0.7 {
		t.Errorf("expected averaged score 0.7, got %v", merged[0].CombinedScore())
	}
}

func TestMergeMatches_BoostsVectorOnly(t *testing.T) {
	merged := mergeMatches(matches("a", 0.5), nil, 1.2, 10)

	if math.Abs(merged[0].CombinedScore()-0.6) > 1e-9 {
		t.Errorf("expected 0.5*1.2=0.6, got %v", merged[0].CombinedScore())
	}
	if merged[0].Source() != result.SourceVector {
		t.Errorf("expected vector tag, got %s", merged[0].Source())
	}
}

func TestMergeMatches_BoostCapsAtOne(t *testing.T) {
	merged := mergeMatches(matches("a", 0.95), nil, 1.2, 10)
	if merged[0].CombinedScore() != 1.0 {
		t.Errorf("expected cap at 1.0, got %v", merged[0].CombinedScore())
	}
}

func TestMergeMatches_KeywordOnlyUnchanged(t *testing.T) {
	merged := mergeMatches(nil, matches("a", 0.5), 1.2, 10)
	if merged[0].CombinedScore() != 0.5 {
		t.Errorf("expected untouched keyword score, got %v", merged[0].CombinedScore())
	}
	if merged[0].Source() != result.SourceTraditional {
		t.Errorf("expected traditional tag, got %s", merged[0].Source())
	}
}

func TestMergeMatches_CommutativeUnderReordering(t *testing.T) {
	vectorAB := matches("a", 0.6, "b", 0.4)
	vectorBA := matches("b", 0.4, "a", 0.6)
	keywordAB := matches("a", 0.8, "b", 0.2)
	keywordBA := matches("b", 0.2, "a", 0.8)

	first := mergeMatches(vectorAB, keywordAB, 1.2, 10)
	second := mergeMatches(vectorBA, keywordBA, 1.2, 10)

	scoresOf := func(ms []result.Merged) map[string]float64 {
		out := make(map[string]float64, len(ms))
		for _, m := range ms {
			out[m.CreatorID()] = m.CombinedScore()
		}
		return out
	}
	a, b := scoresOf(first), scoresOf(second)
	if len(a) != len(b) {
		t.Fatalf("expected same creators, got %v vs %v", a, b)
	}
	for id, score := range a {
		if b[id] != score {
			t.Errorf("creator %s: %v vs %v after reordering", id, score, b[id])
		}
	}
}

func TestMergeMatches_SortsDescendingAndTruncates(t *testing.T) {
	vector := matches("a", 0.3, "b", 0.7, "c", 0.5)

	merged := mergeMatches(vector, nil, 1.0, 2)

	if len(merged) != 2 {
		t.Fatalf("expected truncation to 2, got %d", len(merged))
	}
	if merged[0].CreatorID() != "b" || merged[1].CreatorID() != "c" {
		t.Errorf("expected [b c], got [%s %s]", merged[0].CreatorID(), merged[1].CreatorID())
	}
}

package recommend

import (
	"sort"

	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

// Component weights. They sum to 100, so a creator maxing every band
// scores exactly 100.
const (
	WeightSimilarity   = 35.0
	WeightEngagement   = 25.0
	WeightFollowers    = 15.0
	WeightSatisfaction = 15.0
	WeightExperience   = 10.0
)

// Breakdown component names, keys of ScoredRecommendation.Breakdown.
const (
	ComponentSimilarity   = "similarity"
	ComponentEngagement   = "engagement"
	ComponentFollowers    = "followers"
	ComponentSatisfaction = "satisfaction"
	ComponentExperience   = "experience"
)

// band maps a metric value above Threshold (at or above when
// Inclusive) to a fraction of the component weight. Bands are
// evaluated top down, first hit wins; no hit scores zero.
type band struct {
	Threshold float64
	Fraction  float64
	Inclusive bool
}

// engagementBands: engagement rate is a percentage; below 1.5% a
// creator earns nothing for this component.
var engagementBands = []band{
	{Threshold: 8, Fraction: 1.0},
	{Threshold: 5, Fraction: 0.8},
	{Threshold: 3, Fraction: 0.6},
	{Threshold: 1.5, Fraction: 0.4, Inclusive: true},
}

// followerBands track the audience-size tiers used across the platform.
var followerBands = []band{
	{Threshold: 1_000_000, Fraction: 1.0, Inclusive: true},
	{Threshold: 500_000, Fraction: 0.9, Inclusive: true},
	{Threshold: 100_000, Fraction: 0.8, Inclusive: true},
	{Threshold: 50_000, Fraction: 0.7, Inclusive: true},
	{Threshold: 10_000, Fraction: 0.55, Inclusive: true},
	{Threshold: 1_000, Fraction: 0.4, Inclusive: true},
}

// experienceBands: even an untested creator keeps a small floor.
var experienceBands = []band{
	{Threshold: 50, Fraction: 1.0, Inclusive: true},
	{Threshold: 20, Fraction: 0.8, Inclusive: true},
	{Threshold: 10, Fraction: 0.6, Inclusive: true},
	{Threshold: 5, Fraction: 0.4, Inclusive: true},
	{Threshold: 0, Fraction: 0.2, Inclusive: true},
}

// ScoredRecommendation is an enriched result with its rubric score.
type ScoredRecommendation struct {
	Result     result.Enriched
	TotalScore float64
	Breakdown  map[string]float64
}

// Score applies the fixed weighted rubric to one enriched result.
// Pure function, no I/O.
func Score(r result.Enriched) ScoredRecommendation {
	c := r.Creator()

	breakdown := map[string]float64{
		ComponentSimilarity:   clamp01(r.CombinedScore()) * WeightSimilarity,
		ComponentEngagement:   bandFraction(engagementBands, c.EngagementRate()) * WeightEngagement,
		ComponentFollowers:    bandFraction(followerBands, float64(c.Followers())) * WeightFollowers,
		ComponentSatisfaction: clamp01(c.Satisfaction()/5) * WeightSatisfaction,
		ComponentExperience:   bandFraction(experienceBands, float64(c.Collaborations())) * WeightExperience,
	}

	total := 0.0
	for _, v := range breakdown {
		total += v
	}
	if total > 100 {
		total = 100
	}
	if total < 0 {
		total = 0
	}

	return ScoredRecommendation{Result: r, TotalScore: total, Breakdown: breakdown}
}

// Rank scores every enriched result and orders them by total score
// descending. Ties keep their input order.
func Rank(results []result.Enriched) []ScoredRecommendation {
	scored := make([]ScoredRecommendation, 0, len(results))
	for _, r := range results {
		scored = append(scored, Score(r))
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].TotalScore > scored[j].TotalScore
	})
	return scored
}

func bandFraction(bands []band, value float64) float64 {
	for _, b := range bands {
		if value > b.Threshold || (b.Inclusive && value == b.Threshold) {
			return b.Fraction
		}
	}
	return 0
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

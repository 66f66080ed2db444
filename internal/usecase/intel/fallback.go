package intel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
	"github.com/brandpulse/creatorsearch/internal/domain/search/intent"
	"github.com/brandpulse/creatorsearch/internal/domain/search/query"
	"github.com/brandpulse/creatorsearch/internal/domain/taxonomy"
)

// fallbackConfidence marks an analysis produced by the keyword
// heuristic rather than the analysis provider.
const fallbackConfidence = 0.5

// dollarAmount matches budget mentions like "$500", "$1,500" or "$2k".
var dollarAmount = regexp.MustCompile(`\$\s*([0-9][0-9,]*(?:\.[0-9]+)?)\s*([kK])?`)

// analyzeFallback derives filters from the query text alone by
// substring matching against the taxonomy. It has no failure mode.
func analyzeFallback(rawQuery string) query.Analysis {
	lower := strings.ToLower(rawQuery)
	filters := filter.NewSet()

	if niche, ok := taxonomy.MatchNiche(lower); ok {
		filters.SetEquals(filter.AttrNiche, string(niche))
	}
	if platform, ok := taxonomy.MatchPlatform(lower); ok {
		filters.SetEquals(filter.AttrPlatform, string(platform))
	}
	if tier, ok := taxonomy.MatchTier(lower); ok {
		filters.SetEquals(filter.AttrTier, string(tier))
		if minF, maxF, rangeOK := taxonomy.FollowerRange(tier); rangeOK {
			if minF > 0 {
				filters.SetMin(filter.AttrFollowers, float64(minF))
			}
			if maxF > 0 {
				filters.SetMax(filter.AttrFollowers, float64(maxF))
			}
		}
	}

	if budget, ok := parseBudget(lower); ok {
		filters.SetMax(filter.AttrPrice, budget)
	}

	return query.NewAnalysis(intent.General, filters, rawQuery, fallbackConfidence, nil)
}

// parseBudget extracts the first dollar amount mentioned in the text.
func parseBudget(text string) (float64, bool) {
	m := dollarAmount.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(m[1], ",", "")
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	if m[2] != "" {
		amount *= 1000
	}
	return amount, true
}

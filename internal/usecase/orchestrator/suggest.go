package orchestrator

import (
	"fmt"
	"strings"

	"github.com/brandpulse/creatorsearch/internal/domain/taxonomy"
)

// DefaultMaxSuggestions caps the suggestion list when the caller does
// not specify a bound.
const DefaultMaxSuggestions = 5

// Suggest returns query completions for a partial search phrase,
// generated from the taxonomy. Purely lexical, no backend calls.
func (s *Service) Suggest(partial string, maxSuggestions int) []string {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultMaxSuggestions
	}
	partial = strings.ToLower(strings.TrimSpace(partial))

	suggestions := make([]string, 0, maxSuggestions)
	for _, candidate := range suggestionCandidates() {
		if partial != "" && !strings.Contains(candidate, partial) {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func suggestionCandidates() []string {
	var out []string
	for _, n := range taxonomy.Niches() {
		words := strings.ReplaceAll(string(n), "_", " ")
		out = append(out, fmt.Sprintf("%s creators", words))
		for _, p := range taxonomy.Platforms() {
			out = append(out, fmt.Sprintf("%s creators on %s", words, p))
		}
	}
	for _, t := range taxonomy.Tiers() {
		out = append(out, fmt.Sprintf("%s influencers", t))
		out = append(out, fmt.Sprintf("%s influencers with high engagement", t))
	}
	return out
}

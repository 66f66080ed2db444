// Package intent classifies what a search query is actually asking for.
package intent

// Intent is the detected purpose of a search query.
type Intent string

// Detected search intents.
const (
	// General is a plain descriptive search, served by hybrid fusion.
	General Intent = "general"
	// SimilarTo asks for creators resembling a named reference creator.
	SimilarTo Intent = "similar_to"
	// AudienceMatch asks for creators whose audience fits a description.
	AudienceMatch Intent = "audience_match"
	// ContentMatch asks for creators with a particular content style.
	ContentMatch Intent = "content_match"
	// BrandMatch asks for creators with relevant brand-collaboration history.
	BrandMatch Intent = "brand_match"
)

// IsValid checks whether the intent is one of the supported values.
func (i Intent) IsValid() bool {
	switch i {
	case General, SimilarTo, AudienceMatch, ContentMatch, BrandMatch:
		return true
	}
	return false
}

// Parse maps a raw string to an Intent, defaulting to General.
func Parse(s string) Intent {
	i := Intent(s)
	if i.IsValid() {
		return i
	}
	return General
}

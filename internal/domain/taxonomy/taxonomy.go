// Package taxonomy holds the fixed vocabularies a creator profile is
// classified with. Every enum filter the search pipeline accepts is
// validated against these sets; values outside them are dropped, never
// forwarded to a backend.
package taxonomy

import "strings"

// Niche is a creator content category.
type Niche string

// Recognized niches.
const (
	NicheBeautyFashion Niche = "beauty_fashion"
	NicheTechGaming    Niche = "tech_gaming"
	NicheFoodCooking   Niche = "food_cooking"
	NicheFitnessHealth Niche = "fitness_health"
	NicheTravel        Niche = "travel_lifestyle"
	NicheEducation     Niche = "education"
	NicheEntertainment Niche = "comedy_entertainment"
	NicheMusicDance    Niche = "music_dance"
	NicheParenting     Niche = "parenting_family"
	NicheFinance       Niche = "finance_business"
)

// Tier is a follower-count band.
type Tier string

// Recognized tiers.
const (
	TierMicro Tier = "micro"
	TierMacro Tier = "macro"
	TierMega  Tier = "mega"
)

// Platform is a social network a creator publishes on.
type Platform string

// Recognized platforms.
const (
	PlatformInstagram Platform = "instagram"
	PlatformYouTube   Platform = "youtube"
	PlatformTikTok    Platform = "tiktok"
	PlatformTwitch    Platform = "twitch"
	PlatformTwitter   Platform = "twitter"
	PlatformLinkedIn  Platform = "linkedin"
)

var niches = []Niche{
	NicheBeautyFashion, NicheTechGaming, NicheFoodCooking,
	NicheFitnessHealth, NicheTravel, NicheEducation,
	NicheEntertainment, NicheMusicDance, NicheParenting, NicheFinance,
}

var tiers = []Tier{TierMicro, TierMacro, TierMega}

var platforms = []Platform{
	PlatformInstagram, PlatformYouTube, PlatformTikTok,
	PlatformTwitch, PlatformTwitter, PlatformLinkedIn,
}

// Niches returns all recognized niches.
func Niches() []Niche { return niches }

// Tiers returns all recognized tiers.
func Tiers() []Tier { return tiers }

// Platforms returns all recognized platforms.
func Platforms() []Platform { return platforms }

// ParseNiche validates a niche value against the taxonomy.
func ParseNiche(s string) (Niche, bool) {
	n := Niche(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range niches {
		if v == n {
			return n, true
		}
	}
	return "", false
}

// ParseTier validates a tier value against the taxonomy.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range tiers {
		if v == t {
			return t, true
		}
	}
	return "", false
}

// ParsePlatform validates a platform value against the taxonomy.
func ParsePlatform(s string) (Platform, bool) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range platforms {
		if v == p {
			return p, true
		}
	}
	return "", false
}

// FollowerRange maps a tier to its follower-count band.
// The upper bound is 0 for the open-ended mega tier.
func FollowerRange(t Tier) (minFollowers, maxFollowers int64, ok bool) {
	switch t {
	case TierMicro:
		return 10_000, 100_000, true
	case TierMacro:
		return 100_000, 1_000_000, true
	case TierMega:
		return 1_000_000, 0, true
	default:
		return 0, 0, false
	}
}

// nicheKeywords maps a niche to the phrases the keyword fallback matches on.
var nicheKeywords = map[Niche][]string{
	NicheBeautyFashion: {"beauty", "makeup", "fashion", "skincare", "style"},
	NicheTechGaming:    {"gaming", "gamer", "esports", "tech", "technology", "gadget", "software"},
	NicheFoodCooking:   {"food", "cooking", "recipe", "chef", "baking"},
	NicheFitnessHealth: {"fitness", "workout", "gym", "health", "yoga", "wellness"},
	NicheTravel:        {"travel", "adventure", "lifestyle", "vlog"},
	NicheEducation:     {"education", "teaching", "tutorial", "learning", "science"},
	NicheEntertainment: {"comedy", "funny", "entertainment", "prank", "sketch"},
	NicheMusicDance:    {"music", "musician", "dance", "dancer", "singer"},
	NicheParenting:     {"parenting", "family", "mom", "dad", "kids"},
	NicheFinance:       {"finance", "business", "investing", "money", "entrepreneur"},
}

// platformKeywords maps a platform to the phrases the keyword fallback matches on.
var platformKeywords = map[Platform][]string{
	PlatformInstagram: {"instagram", "insta", "ig "},
	PlatformYouTube:   {"youtube", "youtuber"},
	PlatformTikTok:    {"tiktok", "tik tok"},
	PlatformTwitch:    {"twitch", "streamer", "streaming"},
	PlatformTwitter:   {"twitter", "tweet"},
	PlatformLinkedIn:  {"linkedin"},
}

// tierKeywords maps a tier to the phrases the keyword fallback matches on.
var tierKeywords = map[Tier][]string{
	TierMicro: {"micro", "small creator", "niche creator"},
	TierMacro: {"macro", "established", "large creator"},
	TierMega:  {"mega", "celebrity", "famous", "huge"},
}

// MatchNiche finds the first niche whose keywords appear in the text.
// The text must already be lowercased.
func MatchNiche(text string) (Niche, bool) {
	for _, n := range niches {
		for _, kw := range nicheKeywords[n] {
			if strings.Contains(text, kw) {
				return n, true
			}
		}
	}
	return "", false
}

// MatchPlatform finds the first platform whose keywords appear in the text.
// The text must already be lowercased.
func MatchPlatform(text string) (Platform, bool) {
	for _, p := range platforms {
		for _, kw := range platformKeywords[p] {
			if strings.Contains(text, kw) {
				return p, true
			}
		}
	}
	return "", false
}

// MatchTier finds the first tier whose keywords appear in the text.
// The text must already be lowercased.
func MatchTier(text string) (Tier, bool) {
	for _, t := range tiers {
		for _, kw := range tierKeywords[t] {
			if strings.Contains(text, kw) {
				return t, true
			}
		}
	}
	return "", false
}

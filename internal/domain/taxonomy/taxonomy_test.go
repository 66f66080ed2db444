package taxonomy

import "testing"

func TestParseNiche(t *testing.T) {
	tests := []struct {
		in   string
		want Niche
		ok   bool
	}{
		{"tech_gaming", NicheTechGaming, true},
		{"  Fitness_Health ", NicheFitnessHealth, true},
		{"BEAUTY_FASHION", NicheBeautyFashion, true},
		{"cryptocurrency", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseNiche(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseNiche(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseTier(t *testing.T) {
	if _, ok := ParseTier("nano"); ok {
		t.Error("expected nano to be rejected")
	}
	if got, ok := ParseTier("Macro"); !ok || got != TierMacro {
		t.Errorf("ParseTier(Macro) = %q, %v", got, ok)
	}
}

func TestParsePlatform(t *testing.T) {
	if _, ok := ParsePlatform("myspace"); ok {
		t.Error("expected myspace to be rejected")
	}
	if got, ok := ParsePlatform("YouTube"); !ok || got != PlatformYouTube {
		t.Errorf("ParsePlatform(YouTube) = %q, %v", got, ok)
	}
}

func TestFollowerRange(t *testing.T) {
	tests := []struct {
		tier     Tier
		min, max int64
		ok       bool
	}{
		{TierMicro, 10_000, 100_000, true},
		{TierMacro, 100_000, 1_000_000, true},
		{TierMega, 1_000_000, 0, true},
		{Tier("nano"), 0, 0, false},
	}
	for _, tt := range tests {
		min, max, ok := FollowerRange(tt.tier)
		if min != tt.min || max != tt.max || ok != tt.ok {
			t.Errorf("FollowerRange(%q) = %d, %d, %v; want %d, %d, %v",
				tt.tier, min, max, ok, tt.min, tt.max, tt.ok)
		}
	}
}

func TestMatchNiche(t *testing.T) {
	tests := []struct {
		text string
		want Niche
		ok   bool
	}{
		{"looking for gaming channels", NicheTechGaming, true},
		{"best vegan recipe accounts", NicheFoodCooking, true},
		{"yoga and wellness influencers", NicheFitnessHealth, true},
		{"underwater basket weaving", "", false},
	}
	for _, tt := range tests {
		got, ok := MatchNiche(tt.text)
		if got != tt.want || ok != tt.ok {
			t.Errorf("MatchNiche(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.ok)
		}
	}
}

func TestMatchPlatform(t *testing.T) {
	if got, ok := MatchPlatform("popular youtubers in spain"); !ok || got != PlatformYouTube {
		t.Errorf("MatchPlatform = %q, %v", got, ok)
	}
	if got, ok := MatchPlatform("twitch streamers"); !ok || got != PlatformTwitch {
		t.Errorf("MatchPlatform = %q, %v", got, ok)
	}
	if _, ok := MatchPlatform("print magazines"); ok {
		t.Error("expected no platform match")
	}
}

func TestMatchTier(t *testing.T) {
	if got, ok := MatchTier("micro influencers for a local brand"); !ok || got != TierMicro {
		t.Errorf("MatchTier = %q, %v", got, ok)
	}
	if got, ok := MatchTier("famous celebrity endorsement"); !ok || got != TierMega {
		t.Errorf("MatchTier = %q, %v", got, ok)
	}
}

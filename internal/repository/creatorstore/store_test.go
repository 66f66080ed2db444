package creatorstore

import (
	"encoding/json"
	"testing"

	"github.com/brandpulse/creatorsearch/internal/domain/search/filter"
)

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{APIKey: "key"}); err == nil {
		t.Error("expected error without URL")
	}
	if _, err := New(Config{URL: "https://project.supabase.co"}); err == nil {
		t.Error("expected error without API key")
	}
}

func TestNew_DefaultTable(t *testing.T) {
	s, err := New(Config{URL: "https://project.supabase.co", APIKey: "key"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.table != defaultTable {
		t.Errorf("expected default table %q, got %q", defaultTable, s.table)
	}
}

func TestRowToDomain(t *testing.T) {
	payload := `{
		"id": "creator_1",
		"name": "PixelPete",
		"niche": "tech_gaming",
		"tier": "macro",
		"platform": "youtube",
		"country": "us",
		"bio": "daily strategy game reviews",
		"followers": 250000,
		"engagement_rate": 4.2,
		"price": 800,
		"satisfaction_score": 4.5,
		"collaboration_count": 12
	}`

	var r row
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		t.Fatalf("unmarshal row: %v", err)
	}

	c := r.toDomain()
	if c.ID() != "creator_1" || c.Name() != "PixelPete" {
		t.Errorf("unexpected identity: %q %q", c.ID(), c.Name())
	}
	if c.Followers() != 250_000 || c.EngagementRate() != 4.2 {
		t.Errorf("unexpected stats: %d %v", c.Followers(), c.EngagementRate())
	}
	if c.Satisfaction() != 4.5 || c.Collaborations() != 12 {
		t.Errorf("unexpected history: %v %d", c.Satisfaction(), c.Collaborations())
	}
}

func TestColumnFor(t *testing.T) {
	if got := columnFor(filter.AttrSatisfaction); got != "satisfaction_score" {
		t.Errorf("satisfaction column = %q", got)
	}
	if got := columnFor(filter.AttrFollowers); got != "followers" {
		t.Errorf("followers column = %q", got)
	}
}

func TestSanitizeTerm(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain term", "plain term"},
		{"a,b(c)d%e.f", "a b c d e f"},
		{"  padded  ", "padded"},
	}
	for _, tt := range tests {
		if got := sanitizeTerm(tt.in); got != tt.want {
			t.Errorf("sanitizeTerm(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

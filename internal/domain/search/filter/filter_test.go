package filter

import "testing"

func TestSetEquals_DropsUnrecognized(t *testing.T) {
	s := NewSet()
	s.SetEquals(Attr("shoe_size"), "42")
	s.SetEquals(AttrNiche, "tech_gaming")

	if s.Len() != 1 {
		t.Fatalf("expected 1 constraint, got %d", s.Len())
	}
	if c, ok := s.Get(AttrNiche); !ok || c.Equals() != "tech_gaming" {
		t.Errorf("unexpected niche constraint: %+v", c)
	}
}

func TestSetEquals_DropsEmptyValue(t *testing.T) {
	s := NewSet()
	s.SetEquals(AttrPlatform, "")
	if !s.IsEmpty() {
		t.Error("expected empty value to be dropped")
	}
}

func TestSetMinMax_NumericOnly(t *testing.T) {
	s := NewSet()
	s.SetMin(AttrNiche, 5)
	s.SetMin(AttrFollowers, 10_000)
	s.SetMax(AttrFollowers, 100_000)

	if s.Has(AttrNiche) {
		t.Error("expected range on non-numeric attribute to be dropped")
	}
	c, ok := s.Get(AttrFollowers)
	if !ok || !c.IsRange() {
		t.Fatalf("expected followers range, got %+v", c)
	}
	if *c.Min() != 10_000 || *c.Max() != 100_000 {
		t.Errorf("unexpected bounds: min=%v max=%v", *c.Min(), *c.Max())
	}
}

func TestSetOnNil_IsNoOp(t *testing.T) {
	var s Set
	s.SetEquals(AttrNiche, "travel_lifestyle")
	s.SetMin(AttrFollowers, 1)
	if s != nil {
		t.Error("expected nil set to stay nil")
	}
}

func TestAttrs_StableOrder(t *testing.T) {
	s := NewSet()
	s.SetEquals(AttrPlatform, "youtube")
	s.SetEquals(AttrNiche, "education")
	s.SetMin(AttrEngagement, 3)

	attrs := s.Attrs()
	want := []Attr{AttrEngagement, AttrNiche, AttrPlatform}
	if len(attrs) != len(want) {
		t.Fatalf("expected %d attrs, got %d", len(want), len(attrs))
	}
	for i, a := range want {
		if attrs[i] != a {
			t.Errorf("attrs[%d] = %q, want %q", i, attrs[i], a)
		}
	}
}

func TestClone_Independent(t *testing.T) {
	s := NewSet()
	s.SetEquals(AttrNiche, "education")

	c := s.Clone()
	c.SetEquals(AttrNiche, "travel_lifestyle")

	if got, _ := s.Get(AttrNiche); got.Equals() != "education" {
		t.Errorf("clone mutation leaked into original: %q", got.Equals())
	}
}

func TestMerge_OverwritesOnConflict(t *testing.T) {
	base := NewSet()
	base.SetEquals(AttrNiche, "education")
	base.SetEquals(AttrPlatform, "youtube")

	overrides := NewSet()
	overrides.SetEquals(AttrNiche, "finance_business")

	base.Merge(overrides)

	if got, _ := base.Get(AttrNiche); got.Equals() != "finance_business" {
		t.Errorf("expected override to win, got %q", got.Equals())
	}
	if got, _ := base.Get(AttrPlatform); got.Equals() != "youtube" {
		t.Errorf("expected untouched attr to survive, got %q", got.Equals())
	}
}

func TestConstraintKindPredicates(t *testing.T) {
	s := NewSet()
	s.SetEquals(AttrCountry, "us")
	s.SetIn(AttrPlatform, []string{"youtube", "twitch"})
	s.SetMax(AttrPrice, 2000)

	if c, _ := s.Get(AttrCountry); !c.IsEquality() || c.IsMembership() || c.IsRange() {
		t.Errorf("country: unexpected kinds %+v", c)
	}
	if c, _ := s.Get(AttrPlatform); !c.IsMembership() {
		t.Errorf("platform: expected membership %+v", c)
	}
	if c, _ := s.Get(AttrPrice); !c.IsRange() || c.Min() != nil {
		t.Errorf("price: expected max-only range %+v", c)
	}
}

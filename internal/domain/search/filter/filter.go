// Package filter models the sparse constraint set a search query carries.
// Only recognized creator attributes are representable; setters for unknown
// attributes are silent no-ops so that upstream extraction can never inject
// arbitrary predicates into a backend query.
package filter

import "sort"

// Attr is a filterable creator attribute.
type Attr string

// Recognized attributes.
const (
	AttrNiche          Attr = "niche"
	AttrTier           Attr = "tier"
	AttrPlatform       Attr = "platform"
	AttrCountry        Attr = "country"
	AttrFollowers      Attr = "followers"
	AttrEngagement     Attr = "engagement_rate"
	AttrPrice          Attr = "price"
	AttrSatisfaction   Attr = "satisfaction"
	AttrAudienceAge    Attr = "audience_age"
	AttrAudienceGender Attr = "audience_gender"
)

var recognized = map[Attr]bool{
	AttrNiche: true, AttrTier: true, AttrPlatform: true, AttrCountry: true,
	AttrFollowers: true, AttrEngagement: true, AttrPrice: true,
	AttrSatisfaction: true, AttrAudienceAge: true, AttrAudienceGender: true,
}

var numeric = map[Attr]bool{
	AttrFollowers: true, AttrEngagement: true, AttrPrice: true,
	AttrSatisfaction: true, AttrAudienceAge: true,
}

// Recognized reports whether the attribute is part of the filter vocabulary.
func (a Attr) Recognized() bool { return recognized[a] }

// IsNumeric reports whether the attribute takes range constraints.
func (a Attr) IsNumeric() bool { return numeric[a] }

// Constraint is a single named constraint: equality, set membership, or
// a numeric range. Min and max may be set independently; the index layer
// collapses a paired min/max into one range predicate.
type Constraint struct {
	equals string
	in     []string
	min    *float64
	max    *float64
}

// Equals returns the equality value, empty if unset.
func (c Constraint) Equals() string { return c.equals }

// In returns the set-membership values, nil if unset.
func (c Constraint) In() []string { return c.in }

// Min returns the lower range bound, nil if unset.
func (c Constraint) Min() *float64 { return c.min }

// Max returns the upper range bound, nil if unset.
func (c Constraint) Max() *float64 { return c.max }

// IsEquality reports whether the constraint is an exact match.
func (c Constraint) IsEquality() bool { return c.equals != "" }

// IsMembership reports whether the constraint is a set membership.
func (c Constraint) IsMembership() bool { return len(c.in) > 0 }

// IsRange reports whether the constraint has at least one numeric bound.
func (c Constraint) IsRange() bool { return c.min != nil || c.max != nil }

// Set is a sparse map of constraints keyed by attribute.
type Set map[Attr]Constraint

// NewSet creates an empty constraint set.
func NewSet() Set { return make(Set) }

// SetEquals records an equality constraint. Unrecognized attributes and
// empty values are dropped.
func (s Set) SetEquals(a Attr, value string) {
	if s == nil || !a.Recognized() || value == "" {
		return
	}
	c := s[a]
	c.equals = value
	s[a] = c
}

// SetIn records a set-membership constraint. Unrecognized attributes and
// empty value lists are dropped.
func (s Set) SetIn(a Attr, values []string) {
	if s == nil || !a.Recognized() || len(values) == 0 {
		return
	}
	c := s[a]
	c.in = values
	s[a] = c
}

// SetMin records a lower range bound. Non-numeric attributes are dropped.
func (s Set) SetMin(a Attr, v float64) {
	if s == nil || !a.IsNumeric() {
		return
	}
	c := s[a]
	c.min = &v
	s[a] = c
}

// SetMax records an upper range bound. Non-numeric attributes are dropped.
func (s Set) SetMax(a Attr, v float64) {
	if s == nil || !a.IsNumeric() {
		return
	}
	c := s[a]
	c.max = &v
	s[a] = c
}

// Get returns the constraint for an attribute.
func (s Set) Get(a Attr) (Constraint, bool) {
	c, ok := s[a]
	return c, ok
}

// Has reports whether the attribute is constrained.
func (s Set) Has(a Attr) bool {
	_, ok := s[a]
	return ok
}

// Delete removes the constraint for an attribute.
func (s Set) Delete(a Attr) { delete(s, a) }

// IsEmpty reports whether the set has no constraints.
func (s Set) IsEmpty() bool { return len(s) == 0 }

// Len returns the number of constrained attributes.
func (s Set) Len() int { return len(s) }

// Attrs returns the constrained attributes in stable order.
func (s Set) Attrs() []Attr {
	attrs := make([]Attr, 0, len(s))
	for a := range s {
		attrs = append(attrs, a)
	}
	sort.Slice(attrs, func(i, j int) bool { return attrs[i] < attrs[j] })
	return attrs
}

// Clone returns an independent copy of the set.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for a, c := range s {
		out[a] = c
	}
	return out
}

// Merge copies constraints from other into s, overwriting on conflict.
func (s Set) Merge(other Set) {
	if s == nil {
		return
	}
	for a, c := range other {
		s[a] = c
	}
}

// Package creator holds the full creator record as stored relationally.
package creator

import (
	"fmt"
	"strings"
)

// Creator is a fully resolved creator profile.
type Creator struct {
	id             string
	name           string
	niche          string
	tier           string
	platform       string
	country        string
	bio            string
	followers      int64
	engagementRate float64
	price          float64
	satisfaction   float64
	collaborations int
}

// Reconstruct rebuilds a creator from stored row values without validation.
func Reconstruct(
	id, name, niche, tier, platform, country, bio string,
	followers int64, engagementRate, price, satisfaction float64,
	collaborations int,
) Creator {
	return Creator{
		id: id, name: name, niche: niche, tier: tier,
		platform: platform, country: country, bio: bio,
		followers: followers, engagementRate: engagementRate,
		price: price, satisfaction: satisfaction,
		collaborations: collaborations,
	}
}

// ID returns the opaque creator identifier.
func (c *Creator) ID() string { return c.id }

// Name returns the display name.
func (c *Creator) Name() string { return c.name }

// Niche returns the content category.
func (c *Creator) Niche() string { return c.niche }

// Tier returns the follower-count band.
func (c *Creator) Tier() string { return c.tier }

// Platform returns the primary platform.
func (c *Creator) Platform() string { return c.platform }

// Country returns the home country.
func (c *Creator) Country() string { return c.country }

// Bio returns the profile description.
func (c *Creator) Bio() string { return c.bio }

// Followers returns the follower count.
func (c *Creator) Followers() int64 { return c.followers }

// EngagementRate returns the engagement rate in percent.
func (c *Creator) EngagementRate() float64 { return c.engagementRate }

// Price returns the asking price per collaboration.
func (c *Creator) Price() float64 { return c.price }

// Satisfaction returns the average client satisfaction score (0-5).
func (c *Creator) Satisfaction() float64 { return c.satisfaction }

// Collaborations returns the number of completed collaborations.
func (c *Creator) Collaborations() int { return c.collaborations }

// ProfileText renders the profile as the descriptive sentence that is
// embedded for the vector index.
func (c *Creator) ProfileText() string {
	parts := []string{c.name}
	if c.niche != "" {
		parts = append(parts, strings.ReplaceAll(c.niche, "_", " ")+" creator")
	}
	if c.platform != "" {
		parts = append(parts, "on "+c.platform)
	}
	if c.followers > 0 {
		parts = append(parts, fmt.Sprintf("with %d followers", c.followers))
	}
	if c.bio != "" {
		parts = append(parts, c.bio)
	}
	return strings.Join(parts, ", ")
}

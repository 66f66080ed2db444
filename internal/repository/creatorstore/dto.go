package creatorstore

import "github.com/brandpulse/creatorsearch/internal/domain/creator"

// row mirrors the creators table shape returned by postgrest.
type row struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Niche          string  `json:"niche"`
	Tier           string  `json:"tier"`
	Platform       string  `json:"platform"`
	Country        string  `json:"country"`
	Bio            string  `json:"bio"`
	Followers      int64   `json:"followers"`
	EngagementRate float64 `json:"engagement_rate"`
	Price          float64 `json:"price"`
	Satisfaction   float64 `json:"satisfaction_score"`
	Collaborations int     `json:"collaboration_count"`
}

func (r *row) toDomain() creator.Creator {
	return creator.Reconstruct(
		r.ID, r.Name, r.Niche, r.Tier, r.Platform, r.Country, r.Bio,
		r.Followers, r.EngagementRate, r.Price, r.Satisfaction,
		r.Collaborations,
	)
}

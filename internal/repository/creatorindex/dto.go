package creatorindex

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/brandpulse/creatorsearch/internal/db"
	"github.com/brandpulse/creatorsearch/internal/domain/creator"
	"github.com/brandpulse/creatorsearch/internal/domain/search/result"
)

// Hash field names of an indexed creator document. Attribute fields carry
// the same names as filter.Attr values so filter predicates map directly.
const (
	fieldName           = "name"
	fieldNiche          = "niche"
	fieldTier           = "tier"
	fieldPlatform       = "platform"
	fieldCountry        = "country"
	fieldFollowers      = "followers"
	fieldEngagement     = "engagement_rate"
	fieldPrice          = "price"
	fieldSatisfaction   = "satisfaction"
	fieldAudienceAge    = "audience_age"
	fieldAudienceGender = "audience_gender"
	fieldProfile        = "__profile"
	fieldVector         = "vector"
)

var tagFields = []string{
	fieldNiche, fieldTier, fieldPlatform, fieldCountry, fieldAudienceGender,
}

var numFields = []string{
	fieldFollowers, fieldEngagement, fieldPrice, fieldSatisfaction, fieldAudienceAge,
}

var matchReturnFields = []string{
	fieldName, fieldNiche, fieldPlatform, "__vector_score",
}

func docFields(c *creator.Creator, vector []float32) map[string]string {
	return map[string]string{
		fieldName:         c.Name(),
		fieldNiche:        c.Niche(),
		fieldTier:         c.Tier(),
		fieldPlatform:     c.Platform(),
		fieldCountry:      c.Country(),
		fieldFollowers:    strconv.FormatInt(c.Followers(), 10),
		fieldEngagement:   strconv.FormatFloat(c.EngagementRate(), 'f', -1, 64),
		fieldPrice:        strconv.FormatFloat(c.Price(), 'f', -1, 64),
		fieldSatisfaction: strconv.FormatFloat(c.Satisfaction(), 'f', -1, 64),
		fieldProfile:      c.ProfileText(),
		fieldVector:       vectorToBytes(vector),
	}
}

func entryToMatch(entry db.SearchEntry, keyPrefix string) result.Match {
	id := entry.Key
	if len(id) > len(keyPrefix) && id[:len(keyPrefix)] == keyPrefix {
		id = id[len(keyPrefix):]
	}

	metadata := make(map[string]string, 3)
	for _, f := range []string{fieldName, fieldNiche, fieldPlatform} {
		if v, ok := entry.Fields[f]; ok && v != "" {
			metadata[f] = v
		}
	}

	return result.NewMatch(id, entry.Score, metadata)
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}

package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/lead-radar/internal/types"
)

func TestBucket_Boundaries(t *testing.T) {
	tests := []struct {
		total    int
		expected Tier
	}{
		{100, TierHot},
		{60, TierHot},
		{59, TierWarm},
		{30, TierWarm},
		{29, TierCold},
		{0, TierCold},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Bucket(tt.total).Tier, "total=%d", tt.total)
	}
}

func TestBucket_Labels(t *testing.T) {
	hot := Bucket(75)
	assert.Equal(t, "Hot", hot.Label)
	assert.Equal(t, "text-green-600", hot.ColorToken)

	warm := Bucket(45)
	assert.Equal(t, "Warm", warm.Label)
	assert.Equal(t, "bg-amber-50 border-amber-200", warm.BgToken)

	cold := Bucket(5)
	assert.Equal(t, "Cold", cold.Label)
	assert.Equal(t, "text-slate-400", cold.ColorToken)
}

func TestScorePlaces_KeepsOrderAndAttachesBucket(t *testing.T) {
	places := []types.Place{
		{ID: "bare"},
		{ID: "site", WebsiteURI: "https://a.ee", RegularOpeningHours: &types.OpeningHours{}},
	}

	scored := ScorePlaces(places)

	assert.Len(t, scored, 2)
	assert.Equal(t, "bare", scored[0].ID)
	assert.Equal(t, "site", scored[1].ID)
	for _, sp := range scored {
		assert.Equal(t, Bucket(sp.LeadScore.Total), sp.Bucket)
	}
	assert.Empty(t, ScorePlaces(nil))
}

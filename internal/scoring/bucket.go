package scoring

import "github.com/jonathan/lead-radar/internal/types"

// Tier is the coarse temperature of a lead.
type Tier string

const (
	// TierHot is a lead worth contacting first
	TierHot Tier = "hot"
	// TierWarm is a lead with some opportunity
	TierWarm Tier = "warm"
	// TierCold is a lead with little visible opportunity
	TierCold Tier = "cold"
)

// Bucket thresholds. A score equal to a threshold belongs to the higher bucket.
const (
	HotThreshold  = 60
	WarmThreshold = 30
)

// Presentation is the display mapping of a lead score.
type Presentation struct {
	Tier       Tier   `json:"tier"`
	Label      string `json:"label"`
	ColorToken string `json:"colorToken"`
	BgToken    string `json:"bgToken"`
}

// Bucket maps a total score to its display tier.
func Bucket(total int) Presentation {
	switch {
	case total >= HotThreshold:
		return Presentation{Tier: TierHot, Label: "Hot", ColorToken: "text-green-600", BgToken: "bg-green-50 border-green-200"}
	case total >= WarmThreshold:
		return Presentation{Tier: TierWarm, Label: "Warm", ColorToken: "text-amber-600", BgToken: "bg-amber-50 border-amber-200"}
	default:
		return Presentation{Tier: TierCold, Label: "Cold", ColorToken: "text-slate-400", BgToken: "bg-slate-50 border-slate-200"}
	}
}

// ScoredPlace is a search result with its lead score and bucket attached.
type ScoredPlace struct {
	types.Place
	LeadScore types.ScoreBreakdown `json:"leadScore"`
	Bucket    Presentation         `json:"bucket"`
}

// ScorePlaces scores every place, keeping input order.
func ScorePlaces(places []types.Place) []ScoredPlace {
	out := make([]ScoredPlace, 0, len(places))
	for i := range places {
		score := ScorePlace(&places[i])
		out = append(out, ScoredPlace{
			Place:     places[i],
			LeadScore: score,
			Bucket:    Bucket(score.Total),
		})
	}
	return out
}

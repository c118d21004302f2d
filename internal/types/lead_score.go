package types

// Maximum points per scoring factor. They sum to 100.
const (
	MaxWebPresence         = 25
	MaxProfileCompleteness = 25
	MaxReviewHealth        = 25
	MaxContactability      = 15
	MaxServiceFit          = 10
	MaxLeadScore           = MaxWebPresence + MaxProfileCompleteness + MaxReviewHealth + MaxContactability + MaxServiceFit
)

// ScoreBreakdown is the per-factor lead score of a business.
// Values are only produced by NewScoreBreakdown, which keeps Total equal to the sum.
type ScoreBreakdown struct {
	WebPresence         int `json:"webPresence"`
	ProfileCompleteness int `json:"profileCompleteness"`
	ReviewHealth        int `json:"reviewHealth"`
	Contactability      int `json:"contactability"`
	ServiceFit          int `json:"serviceFit"`
	Total               int `json:"total"`
}

// NewScoreBreakdown clamps each factor to [0, max] and computes the total.
func NewScoreBreakdown(webPresence, profileCompleteness, reviewHealth, contactability, serviceFit int) ScoreBreakdown {
	b := ScoreBreakdown{
		WebPresence:         clampPoints(webPresence, MaxWebPresence),
		ProfileCompleteness: clampPoints(profileCompleteness, MaxProfileCompleteness),
		ReviewHealth:        clampPoints(reviewHealth, MaxReviewHealth),
		Contactability:      clampPoints(contactability, MaxContactability),
		ServiceFit:          clampPoints(serviceFit, MaxServiceFit),
	}
	b.Total = b.WebPresence + b.ProfileCompleteness + b.ReviewHealth + b.Contactability + b.ServiceFit
	return b
}

// Sum recomputes the total from the individual factors.
func (b ScoreBreakdown) Sum() int {
	return b.WebPresence + b.ProfileCompleteness + b.ReviewHealth + b.Contactability + b.ServiceFit
}

func clampPoints(v, maxPoints int) int {
	if v < 0 {
		return 0
	}
	return min(v, maxPoints)
}

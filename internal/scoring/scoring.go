// Package scoring computes the sales-readiness score of a business.
package scoring

import (
	"slices"

	"github.com/jonathan/lead-radar/internal/types"
)

// Point values for the individual scoring rules.
const (
	websitePoints = 15

	sparsePhotoPoints   = 10 // 1-2 photos
	moderatePhotoPoints = 5  // 3-5 photos
	missingHoursPoints  = 5
	missingSummaryPts   = 5
	phoneSparsePoints   = 5
	phoneSparseMaxPhoto = 3

	fixableRatingPoints = 15 // rating in [3.0, 4.2]
	lowRatingPoints     = 5  // rating in (0, 3.0)
	fewReviewsPoints    = 10 // 1-15 reviews
	someReviewsPoints   = 5  // 16-30 reviews

	phonePoints           = 5
	likelyEmailPoints     = 10
	serviceAreaPoints     = 5
	targetTradePoints     = 5
	fixableRatingLow      = 3.0
	fixableRatingHigh     = 4.2
	fewReviewsUpperBound  = 15
	someReviewsUpperBound = 30
)

// Score computes the lead score breakdown for a normalized business record.
// It is pure: identical input always yields identical output.
func Score(rec types.BusinessRecord) types.ScoreBreakdown {
	return types.NewScoreBreakdown(
		computeWebPresenceScore(rec),
		computeProfileCompletenessScore(rec),
		computeReviewHealthScore(rec),
		computeContactabilityScore(rec),
		computeServiceFitScore(rec),
	)
}

// ScorePlace normalizes a raw place and scores it.
func ScorePlace(p *types.Place) types.ScoreBreakdown {
	return Score(p.Normalize())
}

// computeWebPresenceScore awards a flat base for having a website at all.
// PageSpeed data refines the picture elsewhere and does not feed this factor.
func computeWebPresenceScore(rec types.BusinessRecord) int {
	if rec.HasWebsite() {
		return websitePoints
	}
	return 0
}

// computeProfileCompletenessScore peaks for sparse but existing profiles.
func computeProfileCompletenessScore(rec types.BusinessRecord) int {
	score := 0

	switch {
	case rec.PhotoCount <= 0:
		// no photos: possibly a ghost listing
	case rec.PhotoCount <= 2:
		score += sparsePhotoPoints
	case rec.PhotoCount <= 5:
		score += moderatePhotoPoints
	}

	if !rec.HasOpeningHours {
		score += missingHoursPoints
	}
	if !rec.HasEditorialSummary {
		score += missingSummaryPts
	}
	if rec.HasPhoneNumber && rec.PhotoCount <= phoneSparseMaxPhoto {
		score += phoneSparsePoints
	}

	return min(score, types.MaxProfileCompleteness)
}

// computeReviewHealthScore rewards fixable ratings and thin review counts.
// A business without reviews gets nothing on this axis regardless of rating.
func computeReviewHealthScore(rec types.BusinessRecord) int {
	if rec.UserRatingCount <= 0 {
		return 0
	}

	score := 0
	switch {
	case rec.Rating >= fixableRatingLow && rec.Rating <= fixableRatingHigh:
		score += fixableRatingPoints
	case rec.Rating > 0 && rec.Rating < fixableRatingLow:
		score += lowRatingPoints
	}

	switch {
	case rec.UserRatingCount <= fewReviewsUpperBound:
		score += fewReviewsPoints
	case rec.UserRatingCount <= someReviewsUpperBound:
		score += someReviewsPoints
	}

	return min(score, types.MaxReviewHealth)
}

// computeContactabilityScore uses the website as a proxy for a reachable email.
func computeContactabilityScore(rec types.BusinessRecord) int {
	score := 0
	if rec.HasPhoneNumber {
		score += phonePoints
	}
	if rec.HasWebsite() {
		score += likelyEmailPoints
	}
	return min(score, types.MaxContactability)
}

func computeServiceFitScore(rec types.BusinessRecord) int {
	score := 0
	if rec.IsServiceAreaBusiness {
		score += serviceAreaPoints
	}
	if IsTargetType(rec.PrimaryType) || slices.ContainsFunc(rec.Types, IsTargetType) {
		score += targetTradePoints
	}
	return min(score, types.MaxServiceFit)
}

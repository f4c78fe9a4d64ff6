package recommend

import "math"

// Scoring policy constants. The composite score is a fixed, explainable
// heuristic, not a learned model: a base plus two capped linear
// contributions. Changing any of these changes the ranking contract.
const (
	// BaseScore is what every candidate starts from.
	BaseScore = 0.5
	// RatingWeight caps the rating contribution.
	RatingWeight = 0.3
	// RatingScale is the maximum rating; avg/RatingScale normalizes to [0, 1].
	RatingScale = 5.0
	// PopularityWeight caps the popularity contribution.
	PopularityWeight = 0.2
	// PopularitySaturation is the interaction count at which popularity maxes out.
	PopularitySaturation = 10.0
)

// Score combines an average rating and an interaction count into a relevance
// score in [0.5, 1.0], rounded to two decimals. Monotone in both inputs,
// saturating at rating 5 and count 10.
func Score(avgRating float64, interactionCount int) float64 {
	score := BaseScore
	score += math.Min((avgRating/RatingScale)*RatingWeight, RatingWeight)
	score += math.Min((float64(interactionCount)/PopularitySaturation)*PopularityWeight, PopularityWeight)
	return math.Round(score*100) / 100
}

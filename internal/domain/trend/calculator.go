package trend

import (
	"math"

	"github.com/matchpulse/trend-api/internal/domain/form"
)

// Statistic is one significant (category, direction, threshold) result.
// Rate is the exact fraction; Percent is the rounded display value. The two
// are kept separate so cutoff comparisons never go through rounding.
type Statistic struct {
	Category     Category `json:"category"`
	Direction    string   `json:"direction"`
	Threshold    float64  `json:"threshold"`
	SuccessCount int      `json:"success_count"`
	SampleSize   int      `json:"sample_size"`
	Rate         float64  `json:"rate"`
	Percent      int      `json:"percent"`
	Estimated    bool     `json:"estimated"`
}

// Compute scans every rung of the ladder over the sample and returns the
// statistics whose exact success fraction meets the cutoff. An empty sample
// yields an empty result. With a cutoff above 0.5 at most one direction can
// fire per (category, threshold); both firing is possible, and intended,
// only for cutoffs at or below one half.
func Compute(matches []form.TeamPerspectiveMatch, ladder Ladder, cutoff float64) []Statistic {
	if len(matches) == 0 {
		return nil
	}

	totals := make([]form.CombinedTotals, len(matches))
	for i, m := range matches {
		totals[i] = m.Totals()
	}

	sampleSize := len(totals)
	out := make([]Statistic, 0, 8)

	for _, category := range orderedCategories {
		accessor := totalOf[category]
		for _, threshold := range ladder.Thresholds(category) {
			overCount := 0
			for _, t := range totals {
				if float64(accessor(t)) > threshold {
					overCount++
				}
			}
			underCount := sampleSize - overCount

			overRate := float64(overCount) / float64(sampleSize)
			underRate := 1 - overRate

			if overRate >= cutoff {
				out = append(out, newStatistic(category, DirectionOver, threshold, overCount, sampleSize, overRate))
			}
			if underRate >= cutoff {
				out = append(out, newStatistic(category, DirectionUnder, threshold, underCount, sampleSize, underRate))
			}
		}
	}

	return out
}

// SuccessRate counts how much of the sample satisfies a single
// category/threshold/direction criterion. Used by the fixture scanner, which
// works on one user-picked criterion instead of the whole ladder. An unknown
// category or direction scores nothing; callers normalize via ParseCategory
// and ParseDirection.
func SuccessRate(matches []form.TeamPerspectiveMatch, category Category, threshold float64, direction string) (successCount, sampleSize int, rate float64) {
	accessor, ok := totalOf[category]
	if !ok || len(matches) == 0 {
		return 0, len(matches), 0
	}
	if direction != DirectionOver && direction != DirectionUnder {
		return 0, len(matches), 0
	}

	for _, m := range matches {
		value := float64(accessor(m.Totals()))
		if direction == DirectionOver && value > threshold {
			successCount++
		} else if direction == DirectionUnder && value <= threshold {
			successCount++
		}
	}

	sampleSize = len(matches)
	rate = float64(successCount) / float64(sampleSize)
	return successCount, sampleSize, rate
}

func newStatistic(category Category, direction string, threshold float64, count, sampleSize int, rate float64) Statistic {
	return Statistic{
		Category:     category,
		Direction:    direction,
		Threshold:    threshold,
		SuccessCount: count,
		SampleSize:   sampleSize,
		Rate:         rate,
		Percent:      int(math.Round(rate * 100)),
		Estimated:    category.Estimated(),
	}
}

// orderedCategories fixes the emission order so results are deterministic.
var orderedCategories = []Category{
	CategoryGoals,
	CategoryShots,
	CategoryShotsOnGoal,
	CategoryCorners,
	CategoryCards,
	CategoryFouls,
	CategoryGoalsHt,
	CategoryShotsHt,
	CategoryShotsOnGoalHt,
	CategoryCornersHt,
	CategoryCardsHt,
	CategoryFoulsHt,
}

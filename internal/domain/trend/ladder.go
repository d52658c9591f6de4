package trend

// Ladder maps each category to the ordered half-integer thresholds the
// calculator scans. Thresholds always end in .5 so a match total can never
// equal one; over and under partition every sample exactly.
type Ladder map[Category][]float64

// DefaultCutoff is the significance cutoff: a trend is only reported when at
// least this fraction of the sample satisfies it.
const DefaultCutoff = 0.80

// DefaultLadder returns the stock threshold ladder.
func DefaultLadder() Ladder {
	return Ladder{
		CategoryGoals:       {0.5, 1.5, 2.5, 3.5, 4.5, 5.5},
		CategoryShots:       steps(18.5, 31.5),
		CategoryFouls:       steps(18.5, 31.5),
		CategoryShotsOnGoal: steps(5.5, 13.5),
		CategoryCorners:     append([]float64{0.5}, steps(5.5, 13.5)...),
		CategoryCards:       append([]float64{0.5}, steps(1.5, 6.5)...),

		CategoryGoalsHt:       {0.5, 1.5, 2.5, 3.5},
		CategoryCornersHt:     append([]float64{0.5}, steps(2.5, 6.5)...),
		CategoryFoulsHt:       steps(8.5, 14.5),
		CategoryCardsHt:       {0.5, 1.5, 2.5},
		CategoryShotsHt:       steps(8.5, 14.5),
		CategoryShotsOnGoalHt: steps(2.5, 6.5),
	}
}

func steps(from, to float64) []float64 {
	out := make([]float64, 0, int(to-from)+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}

// Thresholds returns the ladder rungs for one category.
func (l Ladder) Thresholds(c Category) []float64 {
	return l[c]
}

// Contains reports whether threshold is a rung of the category's ladder.
func (l Ladder) Contains(c Category, threshold float64) bool {
	for _, v := range l[c] {
		if v == threshold {
			return true
		}
	}
	return false
}

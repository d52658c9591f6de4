// Package trend computes over/under threshold trends across a sample of
// matches.
package trend

import (
	"strings"

	"github.com/matchpulse/trend-api/internal/domain/form"
)

// Category is a statistic the trend engine can scan. Half-time variants of
// everything except goals are estimates derived from full-time totals.
type Category string

const (
	CategoryGoals       Category = "goals"
	CategoryShots       Category = "shots"
	CategoryShotsOnGoal Category = "shotsOnGoal"
	CategoryCorners     Category = "corners"
	CategoryCards       Category = "cards"
	CategoryFouls       Category = "fouls"

	CategoryGoalsHt       Category = "goalsHt"
	CategoryShotsHt       Category = "shotsHt"
	CategoryShotsOnGoalHt Category = "shotsOnGoalHt"
	CategoryCornersHt     Category = "cornersHt"
	CategoryCardsHt       Category = "cardsHt"
	CategoryFoulsHt       Category = "foulsHt"
)

const (
	DirectionOver  = "over"
	DirectionUnder = "under"
)

// totalOf maps each category to its combined-total accessor. Resolved here
// once instead of building lookup keys from strings at runtime.
var totalOf = map[Category]func(form.CombinedTotals) int{
	CategoryGoals:       func(t form.CombinedTotals) int { return t.Goals },
	CategoryShots:       func(t form.CombinedTotals) int { return t.Shots },
	CategoryShotsOnGoal: func(t form.CombinedTotals) int { return t.ShotsOnGoal },
	CategoryCorners:     func(t form.CombinedTotals) int { return t.Corners },
	CategoryCards:       func(t form.CombinedTotals) int { return t.Cards },
	CategoryFouls:       func(t form.CombinedTotals) int { return t.Fouls },

	CategoryGoalsHt:       func(t form.CombinedTotals) int { return t.GoalsHt },
	CategoryShotsHt:       func(t form.CombinedTotals) int { return t.ShotsHt },
	CategoryShotsOnGoalHt: func(t form.CombinedTotals) int { return t.ShotsOnGoalHt },
	CategoryCornersHt:     func(t form.CombinedTotals) int { return t.CornersHt },
	CategoryCardsHt:       func(t form.CombinedTotals) int { return t.CardsHt },
	CategoryFoulsHt:       func(t form.CombinedTotals) int { return t.FoulsHt },
}

// Valid reports whether c names a known category.
func (c Category) Valid() bool {
	_, ok := totalOf[c]
	return ok
}

// Estimated reports whether the category's totals are estimated rather than
// measured. Half-time goals are the one half-time figure sources actually
// record.
func (c Category) Estimated() bool {
	return strings.HasSuffix(string(c), "Ht") && c != CategoryGoalsHt
}

// ParseCategory resolves a user-supplied category name, tolerating case
// variants and a "_ht" suffix spelling.
func ParseCategory(raw string) (Category, bool) {
	trimmed := strings.TrimSpace(raw)
	if Category(trimmed).Valid() {
		return Category(trimmed), true
	}

	folded := strings.ToLower(strings.ReplaceAll(trimmed, "_", ""))
	for c := range totalOf {
		if strings.ToLower(string(c)) == folded {
			return c, true
		}
	}
	return "", false
}

// ParseDirection resolves "over"/"under" case-insensitively.
func ParseDirection(raw string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case DirectionOver:
		return DirectionOver, true
	case DirectionUnder:
		return DirectionUnder, true
	default:
		return "", false
	}
}

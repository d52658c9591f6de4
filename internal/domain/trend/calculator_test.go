package trend

import (
	"testing"

	"github.com/matchpulse/trend-api/internal/domain/form"
	"github.com/matchpulse/trend-api/internal/domain/match"
)

// goalsSample builds a form sample where match i produced totals[i] combined
// goals, split between team and opponent.
func goalsSample(totals ...int) []form.TeamPerspectiveMatch {
	out := make([]form.TeamPerspectiveMatch, 0, len(totals))
	for _, total := range totals {
		team := total / 2
		source := match.CanonicalMatch{
			HomeTeam: "Team",
			AwayTeam: "Opponent",
			Status:   match.StatusFinished,
			Stats: match.StatBlock{
				FullTimeGoals: match.SideStat{Home: team, Away: total - team},
			},
		}
		out = append(out, form.FromMatch(source, "Team"))
	}
	return out
}

func findStatistic(t *testing.T, stats []Statistic, category Category, direction string, threshold float64) Statistic {
	t.Helper()
	for _, s := range stats {
		if s.Category == category && s.Direction == direction && s.Threshold == threshold {
			return s
		}
	}
	t.Fatalf("no statistic for %s %s %.1f in %+v", category, direction, threshold, stats)
	return Statistic{}
}

func TestCompute_EmptySampleYieldsNothing(t *testing.T) {
	t.Parallel()

	if got := Compute(nil, DefaultLadder(), DefaultCutoff); len(got) != 0 {
		t.Fatalf("expected no statistics, got %d", len(got))
	}
}

func TestCompute_UnderTrend(t *testing.T) {
	t.Parallel()

	// Nine of ten matches stay under 2.5 combined goals.
	sample := goalsSample(1, 2, 0, 2, 1, 2, 1, 0, 2, 4)
	stats := Compute(sample, DefaultLadder(), DefaultCutoff)

	got := findStatistic(t, stats, CategoryGoals, DirectionUnder, 2.5)
	if got.SuccessCount != 9 || got.SampleSize != 10 {
		t.Fatalf("unexpected counts: %+v", got)
	}
	if got.Rate != 0.9 || got.Percent != 90 {
		t.Fatalf("unexpected rate: %+v", got)
	}
	if got.Estimated {
		t.Fatalf("full-time goals must not be flagged estimated")
	}
}

func TestCompute_OverAndUnderPartitionSample(t *testing.T) {
	t.Parallel()

	sample := goalsSample(0, 1, 2, 3, 4, 5)
	stats := Compute(sample, DefaultLadder(), 0)

	for _, threshold := range DefaultLadder().Thresholds(CategoryGoals) {
		over := findStatistic(t, stats, CategoryGoals, DirectionOver, threshold)
		under := findStatistic(t, stats, CategoryGoals, DirectionUnder, threshold)
		if over.SuccessCount+under.SuccessCount != len(sample) {
			t.Fatalf("over and under must partition the sample at %.1f: %+v %+v", threshold, over, under)
		}
	}
}

func TestCompute_CutoffAboveHalfEmitsOneDirectionPerRung(t *testing.T) {
	t.Parallel()

	sample := goalsSample(0, 1, 2, 3, 4, 5, 1, 1, 2, 3)
	stats := Compute(sample, DefaultLadder(), 0.6)

	for _, s := range stats {
		opposite := DirectionUnder
		if s.Direction == DirectionUnder {
			opposite = DirectionOver
		}
		for _, other := range stats {
			if other.Category == s.Category && other.Threshold == s.Threshold && other.Direction == opposite {
				t.Fatalf("both directions fired at %.1f with cutoff above one half", s.Threshold)
			}
		}
	}
}

func TestSuccessRate_Directions(t *testing.T) {
	t.Parallel()

	sample := goalsSample(1, 2, 3, 4)

	count, size, rate := SuccessRate(sample, CategoryGoals, 2.5, DirectionOver)
	if count != 2 || size != 4 || rate != 0.5 {
		t.Fatalf("unexpected over result: %d/%d rate %.2f", count, size, rate)
	}

	count, size, rate = SuccessRate(sample, CategoryGoals, 2.5, DirectionUnder)
	if count != 2 || size != 4 || rate != 0.5 {
		t.Fatalf("unexpected under result: %d/%d rate %.2f", count, size, rate)
	}
}

func TestSuccessRate_UnknownCategory(t *testing.T) {
	t.Parallel()

	count, size, rate := SuccessRate(goalsSample(1, 2), Category("bogus"), 2.5, DirectionOver)
	if count != 0 || size != 2 || rate != 0 {
		t.Fatalf("unknown category should score nothing: %d/%d %.2f", count, size, rate)
	}
}

func TestSuccessRate_UnknownDirection(t *testing.T) {
	t.Parallel()

	// Only the canonical spellings count; case variants are for ParseDirection.
	count, size, rate := SuccessRate(goalsSample(3, 4), CategoryGoals, 2.5, "Over")
	if count != 0 || size != 2 || rate != 0 {
		t.Fatalf("non-canonical direction should score nothing: %d/%d %.2f", count, size, rate)
	}
}

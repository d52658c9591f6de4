package memory

import (
	"testing"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/match"
)

func finished(day time.Time, home, away string, homeGoals, awayGoals int) match.CanonicalMatch {
	return match.CanonicalMatch{
		Date:     day,
		HomeTeam: home,
		AwayTeam: away,
		Status:   match.StatusFinished,
		Stats: match.StatBlock{
			FullTimeGoals: match.SideStat{Home: homeGoals, Away: awayGoals},
		},
	}
}

func scheduled(day time.Time, home, away string) match.CanonicalMatch {
	return match.CanonicalMatch{
		Date:     day,
		HomeTeam: home,
		AwayTeam: away,
		Status:   match.StatusScheduled,
	}
}

func TestMatchStore_LoadDedupesFirstWins(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

	report, err := store.Load(t.Context(), []match.CanonicalMatch{
		finished(day, "FC Porto", "Benfica", 2, 0),
		// Same fixture from a second source, different spelling and kickoff.
		finished(day.Add(time.Hour), "Porto", "benfica", 9, 9),
		finished(day, "Braga", "Vitoria", 1, 1),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if report.Inserted != 2 || report.Duplicates != 1 {
		t.Fatalf("unexpected report: %+v", report)
	}

	history, err := store.MatchesInvolving(t.Context(), "Porto", nil)
	if err != nil {
		t.Fatalf("MatchesInvolving: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 match, got %d", len(history))
	}
	if history[0].Stats.FullTimeGoals.Home != 2 {
		t.Fatalf("first-seen record must win the dedupe: %+v", history[0])
	}
}

func TestMatchStore_LoadReplacesDataset(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

	if _, err := store.Load(t.Context(), []match.CanonicalMatch{finished(day, "A", "B", 1, 0)}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := store.Load(t.Context(), []match.CanonicalMatch{finished(day, "C", "D", 1, 0)}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if history, _ := store.MatchesInvolving(t.Context(), "A", nil); len(history) != 0 {
		t.Fatalf("old dataset should be gone after reload")
	}
	if history, _ := store.MatchesInvolving(t.Context(), "C", nil); len(history) != 1 {
		t.Fatalf("new dataset should be queryable")
	}
}

func TestMatchStore_MatchesInvolvingAscendingAndFoldMatched(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	base := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	_, err := store.Load(t.Context(), []match.CanonicalMatch{
		finished(base.AddDate(0, 0, 14), "Atlético Madrid", "Sevilla", 1, 0),
		finished(base, "Valencia", "Atletico Madrid", 0, 0),
		finished(base.AddDate(0, 0, 7), "Atletico Madrid", "Getafe", 3, 1),
		scheduled(base.AddDate(0, 0, 21), "Atletico Madrid", "Betis"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	history, err := store.MatchesInvolving(t.Context(), "ATLETICO madrid", nil)
	if err != nil {
		t.Fatalf("MatchesInvolving: %v", err)
	}
	if len(history) != 3 {
		t.Fatalf("expected 3 finished matches, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i].Date.Before(history[i-1].Date) {
			t.Fatalf("history must be ascending by date")
		}
	}
}

func TestMatchStore_MatchesInvolvingBeforeIsExclusive(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	base := time.Date(2025, 1, 10, 20, 0, 0, 0, time.UTC)

	_, err := store.Load(t.Context(), []match.CanonicalMatch{
		finished(base, "A", "B", 1, 0),
		finished(base.AddDate(0, 0, 7), "A", "C", 1, 0),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	cutoff := base.AddDate(0, 0, 7)
	history, err := store.MatchesInvolving(t.Context(), "A", &cutoff)
	if err != nil {
		t.Fatalf("MatchesInvolving: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("a match at the cutoff instant must be excluded, got %d matches", len(history))
	}
}

func TestMatchStore_FixturesOnSameDayScheduledOnly(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	day := time.Date(2025, 4, 5, 0, 0, 0, 0, time.UTC)

	_, err := store.Load(t.Context(), []match.CanonicalMatch{
		scheduled(day.Add(12*time.Hour), "A", "B"),
		scheduled(day.Add(20*time.Hour), "C", "D"),
		scheduled(day.AddDate(0, 0, 1), "E", "F"),
		finished(day.Add(15*time.Hour), "G", "H", 1, 0),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	fixtures, err := store.FixturesOn(t.Context(), day.Add(9*time.Hour))
	if err != nil {
		t.Fatalf("FixturesOn: %v", err)
	}
	if len(fixtures) != 2 {
		t.Fatalf("expected 2 fixtures, got %d", len(fixtures))
	}
	if fixtures[0].HomeTeam != "A" || fixtures[1].HomeTeam != "C" {
		t.Fatalf("unexpected fixtures: %+v", fixtures)
	}
}

func TestMatchStore_TeamNamesSortedFirstSeenSpelling(t *testing.T) {
	t.Parallel()

	store := NewMatchStore()
	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)

	_, err := store.Load(t.Context(), []match.CanonicalMatch{
		finished(day, "Zenit", "FC Porto", 1, 0),
		finished(day.AddDate(0, 0, 1), "Porto", "Arsenal", 1, 0),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	names, err := store.TeamNames(t.Context())
	if err != nil {
		t.Fatalf("TeamNames: %v", err)
	}
	want := []string{"Arsenal", "FC Porto", "Zenit"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/trend-api/internal/platform/logging"
)

// stubFetcher serves canned results per source ID.
type stubFetcher struct {
	records map[string][]match.CanonicalMatch
	errs    map[string]error
}

func (f *stubFetcher) FetchLeague(_ context.Context, src league.Source) ([]match.CanonicalMatch, error) {
	if err, ok := f.errs[src.ID]; ok {
		return nil, err
	}
	return f.records[src.ID], nil
}

func testCatalog() []league.Source {
	return []league.Source{
		{ID: "one", Name: "League One", File: "leagues/one.json", Format: league.FormatJSON},
		{ID: "two", Name: "League Two", File: "leagues/two.json", Format: league.FormatJSON},
	}
}

func TestIngestionService_Reload(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	shared := finishedMatch(day, "Porto", "Benfica", 2, 0)

	fetcher := &stubFetcher{records: map[string][]match.CanonicalMatch{
		"one": {shared, finishedMatch(day, "Braga", "Vitoria", 1, 1)},
		// The second source repeats the Porto fixture.
		"two": {shared},
	}}
	store := memory.NewMatchStore()
	svc := NewIngestionService(fetcher, store, testCatalog(), 2, logging.NewNop())

	report, err := svc.Reload(t.Context())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}

	if report.Sources != 2 || report.Succeeded != 2 || report.Failed != 0 {
		t.Fatalf("unexpected source accounting: %+v", report)
	}
	if report.Fetched != 3 || report.Inserted != 2 || report.Duplicates != 1 {
		t.Fatalf("unexpected record accounting: %+v", report)
	}
	if !report.ReloadedData {
		t.Fatalf("expected the dataset to be swapped")
	}
	if len(report.PerSource) != 2 || report.PerSource[0].SourceID != "one" || report.PerSource[1].SourceID != "two" {
		t.Fatalf("per-source rows must be sorted by source ID: %+v", report.PerSource)
	}

	history, err := store.MatchesInvolving(t.Context(), "Porto", nil)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected the loaded dataset to be queryable, got %d matches, err %v", len(history), err)
	}
}

func TestIngestionService_CrossSourceDedupeFollowsCatalogOrder(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	first := finishedMatch(day, "FC Porto", "Benfica", 2, 0)
	first.League = "Primeira Liga"
	// The mirror feed carries the same fixture under a folded spelling and
	// with a different scoreline.
	second := finishedMatch(day, "Porto", "Benfica", 3, 3)
	second.League = "Mirror Feed"

	fetcher := &stubFetcher{records: map[string][]match.CanonicalMatch{
		"one": {first},
		"two": {second},
	}}
	store := memory.NewMatchStore()
	svc := NewIngestionService(fetcher, store, testCatalog(), 2, logging.NewNop())

	report, err := svc.Reload(t.Context())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if report.Inserted != 1 || report.Duplicates != 1 {
		t.Fatalf("unexpected dedupe accounting: %+v", report)
	}

	history, err := store.MatchesInvolving(t.Context(), "Porto", nil)
	if err != nil || len(history) != 1 {
		t.Fatalf("expected one stored match, got %d, err %v", len(history), err)
	}
	got := history[0]
	if got.League != "Primeira Liga" || got.HomeTeam != "FC Porto" || got.Stats.FullTimeGoals.Home != 2 {
		t.Fatalf("the earlier catalog source must win the duplicate, got %+v", got)
	}
}

func TestIngestionService_PartialFailureStillLoads(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	fetcher := &stubFetcher{
		records: map[string][]match.CanonicalMatch{
			"one": {finishedMatch(day, "Porto", "Benfica", 2, 0)},
		},
		errs: map[string]error{"two": errors.New("feed status=500")},
	}
	svc := NewIngestionService(fetcher, memory.NewMatchStore(), testCatalog(), 2, logging.NewNop())

	report, err := svc.Reload(t.Context())
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if report.Succeeded != 1 || report.Failed != 1 {
		t.Fatalf("unexpected accounting: %+v", report)
	}
	if !report.ReloadedData || report.Inserted != 1 {
		t.Fatalf("one healthy source is enough to swap the dataset: %+v", report)
	}

	var failedRow SourceResult
	for _, row := range report.PerSource {
		if row.SourceID == "two" {
			failedRow = row
		}
	}
	if failedRow.Error == "" {
		t.Fatalf("failed source must carry its error: %+v", report.PerSource)
	}
}

func TestIngestionService_TotalFailureKeepsPreviousDataset(t *testing.T) {
	t.Parallel()

	day := time.Date(2025, 3, 1, 15, 0, 0, 0, time.UTC)
	store := seedStore(t, []match.CanonicalMatch{finishedMatch(day, "Porto", "Benfica", 2, 0)})

	fetcher := &stubFetcher{errs: map[string]error{
		"one": errors.New("feed status=503"),
		"two": errors.New("feed status=503"),
	}}
	svc := NewIngestionService(fetcher, store, testCatalog(), 2, logging.NewNop())

	report, err := svc.Reload(t.Context())
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if report.ReloadedData {
		t.Fatalf("a failed reload must not swap the dataset")
	}

	history, err := store.MatchesInvolving(t.Context(), "Porto", nil)
	if err != nil || len(history) != 1 {
		t.Fatalf("previous dataset must survive a failed reload, got %d matches, err %v", len(history), err)
	}
}

func TestIngestionService_EmptyCatalogDefaults(t *testing.T) {
	t.Parallel()

	svc := NewIngestionService(&stubFetcher{}, memory.NewMatchStore(), nil, 0, logging.NewNop())
	if len(svc.Catalog()) == 0 {
		t.Fatalf("empty catalog must fall back to the default")
	}
	if svc.workers != defaultIngestionWorkers {
		t.Fatalf("zero workers must fall back to the default, got %d", svc.workers)
	}

	// Catalog returns a copy, not the internal slice.
	catalog := svc.Catalog()
	catalog[0].ID = "mutated"
	if svc.Catalog()[0].ID == "mutated" {
		t.Fatalf("Catalog must detach from internal state")
	}
}

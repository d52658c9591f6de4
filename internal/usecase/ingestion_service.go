package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/platform/logging"
)

const defaultIngestionWorkers = 4

// LeagueFetcher downloads one catalog entry and normalizes its rows.
type LeagueFetcher interface {
	FetchLeague(ctx context.Context, src league.Source) ([]match.CanonicalMatch, error)
}

// SourceResult is the outcome of fetching one catalog entry.
type SourceResult struct {
	SourceID   string `json:"source_id"`
	League     string `json:"league"`
	Records    int    `json:"records"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

// IngestionReport summarizes one reload: per-source outcomes plus the store's
// dedupe accounting.
type IngestionReport struct {
	Sources      int            `json:"sources"`
	Succeeded    int            `json:"succeeded"`
	Failed       int            `json:"failed"`
	Fetched      int            `json:"fetched"`
	Inserted     int            `json:"inserted"`
	Duplicates   int            `json:"duplicates"`
	PerSource    []SourceResult `json:"per_source"`
	WorkerCount  int            `json:"worker_count"`
	ReloadedData bool           `json:"reloaded_data"`
}

// IngestionService fetches every catalog entry concurrently and replaces the
// match dataset with the union of what succeeded. A source failure never
// poisons the others, and a reload where nothing was fetched leaves the
// previous dataset in place.
type IngestionService struct {
	fetcher   LeagueFetcher
	matchRepo match.Repository
	catalog   []league.Source
	workers   int
	logger    *logging.Logger
}

func NewIngestionService(fetcher LeagueFetcher, matchRepo match.Repository, catalog []league.Source, workers int, logger *logging.Logger) *IngestionService {
	if len(catalog) == 0 {
		catalog = league.DefaultCatalog()
	}
	if workers < 1 {
		workers = defaultIngestionWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestionService{
		fetcher:   fetcher,
		matchRepo: matchRepo,
		catalog:   catalog,
		workers:   workers,
		logger:    logger,
	}
}

// Catalog returns the configured league sources.
func (s *IngestionService) Catalog() []league.Source {
	out := make([]league.Source, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *IngestionService) Reload(ctx context.Context) (IngestionReport, error) {
	workerCount := s.workers
	if workerCount > len(s.catalog) {
		workerCount = len(s.catalog)
	}

	report := IngestionReport{
		Sources:     len(s.catalog),
		WorkerCount: workerCount,
		PerSource:   make([]SourceResult, 0, len(s.catalog)),
	}
	if len(s.catalog) == 0 {
		return report, nil
	}

	results := make(chan SourceResult, len(s.catalog))
	// Each worker owns the slot of its catalog entry, so the merged record
	// slice follows catalog order no matter how fetches are scheduled.
	batches := make([][]match.CanonicalMatch, len(s.catalog))

	var succeeded atomic.Int32
	var failed atomic.Int32

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return IngestionReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, src := range s.catalog {
		i, src := i, src
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := SourceResult{SourceID: src.ID, League: src.Name}

			records, fetchErr := s.fetcher.FetchLeague(ctx, src)
			row.DurationMs = time.Since(start).Milliseconds()
			if fetchErr != nil {
				row.Error = fetchErr.Error()
				failed.Add(1)
				s.logger.WarnContext(ctx, "league source fetch failed",
					"source", src.ID, "league", src.Name, "error", fetchErr)
			} else {
				row.Records = len(records)
				succeeded.Add(1)
				batches[i] = records
			}

			results <- row
		}); err != nil {
			workers.Done()
			return IngestionReport{}, fmt.Errorf("submit fetch to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for row := range results {
		report.PerSource = append(report.PerSource, row)
	}
	sort.SliceStable(report.PerSource, func(i, j int) bool {
		return report.PerSource[i].SourceID < report.PerSource[j].SourceID
	})

	report.Succeeded = int(succeeded.Load())
	report.Failed = int(failed.Load())

	// Catalog order decides which copy of a cross-source duplicate wins in
	// the store's first-wins dedupe.
	var records []match.CanonicalMatch
	for _, batch := range batches {
		records = append(records, batch...)
	}
	report.Fetched = len(records)

	if len(records) == 0 {
		if report.Failed > 0 {
			return report, fmt.Errorf("%w: every league source failed", ErrDependencyUnavailable)
		}
		return report, nil
	}

	loadReport, err := s.matchRepo.Load(ctx, records)
	if err != nil {
		return report, fmt.Errorf("load matches: %w", err)
	}

	report.Inserted = loadReport.Inserted
	report.Duplicates = loadReport.Duplicates
	report.ReloadedData = true

	s.logger.InfoContext(ctx, "match dataset reloaded",
		"sources", report.Sources, "succeeded", report.Succeeded, "failed", report.Failed,
		"fetched", report.Fetched, "inserted", report.Inserted, "duplicates", report.Duplicates)

	return report, nil
}

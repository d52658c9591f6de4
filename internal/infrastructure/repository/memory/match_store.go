package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/match"
)

// MatchStore is the in-memory canonical match dataset. Load replaces the
// whole dataset atomically; queries return detached copies so callers can
// never alias store internals.
type MatchStore struct {
	mu sync.RWMutex

	matches []match.CanonicalMatch
	// displayNames maps the normalized fold of a team name to the first-seen
	// verbatim spelling.
	displayNames map[string]string
	nameOrder    []string
}

func NewMatchStore() *MatchStore {
	return &MatchStore{
		displayNames: make(map[string]string),
	}
}

// Load replaces the store contents with records. Records sharing a
// (home, away, date) key with an earlier record are dropped, not merged;
// the report carries the duplicate count so the caller can log it. The
// surviving records are stably sorted ascending by date and the team-name
// index is rebuilt.
func (s *MatchStore) Load(_ context.Context, records []match.CanonicalMatch) (match.LoadReport, error) {
	seen := make(map[string]struct{}, len(records))
	kept := make([]match.CanonicalMatch, 0, len(records))
	report := match.LoadReport{}

	for _, record := range records {
		key := record.Key()
		if _, dup := seen[key]; dup {
			report.Duplicates++
			continue
		}
		seen[key] = struct{}{}
		kept = append(kept, record)
	}
	report.Inserted = len(kept)

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Date.Before(kept[j].Date)
	})

	displayNames := make(map[string]string, len(kept)*2)
	nameOrder := make([]string, 0, len(kept)*2)
	for _, record := range kept {
		for _, name := range []string{record.HomeTeam, record.AwayTeam} {
			fold := match.NormalizeName(name)
			if _, ok := displayNames[fold]; ok {
				continue
			}
			displayNames[fold] = name
			nameOrder = append(nameOrder, name)
		}
	}

	s.mu.Lock()
	s.matches = kept
	s.displayNames = displayNames
	s.nameOrder = nameOrder
	s.mu.Unlock()

	return report, nil
}

// TeamNames returns every distinct team name, first-seen spelling,
// alphabetically sorted.
func (s *MatchStore) TeamNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	out := make([]string, len(s.nameOrder))
	copy(out, s.nameOrder)
	s.mu.RUnlock()

	sort.Strings(out)
	return out, nil
}

// MatchesInvolving returns the finished matches where the team played on
// either side, in the store's ascending date order. Matching uses the
// normalized name fold so capitalization drift between sources cannot split
// a team's history.
func (s *MatchStore) MatchesInvolving(_ context.Context, teamName string, before *time.Time) ([]match.CanonicalMatch, error) {
	fold := match.NormalizeName(teamName)
	if fold == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []match.CanonicalMatch
	for _, m := range s.matches {
		if !m.IsFinished() {
			continue
		}
		if before != nil && !m.Date.Before(*before) {
			continue
		}
		if match.NormalizeName(m.HomeTeam) != fold && match.NormalizeName(m.AwayTeam) != fold {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

// FixturesOn returns the scheduled fixtures on the given calendar day,
// ignoring time-of-day, in date order.
func (s *MatchStore) FixturesOn(_ context.Context, day time.Time) ([]match.CanonicalMatch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []match.CanonicalMatch
	for _, m := range s.matches {
		if !m.IsScheduled() {
			continue
		}
		if !match.SameDay(m.Date, day) {
			continue
		}
		out = append(out, m)
	}

	return out, nil
}

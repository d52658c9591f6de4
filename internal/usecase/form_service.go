package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/form"
	"github.com/matchpulse/trend-api/internal/domain/match"
)

// FormService extracts a team's recent finished matches in team perspective.
type FormService struct {
	matchRepo match.Repository
}

func NewFormService(matchRepo match.Repository) *FormService {
	return &FormService{matchRepo: matchRepo}
}

// LastMatches returns the team's last n finished matches before the cutoff
// (all history when before is nil), oldest first, reshaped into the team's
// perspective. An empty result is not an error: it means the team is unknown
// or has no history yet, and callers decide which by consulting TeamKnown.
func (s *FormService) LastMatches(ctx context.Context, teamName string, n int, before *time.Time) ([]form.TeamPerspectiveMatch, error) {
	teamName = strings.TrimSpace(teamName)
	if teamName == "" {
		return nil, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}
	if n <= 0 {
		return nil, fmt.Errorf("%w: last-n must be positive, got %d", ErrInvalidInput, n)
	}

	history, err := s.matchRepo.MatchesInvolving(ctx, teamName, before)
	if err != nil {
		return nil, fmt.Errorf("matches involving %s: %w", teamName, err)
	}

	if len(history) > n {
		history = history[len(history)-n:]
	}

	out := make([]form.TeamPerspectiveMatch, 0, len(history))
	for _, m := range history {
		out = append(out, form.FromMatch(m, teamName))
	}

	return out, nil
}

// TeamKnown reports whether any stored match involves the team name.
func (s *FormService) TeamKnown(ctx context.Context, teamName string) (bool, error) {
	history, err := s.matchRepo.MatchesInvolving(ctx, teamName, nil)
	if err != nil {
		return false, fmt.Errorf("matches involving %s: %w", teamName, err)
	}
	return len(history) > 0, nil
}

// SearchTeams returns team names containing the query, case-insensitively,
// sorted, capped at limit. An empty query returns every name.
func (s *FormService) SearchTeams(ctx context.Context, query string, limit int) ([]string, error) {
	names, err := s.matchRepo.TeamNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("team names: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(names))
	for _, name := range names {
		if query != "" && !strings.Contains(strings.ToLower(name), query) {
			continue
		}
		out = append(out, name)
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}

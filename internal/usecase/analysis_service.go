package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchpulse/trend-api/internal/domain/form"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/domain/trend"
)

// AnalysisResult carries both teams' recent form and the trends found in it.
// Combined is computed over the union of the two samples, so a statistic there
// says "held across the recent matches of either side".
type AnalysisResult struct {
	Team1 string `json:"team1"`
	Team2 string `json:"team2"`
	LastN int    `json:"last_n"`

	Team1Form []form.TeamPerspectiveMatch `json:"team1_form"`
	Team2Form []form.TeamPerspectiveMatch `json:"team2_form"`

	Team1Trends   []trend.Statistic `json:"team1_trends"`
	Team2Trends   []trend.Statistic `json:"team2_trends"`
	CombinedTrend []trend.Statistic `json:"combined_trends"`
}

// AnalysisService runs the head-to-head trend comparison for two teams.
type AnalysisService struct {
	formService *FormService
	ladder      trend.Ladder
	cutoff      float64
}

func NewAnalysisService(formService *FormService, ladder trend.Ladder, cutoff float64) *AnalysisService {
	if ladder == nil {
		ladder = trend.DefaultLadder()
	}
	if cutoff <= 0 || cutoff > 1 {
		cutoff = trend.DefaultCutoff
	}

	return &AnalysisService{
		formService: formService,
		ladder:      ladder,
		cutoff:      cutoff,
	}
}

func (s *AnalysisService) Analyze(ctx context.Context, team1, team2 string, lastN int) (*AnalysisResult, error) {
	team1 = strings.TrimSpace(team1)
	team2 = strings.TrimSpace(team2)
	if team1 == "" || team2 == "" {
		return nil, fmt.Errorf("%w: both team names are required", ErrInvalidInput)
	}
	if match.NormalizeName(team1) == match.NormalizeName(team2) {
		return nil, fmt.Errorf("%w: team names must differ", ErrInvalidInput)
	}
	if lastN <= 0 {
		return nil, fmt.Errorf("%w: last-n must be positive, got %d", ErrInvalidInput, lastN)
	}

	form1, err := s.formService.LastMatches(ctx, team1, lastN, nil)
	if err != nil {
		return nil, err
	}
	if len(form1) == 0 {
		return nil, fmt.Errorf("%w: no finished matches for %s", ErrNotFound, team1)
	}

	form2, err := s.formService.LastMatches(ctx, team2, lastN, nil)
	if err != nil {
		return nil, err
	}
	if len(form2) == 0 {
		return nil, fmt.Errorf("%w: no finished matches for %s", ErrNotFound, team2)
	}

	combined := make([]form.TeamPerspectiveMatch, 0, len(form1)+len(form2))
	combined = append(combined, form1...)
	combined = append(combined, form2...)

	return &AnalysisResult{
		Team1:         team1,
		Team2:         team2,
		LastN:         lastN,
		Team1Form:     form1,
		Team2Form:     form2,
		Team1Trends:   trend.Compute(form1, s.ladder, s.cutoff),
		Team2Trends:   trend.Compute(form2, s.ladder, s.cutoff),
		CombinedTrend: trend.Compute(combined, s.ladder, s.cutoff),
	}, nil
}

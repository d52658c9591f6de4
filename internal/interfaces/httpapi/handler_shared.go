package httpapi

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/form"
	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/domain/trend"
	"github.com/matchpulse/trend-api/internal/usecase"
)

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type listTeamsRequest struct {
	Query string `validate:"omitempty,max=100"`
	Limit int    `validate:"gte=0,lte=1000"`
}

type teamFormRequest struct {
	Team  string `validate:"required,max=100"`
	LastN int    `validate:"required,gt=0,lte=200"`
}

type listFixturesRequest struct {
	Date string `validate:"omitempty,datetime=2006-01-02"`
}

type analysisRequest struct {
	Team1 string `validate:"required,max=100"`
	Team2 string `validate:"required,max=100"`
	LastN int    `validate:"required,gt=0,lte=200"`
}

type opportunitiesRequest struct {
	Date           string  `validate:"required,datetime=2006-01-02"`
	LastN          int     `validate:"required,gt=0,lte=200"`
	Category       string  `validate:"required,max=40"`
	Threshold      float64 `validate:"gte=0"`
	Direction      string  `validate:"required,max=10"`
	MinSuccessRate float64 `validate:"gte=0,lte=100"`
}

type leagueDTO struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Format string `json:"format"`
	File   string `json:"file"`
}

type statPairDTO struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

type formMatchDTO struct {
	Date          string      `json:"date"`
	Opponent      string      `json:"opponent"`
	Venue         string      `json:"venue"`
	League        string      `json:"league"`
	Goals         statPairDTO `json:"goals"`
	HalfTimeGoals statPairDTO `json:"halfTimeGoals"`
	Shots         statPairDTO `json:"shots"`
	ShotsOnGoal   statPairDTO `json:"shotsOnGoal"`
	Corners       statPairDTO `json:"corners"`
	Cards         statPairDTO `json:"cards"`
	Fouls         statPairDTO `json:"fouls"`
}

type statisticDTO struct {
	Category     string  `json:"category"`
	Direction    string  `json:"direction"`
	Threshold    float64 `json:"threshold"`
	SuccessCount int     `json:"successCount"`
	SampleSize   int     `json:"sampleSize"`
	Rate         float64 `json:"rate"`
	Percent      int     `json:"percent"`
	Estimated    bool    `json:"estimated"`
}

type analysisDTO struct {
	Team1          string         `json:"team1"`
	Team2          string         `json:"team2"`
	LastN          int            `json:"lastN"`
	Team1Form      []formMatchDTO `json:"team1Form"`
	Team2Form      []formMatchDTO `json:"team2Form"`
	Team1Trends    []statisticDTO `json:"team1Trends"`
	Team2Trends    []statisticDTO `json:"team2Trends"`
	CombinedTrends []statisticDTO `json:"combinedTrends"`
}

type fixtureDTO struct {
	Date     string `json:"date"`
	League   string `json:"league"`
	HomeTeam string `json:"homeTeam"`
	AwayTeam string `json:"awayTeam"`
	Status   string `json:"status"`
}

type sideRateDTO struct {
	Team         string  `json:"team"`
	SuccessCount int     `json:"successCount"`
	SampleSize   int     `json:"sampleSize"`
	Rate         float64 `json:"rate"`
	Percent      int     `json:"percent"`
}

type opportunityDTO struct {
	Date      string      `json:"date"`
	League    string      `json:"league"`
	HomeTeam  string      `json:"homeTeam"`
	AwayTeam  string      `json:"awayTeam"`
	Category  string      `json:"category"`
	Direction string      `json:"direction"`
	Threshold float64     `json:"threshold"`
	Estimated bool        `json:"estimated"`
	Home      sideRateDTO `json:"home"`
	Away      sideRateDTO `json:"away"`
	Combined  sideRateDTO `json:"combined"`
}

type sourceResultDTO struct {
	SourceID   string `json:"sourceId"`
	League     string `json:"league"`
	Records    int    `json:"records"`
	Error      string `json:"error,omitempty"`
	DurationMs int64  `json:"durationMs"`
}

type reloadReportDTO struct {
	Sources      int               `json:"sources"`
	Succeeded    int               `json:"succeeded"`
	Failed       int               `json:"failed"`
	Fetched      int               `json:"fetched"`
	Inserted     int               `json:"inserted"`
	Duplicates   int               `json:"duplicates"`
	WorkerCount  int               `json:"workerCount"`
	ReloadedData bool              `json:"reloadedData"`
	PerSource    []sourceResultDTO `json:"perSource"`
}

func leagueToDTO(v league.Source) leagueDTO {
	return leagueDTO{
		ID:     v.ID,
		Name:   v.Name,
		Format: string(v.Format),
		File:   v.File,
	}
}

func statPairToDTO(v form.StatPair) statPairDTO {
	return statPairDTO{Team: v.Team, Opponent: v.Opponent}
}

func formMatchToDTO(ctx context.Context, v form.TeamPerspectiveMatch) formMatchDTO {
	ctx, span := startSpan(ctx, "httpapi.formMatchToDTO")
	defer span.End()

	return formMatchDTO{
		Date:          v.Date.UTC().Format(time.RFC3339),
		Opponent:      v.Opponent,
		Venue:         v.Venue,
		League:        v.League,
		Goals:         statPairToDTO(v.Goals),
		HalfTimeGoals: statPairToDTO(v.HalfTimeGoals),
		Shots:         statPairToDTO(v.Shots),
		ShotsOnGoal:   statPairToDTO(v.ShotsOnGoal),
		Corners:       statPairToDTO(v.Corners),
		Cards:         statPairToDTO(v.Cards),
		Fouls:         statPairToDTO(v.Fouls),
	}
}

func formToDTO(ctx context.Context, items []form.TeamPerspectiveMatch) []formMatchDTO {
	out := make([]formMatchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, formMatchToDTO(ctx, item))
	}
	return out
}

func statisticToDTO(v trend.Statistic) statisticDTO {
	return statisticDTO{
		Category:     string(v.Category),
		Direction:    v.Direction,
		Threshold:    v.Threshold,
		SuccessCount: v.SuccessCount,
		SampleSize:   v.SampleSize,
		Rate:         v.Rate,
		Percent:      v.Percent,
		Estimated:    v.Estimated,
	}
}

func statisticsToDTO(items []trend.Statistic) []statisticDTO {
	out := make([]statisticDTO, 0, len(items))
	for _, item := range items {
		out = append(out, statisticToDTO(item))
	}
	return out
}

func fixtureToDTO(v match.CanonicalMatch) fixtureDTO {
	return fixtureDTO{
		Date:     v.Date.UTC().Format(time.RFC3339),
		League:   v.League,
		HomeTeam: v.HomeTeam,
		AwayTeam: v.AwayTeam,
		Status:   match.NormalizeStatus(v.Status),
	}
}

func sideRateToDTO(v usecase.SideRate) sideRateDTO {
	return sideRateDTO{
		Team:         v.Team,
		SuccessCount: v.SuccessCount,
		SampleSize:   v.SampleSize,
		Rate:         v.Rate,
		Percent:      int(math.Round(v.Rate * 100)),
	}
}

func opportunityToDTO(v usecase.Opportunity) opportunityDTO {
	return opportunityDTO{
		Date:      v.Date.UTC().Format(time.RFC3339),
		League:    v.League,
		HomeTeam:  v.HomeTeam,
		AwayTeam:  v.AwayTeam,
		Category:  string(v.Category),
		Direction: v.Direction,
		Threshold: v.Threshold,
		Estimated: v.Estimated,
		Home:      sideRateToDTO(v.Home),
		Away:      sideRateToDTO(v.Away),
		Combined:  sideRateToDTO(v.Combined),
	}
}

func reloadReportToDTO(v usecase.IngestionReport) reloadReportDTO {
	perSource := make([]sourceResultDTO, 0, len(v.PerSource))
	for _, row := range v.PerSource {
		perSource = append(perSource, sourceResultDTO{
			SourceID:   row.SourceID,
			League:     row.League,
			Records:    row.Records,
			Error:      row.Error,
			DurationMs: row.DurationMs,
		})
	}

	return reloadReportDTO{
		Sources:      v.Sources,
		Succeeded:    v.Succeeded,
		Failed:       v.Failed,
		Fetched:      v.Fetched,
		Inserted:     v.Inserted,
		Duplicates:   v.Duplicates,
		WorkerCount:  v.WorkerCount,
		ReloadedData: v.ReloadedData,
		PerSource:    perSource,
	}
}

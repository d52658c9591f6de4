// Package form reshapes canonical matches into one team's point of view.
package form

import (
	"time"

	"github.com/matchpulse/trend-api/internal/domain/match"
)

const (
	VenueHome = "HOME"
	VenueAway = "AWAY"
)

// StatPair is one statistic split between the designated team and its
// opponent.
type StatPair struct {
	Team     int `json:"team"`
	Opponent int `json:"opponent"`
}

// TeamPerspectiveMatch is a CanonicalMatch seen from one team's side: home
// and away fields are renamed to team and opponent according to venue. The
// originating match is carried along (by value) so combined totals can be
// computed without going back to the store.
type TeamPerspectiveMatch struct {
	Date          time.Time `json:"date"`
	Opponent      string    `json:"opponent"`
	Venue         string    `json:"venue"`
	League        string    `json:"league"`
	Goals         StatPair  `json:"goals"`
	HalfTimeGoals StatPair  `json:"half_time_goals"`
	Shots         StatPair  `json:"shots"`
	ShotsOnGoal   StatPair  `json:"shots_on_goal"`
	Corners       StatPair  `json:"corners"`
	Cards         StatPair  `json:"cards"`
	Fouls         StatPair  `json:"fouls"`

	Source match.CanonicalMatch `json:"-"`
}

// FromMatch reshapes m into teamName's perspective. The caller guarantees
// teamName is one of the two sides; venue falls back to away when the home
// fold does not match.
func FromMatch(m match.CanonicalMatch, teamName string) TeamPerspectiveMatch {
	isHome := match.NormalizeName(m.HomeTeam) == match.NormalizeName(teamName)

	out := TeamPerspectiveMatch{
		Date:   m.Date,
		League: m.League,
		Source: m,
	}
	if isHome {
		out.Venue = VenueHome
		out.Opponent = m.AwayTeam
	} else {
		out.Venue = VenueAway
		out.Opponent = m.HomeTeam
	}

	out.Goals = pair(m.Stats.FullTimeGoals, isHome)
	out.HalfTimeGoals = pair(m.Stats.HalfTimeGoals, isHome)
	out.Shots = pair(m.Stats.Shots, isHome)
	out.ShotsOnGoal = pair(m.Stats.ShotsOnGoal, isHome)
	out.Corners = pair(m.Stats.Corners, isHome)
	out.Cards = pair(m.Stats.Cards, isHome)
	out.Fouls = pair(m.Stats.Fouls, isHome)

	return out
}

func pair(s match.SideStat, isHome bool) StatPair {
	if isHome {
		return StatPair{Team: s.Home, Opponent: s.Away}
	}
	return StatPair{Team: s.Away, Opponent: s.Home}
}

// CombinedTotals holds the both-sides sum of every statistic for one match.
// Half-time goals are measured; the other half-time figures are estimated as
// half of the full-time total and must be presented as estimates, never as
// ground truth.
type CombinedTotals struct {
	Goals       int `json:"goals"`
	Shots       int `json:"shots"`
	ShotsOnGoal int `json:"shots_on_goal"`
	Corners     int `json:"corners"`
	Cards       int `json:"cards"`
	Fouls       int `json:"fouls"`

	GoalsHt       int `json:"goals_ht"`
	ShotsHt       int `json:"shots_ht"`
	ShotsOnGoalHt int `json:"shots_on_goal_ht"`
	CornersHt     int `json:"corners_ht"`
	CardsHt       int `json:"cards_ht"`
	FoulsHt       int `json:"fouls_ht"`
}

// Totals computes the combined totals of the originating match.
func (t TeamPerspectiveMatch) Totals() CombinedTotals {
	s := t.Source.Stats
	return CombinedTotals{
		Goals:       s.FullTimeGoals.Total(),
		Shots:       s.Shots.Total(),
		ShotsOnGoal: s.ShotsOnGoal.Total(),
		Corners:     s.Corners.Total(),
		Cards:       s.Cards.Total(),
		Fouls:       s.Fouls.Total(),

		GoalsHt:       s.HalfTimeGoals.Total(),
		ShotsHt:       s.Shots.Total() / 2,
		ShotsOnGoalHt: s.ShotsOnGoal.Total() / 2,
		CornersHt:     s.Corners.Total() / 2,
		CardsHt:       s.Cards.Total() / 2,
		FoulsHt:       s.Fouls.Total() / 2,
	}
}

package source

import (
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/matchpulse/trend-api/internal/domain/match"
)

// Statistic labels as the JSON feed spells them.
const (
	statShotsTotal  = "Shots Total"
	statShotsOnGoal = "Shots On Goal"
	statCorners     = "Corners"
	statYellowCards = "Yellow Cards"
	statRedCards    = "Red Cards"
	statFouls       = "Fouls"
)

// jsonMatch mirrors one API-Football style event. Numeric fields arrive as
// strings and may be empty or junk; every one of them decodes leniently to
// zero.
type jsonMatch struct {
	Date          string          `json:"match_date"`
	Time          string          `json:"match_time"`
	Status        string          `json:"match_status"`
	HomeTeam      string          `json:"match_hometeam_name"`
	AwayTeam      string          `json:"match_awayteam_name"`
	HomeScore     string          `json:"match_hometeam_score"`
	AwayScore     string          `json:"match_awayteam_score"`
	HomeHalfScore string          `json:"match_hometeam_halftime_score"`
	AwayHalfScore string          `json:"match_awayteam_halftime_score"`
	Statistics    []jsonStatistic `json:"statistics"`
}

type jsonStatistic struct {
	Type string `json:"type"`
	Home string `json:"home"`
	Away string `json:"away"`
}

func decodeJSON(raw []byte, leagueName string) ([]match.CanonicalMatch, error) {
	var rows []jsonMatch
	if err := sonic.Unmarshal(raw, &rows); err != nil {
		return nil, crerr.Wrap(err, "decode league feed")
	}

	out := make([]match.CanonicalMatch, 0, len(rows))
	for _, row := range rows {
		date, ok := parseISODate(row.Date)
		if !ok || strings.TrimSpace(row.HomeTeam) == "" || strings.TrimSpace(row.AwayTeam) == "" {
			continue
		}

		record := match.CanonicalMatch{
			Date:     date,
			HomeTeam: strings.TrimSpace(row.HomeTeam),
			AwayTeam: strings.TrimSpace(row.AwayTeam),
			Status:   mapJSONStatus(row.Status),
			League:   leagueName,
			Stats: match.StatBlock{
				FullTimeGoals: match.SideStat{Home: lenientInt(row.HomeScore), Away: lenientInt(row.AwayScore)},
				HalfTimeGoals: match.SideStat{Home: lenientInt(row.HomeHalfScore), Away: lenientInt(row.AwayHalfScore)},
				Shots:         sideStatFor(row.Statistics, statShotsTotal),
				ShotsOnGoal:   sideStatFor(row.Statistics, statShotsOnGoal),
				Corners:       sideStatFor(row.Statistics, statCorners),
				Cards:         combinedCards(row.Statistics),
				Fouls:         sideStatFor(row.Statistics, statFouls),
			},
		}
		out = append(out, record)
	}

	return out, nil
}

// mapJSONStatus folds the feed's status vocabulary into the canonical
// taxonomy. The feed reports a bare minute ("67") while a match is in play.
func mapJSONStatus(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "", "Not Started", "Scheduled":
		return match.StatusScheduled
	case "Finished":
		return match.StatusFinished
	case "Postponed":
		return match.StatusPostponed
	case "Cancelled":
		return match.StatusCancelled
	case "Live", "Half Time":
		return match.StatusLive
	}
	if _, err := strconv.Atoi(trimmed); err == nil {
		return match.StatusLive
	}
	return match.NormalizeStatus(trimmed)
}

func sideStatFor(stats []jsonStatistic, label string) match.SideStat {
	for _, s := range stats {
		if s.Type == label {
			return match.SideStat{Home: lenientInt(s.Home), Away: lenientInt(s.Away)}
		}
	}
	return match.SideStat{}
}

// combinedCards sums yellow and red cards into the single discipline count
// the trend engine works with.
func combinedCards(stats []jsonStatistic) match.SideStat {
	yellow := sideStatFor(stats, statYellowCards)
	red := sideStatFor(stats, statRedCards)
	return match.SideStat{Home: yellow.Home + red.Home, Away: yellow.Away + red.Away}
}

func parseISODate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04", time.RFC3339} {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// lenientInt parses a feed numeric; anything unparseable is zero, never an
// error.
func lenientInt(raw string) int {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return v
}

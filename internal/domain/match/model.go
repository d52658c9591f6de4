package match

import (
	"strings"
	"time"
	"unicode"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusLive      = "LIVE"
	StatusFinished  = "FINISHED"
	StatusCancelled = "CANCELLED"
	StatusPostponed = "POSTPONED"
)

// SideStat holds one statistic split across the two sides of a match.
type SideStat struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total is the combined value of the statistic across both sides.
func (s SideStat) Total() int {
	return s.Home + s.Away
}

// StatBlock carries the measured statistics of one match. Missing source
// values are zeroes, never an error.
type StatBlock struct {
	FullTimeGoals SideStat `json:"full_time_goals"`
	HalfTimeGoals SideStat `json:"half_time_goals"`
	Shots         SideStat `json:"shots"`
	ShotsOnGoal   SideStat `json:"shots_on_goal"`
	Corners       SideStat `json:"corners"`
	Cards         SideStat `json:"cards"`
	Fouls         SideStat `json:"fouls"`
}

// CanonicalMatch is one played or scheduled fixture in the uniform shape
// every source is normalized into.
type CanonicalMatch struct {
	Date     time.Time `json:"date"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Status   string    `json:"status"`
	League   string    `json:"league"`
	Stats    StatBlock `json:"stats"`
}

// Key identifies a match for deduplication: two records with the same home
// side, away side and calendar day are the same match.
func (m CanonicalMatch) Key() string {
	return NormalizeName(m.HomeTeam) + "|" + NormalizeName(m.AwayTeam) + "|" + m.Date.Format("2006-01-02")
}

// IsFinished reports whether the match participates in historical
// aggregation.
func (m CanonicalMatch) IsFinished() bool {
	return IsFinishedStatus(m.Status)
}

// IsScheduled reports whether the match is a not-yet-played fixture and so a
// candidate for fixture scanning.
func (m CanonicalMatch) IsScheduled() bool {
	return IsScheduledStatus(m.Status)
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	switch status {
	case "", "NOT STARTED", "NS":
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "FT", "AET", "PEN":
		return true
	default:
		return false
	}
}

func IsScheduledStatus(status string) bool {
	return NormalizeStatus(status) == StatusScheduled
}

func IsLiveStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusLive, "IN_PLAY", "HT", "1H", "2H", "ET":
		return true
	default:
		return false
	}
}

// fillerTokens are club-name decorations that vary between sources for the
// same team ("FC Porto" vs "Porto").
var fillerTokens = map[string]struct{}{
	"cf": {}, "fc": {}, "real": {}, "sport": {}, "club": {},
	"sc": {}, "ac": {}, "uefa": {}, "st": {},
}

// NormalizeName folds a team name to the canonical key used for matching:
// lowercase, accents stripped, punctuation removed, filler tokens dropped.
// Sources disagree on capitalization and decorations, so all lookups go
// through this fold.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.Is(unicode.Mn, r):
			// combining mark, dropped
		default:
			if folded := foldAccent(r); folded != 0 {
				b.WriteRune(folded)
			} else {
				b.WriteByte(' ')
			}
		}
	}

	fields := strings.Fields(b.String())
	out := fields[:0]
	for _, field := range fields {
		if _, skip := fillerTokens[field]; skip {
			continue
		}
		out = append(out, field)
	}

	return strings.Join(out, " ")
}

func foldAccent(r rune) rune {
	switch r {
	case 'á', 'à', 'â', 'ä', 'ã', 'å', 'ă', 'ą':
		return 'a'
	case 'é', 'è', 'ê', 'ë', 'ě', 'ę':
		return 'e'
	case 'í', 'ì', 'î', 'ï':
		return 'i'
	case 'ó', 'ò', 'ô', 'ö', 'õ', 'ø', 'ő':
		return 'o'
	case 'ú', 'ù', 'û', 'ü', 'ů', 'ű':
		return 'u'
	case 'ç', 'ć', 'č':
		return 'c'
	case 'ñ', 'ń', 'ň':
		return 'n'
	case 'š', 'ş', 'ś':
		return 's'
	case 'ž', 'ż', 'ź':
		return 'z'
	case 'ý':
		return 'y'
	case 'ğ':
		return 'g'
	case 'ł':
		return 'l'
	case 'đ', 'ď':
		return 'd'
	case 'ť', 'ț':
		return 't'
	case 'ř':
		return 'r'
	case 'ß':
		return 's'
	}
	return 0
}

// SameDay reports calendar-day equality ignoring time-of-day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

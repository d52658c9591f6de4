package source

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/match"
)

// decodeCSV normalizes a columnar archive file. Rows are keyed by header
// name so column order and optional columns do not matter. Archive rows are
// always finished matches. Rows without a parseable date or both team names
// are dropped; a malformed file simply yields zero records.
func decodeCSV(raw []byte, leagueName string) []match.CanonicalMatch {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	// Shots-on-target columns differ between archive vintages.
	sogField := func(row []string, names ...string) string {
		for _, name := range names {
			if v := field(row, name); v != "" {
				return v
			}
		}
		return ""
	}

	var out []match.CanonicalMatch
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		date, ok := parseSlashDate(field(row, "Date"))
		home := field(row, "HomeTeam")
		away := field(row, "AwayTeam")
		if !ok || home == "" || away == "" {
			continue
		}

		out = append(out, match.CanonicalMatch{
			Date:     date,
			HomeTeam: home,
			AwayTeam: away,
			Status:   match.StatusFinished,
			League:   leagueName,
			Stats: match.StatBlock{
				FullTimeGoals: match.SideStat{Home: lenientInt(field(row, "FTHG")), Away: lenientInt(field(row, "FTAG"))},
				HalfTimeGoals: match.SideStat{Home: lenientInt(field(row, "HTHG")), Away: lenientInt(field(row, "HTAG"))},
				Shots:         match.SideStat{Home: lenientInt(field(row, "HS")), Away: lenientInt(field(row, "AS"))},
				ShotsOnGoal: match.SideStat{
					Home: lenientInt(sogField(row, "HST", "HSOG")),
					Away: lenientInt(sogField(row, "AST", "ASOG")),
				},
				Corners: match.SideStat{Home: lenientInt(field(row, "HC")), Away: lenientInt(field(row, "AC"))},
				Cards: match.SideStat{
					Home: lenientInt(field(row, "HY")) + lenientInt(field(row, "HR")),
					Away: lenientInt(field(row, "AY")) + lenientInt(field(row, "AR")),
				},
				Fouls: match.SideStat{Home: lenientInt(field(row, "HF")), Away: lenientInt(field(row, "AF"))},
			},
		})
	}

	return out
}

// parseSlashDate handles DD/MM/YY and DD/MM/YYYY. Two-digit years below 50
// land in the 2000s, the rest in the 1900s.
func parseSlashDate(raw string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day := lenientInt(parts[0])
	month := lenientInt(parts[1])
	year := lenientInt(parts[2])
	if day < 1 || day > 31 || month < 1 || month > 12 || year == 0 {
		return time.Time{}, false
	}

	if year < 50 {
		year += 2000
	} else if year < 100 {
		year += 1900
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

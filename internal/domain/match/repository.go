package match

import (
	"context"
	"time"
)

// LoadReport summarizes one Load call.
type LoadReport struct {
	Inserted   int
	Duplicates int
}

// Repository exposes read access to the canonical match dataset. Load
// replaces the whole dataset; everything else is a read-only view returning
// detached copies.
type Repository interface {
	Load(ctx context.Context, records []CanonicalMatch) (LoadReport, error)
	TeamNames(ctx context.Context) ([]string, error)
	// MatchesInvolving returns every finished match where the team played on
	// either side, strictly before the cutoff when one is set, in ascending
	// date order. Team names are matched on the normalized fold.
	MatchesInvolving(ctx context.Context, teamName string, before *time.Time) ([]CanonicalMatch, error)
	// FixturesOn returns scheduled fixtures on the given calendar day.
	FixturesOn(ctx context.Context, day time.Time) ([]CanonicalMatch, error)
}

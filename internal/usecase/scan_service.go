package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sourcegraph/conc/panics"

	"github.com/matchpulse/trend-api/internal/domain/form"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/domain/trend"
	"github.com/matchpulse/trend-api/internal/platform/logging"
)

// minScanSample is the floor on per-team sample size: below three matches a
// success rate is noise, not a trend. When the user asks for fewer than three
// matches the floor drops to what they asked for.
const minScanSample = 3

// ScanInput is one user-picked criterion to test every fixture of a day
// against.
type ScanInput struct {
	Day            time.Time
	LastN          int
	Category       trend.Category
	Threshold      float64
	Direction      string
	MinSuccessRate float64
}

// SideRate is one side's success rate on the scanned criterion.
type SideRate struct {
	Team         string  `json:"team"`
	SuccessCount int     `json:"success_count"`
	SampleSize   int     `json:"sample_size"`
	Rate         float64 `json:"rate"`
}

// Opportunity is a fixture whose combined recent form satisfies the scanned
// criterion at or above the requested rate.
type Opportunity struct {
	Date      time.Time      `json:"date"`
	League    string         `json:"league"`
	HomeTeam  string         `json:"home_team"`
	AwayTeam  string         `json:"away_team"`
	Category  trend.Category `json:"category"`
	Direction string         `json:"direction"`
	Threshold float64        `json:"threshold"`
	Estimated bool           `json:"estimated"`

	Home     SideRate `json:"home"`
	Away     SideRate `json:"away"`
	Combined SideRate `json:"combined"`
}

// ScanService walks a day's fixtures and surfaces the ones where both sides'
// recent form supports a single over/under criterion.
type ScanService struct {
	matchRepo   match.Repository
	formService *FormService
	ladder      trend.Ladder
	logger      *logging.Logger
}

func NewScanService(matchRepo match.Repository, formService *FormService, ladder trend.Ladder, logger *logging.Logger) *ScanService {
	if ladder == nil {
		ladder = trend.DefaultLadder()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ScanService{
		matchRepo:   matchRepo,
		formService: formService,
		ladder:      ladder,
		logger:      logger,
	}
}

func (s *ScanService) FindOpportunities(ctx context.Context, input ScanInput) ([]Opportunity, error) {
	if err := s.validate(&input); err != nil {
		return nil, err
	}

	fixtures, err := s.matchRepo.FixturesOn(ctx, input.Day)
	if err != nil {
		return nil, fmt.Errorf("fixtures on %s: %w", input.Day.Format("2006-01-02"), err)
	}

	minSample := minScanSample
	if input.LastN < minSample {
		minSample = input.LastN
	}

	out := make([]Opportunity, 0, len(fixtures))
	for _, fixture := range fixtures {
		var (
			opp     *Opportunity
			oppErr  error
			catcher panics.Catcher
		)
		catcher.Try(func() {
			opp, oppErr = s.evaluateFixture(ctx, fixture, input, minSample)
		})
		if recovered := catcher.Recovered(); recovered != nil {
			s.logger.ErrorContext(ctx, "fixture evaluation panicked",
				"home", fixture.HomeTeam, "away", fixture.AwayTeam, "panic", recovered.String())
			continue
		}
		// One broken fixture must not take the whole scan down.
		if oppErr != nil {
			s.logger.WarnContext(ctx, "fixture evaluation failed",
				"home", fixture.HomeTeam, "away", fixture.AwayTeam, "error", oppErr)
			continue
		}
		if opp != nil {
			out = append(out, *opp)
		}
	}

	// Strongest signal first; ties keep fixture order so reruns are stable.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Combined.Rate > out[j].Combined.Rate
	})

	return out, nil
}

// FixturesOn lists the scheduled fixtures of one calendar day.
func (s *ScanService) FixturesOn(ctx context.Context, day time.Time) ([]match.CanonicalMatch, error) {
	if day.IsZero() {
		return nil, fmt.Errorf("%w: day is required", ErrInvalidInput)
	}
	return s.matchRepo.FixturesOn(ctx, day)
}

// validate checks the criterion and normalizes Direction to its canonical
// spelling, so the rest of the scan never sees a case variant.
func (s *ScanService) validate(input *ScanInput) error {
	if input.Day.IsZero() {
		return fmt.Errorf("%w: scan day is required", ErrInvalidInput)
	}
	if input.LastN <= 0 {
		return fmt.Errorf("%w: last-n must be positive, got %d", ErrInvalidInput, input.LastN)
	}
	if !input.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if !s.ladder.Contains(input.Category, input.Threshold) {
		return fmt.Errorf("%w: threshold %g is not on the %s ladder", ErrInvalidInput, input.Threshold, input.Category)
	}
	direction, ok := trend.ParseDirection(input.Direction)
	if !ok {
		return fmt.Errorf("%w: direction must be over or under, got %q", ErrInvalidInput, input.Direction)
	}
	input.Direction = direction
	if input.MinSuccessRate < 0 || input.MinSuccessRate > 1 {
		return fmt.Errorf("%w: min success rate must be within [0, 1], got %g", ErrInvalidInput, input.MinSuccessRate)
	}
	return nil
}

// evaluateFixture returns a non-nil opportunity only when both sides have
// enough history before kickoff and the combined sample meets the rate.
func (s *ScanService) evaluateFixture(ctx context.Context, fixture match.CanonicalMatch, input ScanInput, minSample int) (*Opportunity, error) {
	before := fixture.Date

	homeForm, err := s.formService.LastMatches(ctx, fixture.HomeTeam, input.LastN, &before)
	if err != nil {
		return nil, err
	}
	awayForm, err := s.formService.LastMatches(ctx, fixture.AwayTeam, input.LastN, &before)
	if err != nil {
		return nil, err
	}

	if len(homeForm) < minSample || len(awayForm) < minSample {
		return nil, nil
	}

	combinedForm := append(append(make([]form.TeamPerspectiveMatch, 0, len(homeForm)+len(awayForm)), homeForm...), awayForm...)

	homeCount, homeSize, homeRate := trend.SuccessRate(homeForm, input.Category, input.Threshold, input.Direction)
	awayCount, awaySize, awayRate := trend.SuccessRate(awayForm, input.Category, input.Threshold, input.Direction)
	combinedCount, combinedSize, combinedRate := trend.SuccessRate(combinedForm, input.Category, input.Threshold, input.Direction)

	if combinedRate < input.MinSuccessRate {
		return nil, nil
	}

	return &Opportunity{
		Date:      fixture.Date,
		League:    fixture.League,
		HomeTeam:  fixture.HomeTeam,
		AwayTeam:  fixture.AwayTeam,
		Category:  input.Category,
		Direction: input.Direction,
		Threshold: input.Threshold,
		Estimated: input.Category.Estimated(),
		Home:      SideRate{Team: fixture.HomeTeam, SuccessCount: homeCount, SampleSize: homeSize, Rate: homeRate},
		Away:      SideRate{Team: fixture.AwayTeam, SuccessCount: awayCount, SampleSize: awaySize, Rate: awayRate},
		Combined:  SideRate{Team: "combined", SuccessCount: combinedCount, SampleSize: combinedSize, Rate: combinedRate},
	}, nil
}

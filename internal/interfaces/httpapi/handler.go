package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/matchpulse/trend-api/internal/domain/trend"
	"github.com/matchpulse/trend-api/internal/platform/logging"
	"github.com/matchpulse/trend-api/internal/usecase"
)

const dateLayout = "2006-01-02"

type Handler struct {
	formService      *usecase.FormService
	analysisService  *usecase.AnalysisService
	scanService      *usecase.ScanService
	ingestionService *usecase.IngestionService
	defaultLastN     int
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	formService *usecase.FormService,
	analysisService *usecase.AnalysisService,
	scanService *usecase.ScanService,
	ingestionService *usecase.IngestionService,
	defaultLastN int,
	logger *logging.Logger,
) *Handler {
	if defaultLastN <= 0 {
		defaultLastN = 5
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		formService:      formService,
		analysisService:  analysisService,
		scanService:      scanService,
		ingestionService: ingestionService,
		defaultLastN:     defaultLastN,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	sources := h.ingestionService.Catalog()
	items := make([]leagueDTO, 0, len(sources))
	for _, src := range sources {
		items = append(items, leagueToDTO(src))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	query := strings.TrimSpace(r.URL.Query().Get("q"))

	// A filtered lookup is an autocomplete; cap it unless the caller says
	// otherwise. An unfiltered listing stays uncapped.
	defaultLimit := 0
	if query != "" {
		defaultLimit = 10
	}
	limit, err := queryInt(r, "limit", defaultLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := listTeamsRequest{
		Query: query,
		Limit: limit,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	names, err := h.formService.SearchTeams(ctx, req.Query, req.Limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "query", req.Query, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, names)
}

func (h *Handler) GetTeamForm(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeamForm")
	defer span.End()

	lastN, err := queryInt(r, "n", h.defaultLastN)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := teamFormRequest{
		Team:  strings.TrimSpace(r.PathValue("team")),
		LastN: lastN,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.formService.LastMatches(ctx, req.Team, req.LastN, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "get team form failed", "team", req.Team, "error", err)
		writeError(ctx, w, err)
		return
	}
	if len(items) == 0 {
		writeError(ctx, w, fmt.Errorf("%w: no finished matches for %s", usecase.ErrNotFound, req.Team))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, formToDTO(ctx, items))
}

func (h *Handler) ListFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFixtures")
	defer span.End()

	req := listFixturesRequest{Date: strings.TrimSpace(r.URL.Query().Get("date"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	day := time.Now().UTC()
	if req.Date != "" {
		var err error
		day, err = time.Parse(dateLayout, req.Date)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, req.Date))
			return
		}
	}

	fixtures, err := h.scanService.FixturesOn(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "list fixtures failed", "date", req.Date, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]fixtureDTO, 0, len(fixtures))
	for _, f := range fixtures {
		items = append(items, fixtureToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Analyze")
	defer span.End()

	lastN, err := queryInt(r, "n", h.defaultLastN)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := analysisRequest{
		Team1: strings.TrimSpace(r.URL.Query().Get("team1")),
		Team2: strings.TrimSpace(r.URL.Query().Get("team2")),
		LastN: lastN,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.analysisService.Analyze(ctx, req.Team1, req.Team2, req.LastN)
	if err != nil {
		h.logger.WarnContext(ctx, "analysis failed", "team1", req.Team1, "team2", req.Team2, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analysisDTO{
		Team1:          result.Team1,
		Team2:          result.Team2,
		LastN:          result.LastN,
		Team1Form:      formToDTO(ctx, result.Team1Form),
		Team2Form:      formToDTO(ctx, result.Team2Form),
		Team1Trends:    statisticsToDTO(result.Team1Trends),
		Team2Trends:    statisticsToDTO(result.Team2Trends),
		CombinedTrends: statisticsToDTO(result.CombinedTrend),
	})
}

func (h *Handler) FindOpportunities(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FindOpportunities")
	defer span.End()

	query := r.URL.Query()

	lastN, err := queryInt(r, "last_n", h.defaultLastN)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	threshold, err := queryFloat(r, "threshold", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minSuccessRate, err := queryFloat(r, "min_success_rate", 0)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := opportunitiesRequest{
		Date:           strings.TrimSpace(query.Get("date")),
		LastN:          lastN,
		Category:       strings.TrimSpace(query.Get("category")),
		Threshold:      threshold,
		Direction:      strings.TrimSpace(query.Get("direction")),
		MinSuccessRate: minSuccessRate,
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	day, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid date %q", usecase.ErrInvalidInput, req.Date))
		return
	}
	category, ok := trend.ParseCategory(req.Category)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown category %q", usecase.ErrInvalidInput, req.Category))
		return
	}
	direction, ok := trend.ParseDirection(req.Direction)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: direction must be over or under, got %q", usecase.ErrInvalidInput, req.Direction))
		return
	}

	// min_success_rate arrives as a percentage for symmetry with the percent
	// fields in responses.
	opportunities, err := h.scanService.FindOpportunities(ctx, usecase.ScanInput{
		Day:            day,
		LastN:          req.LastN,
		Category:       category,
		Threshold:      req.Threshold,
		Direction:      direction,
		MinSuccessRate: req.MinSuccessRate / 100,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "opportunity scan failed", "date", req.Date, "category", req.Category, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]opportunityDTO, 0, len(opportunities))
	for _, opp := range opportunities {
		items = append(items, opportunityToDTO(opp))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ReloadData(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReloadData")
	defer span.End()

	report, err := h.ingestionService.Reload(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "data reload failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, reloadReportToDTO(report))
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}

func queryFloat(r *http.Request, key string, fallback float64) (float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", usecase.ErrInvalidInput, key, raw)
	}
	return v, nil
}

package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/matchpulse/trend-api/internal/config"
	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/domain/trend"
	"github.com/matchpulse/trend-api/internal/infrastructure/repository/memory"
	"github.com/matchpulse/trend-api/internal/infrastructure/source"
	"github.com/matchpulse/trend-api/internal/interfaces/httpapi"
	"github.com/matchpulse/trend-api/internal/platform/logging"
	"github.com/matchpulse/trend-api/internal/platform/resilience"
	"github.com/matchpulse/trend-api/internal/usecase"
)

// App bundles the HTTP server with the ingestion service so the entrypoint
// can run the initial data load before serving traffic.
type App struct {
	Server    *http.Server
	Ingestion *usecase.IngestionService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	store := memory.NewMatchStore()

	feedClient := source.NewClient(source.ClientConfig{
		BaseURL:    cfg.FeedBaseURL,
		Timeout:    cfg.FeedTimeout,
		MaxRetries: cfg.FeedMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FeedCircuitEnabled,
			FailureThreshold: cfg.FeedCircuitFailureCount,
			OpenTimeout:      cfg.FeedCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FeedCircuitHalfOpenMaxReq,
		},
	})

	ladder := trend.DefaultLadder()

	formSvc := usecase.NewFormService(store)
	analysisSvc := usecase.NewAnalysisService(formSvc, ladder, cfg.TrendCutoff)
	scanSvc := usecase.NewScanService(store, formSvc, ladder, logger)
	ingestionSvc := usecase.NewIngestionService(feedClient, store, league.DefaultCatalog(), cfg.IngestionWorkers, logger)

	handler := httpapi.NewHandler(formSvc, analysisSvc, scanSvc, ingestionSvc, cfg.DefaultLastN, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{Server: server, Ingestion: ingestionSvc}, nil
}

// LoadData runs one full catalog fetch and dataset swap.
func (a *App) LoadData(ctx context.Context) (usecase.IngestionReport, error) {
	return a.Ingestion.Reload(ctx)
}

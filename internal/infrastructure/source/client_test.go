package source

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/platform/logging"
	"github.com/matchpulse/trend-api/internal/platform/resilience"
)

const feedPayload = `[{"match_date":"2025-08-20","match_status":"Finished","match_hometeam_name":"Juventus","match_awayteam_name":"Inter","match_hometeam_score":"2","match_awayteam_score":"0"}]`

func newTestClient(serverURL string, maxRetries int, breaker resilience.CircuitBreakerConfig) *Client {
	return NewClient(ClientConfig{
		BaseURL:        serverURL,
		Timeout:        5 * time.Second,
		MaxRetries:     maxRetries,
		Logger:         logging.NewNop(),
		CircuitBreaker: breaker,
	})
}

func TestClient_FetchLeagueJSON(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/leagues/league_207_2025.json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})

	records, err := client.FetchLeague(t.Context(), league.Source{
		ID: "207", Name: "Serie A", File: "leagues/league_207_2025.json", Format: league.FormatJSON,
	})
	if err != nil {
		t.Fatalf("FetchLeague: %v", err)
	}
	if len(records) != 1 || records[0].HomeTeam != "Juventus" {
		t.Fatalf("unexpected records: %+v", records)
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 request, got %d", hits.Load())
	}
}

func TestClient_FetchLeagueCSV(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("Date,HomeTeam,AwayTeam,FTHG,FTAG\n01/02/25,Leeds,Everton,2,0\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{})

	records, err := client.FetchLeague(t.Context(), league.Source{
		ID: "E0", Name: "Premier League Archive", File: "archive/E0.csv", Format: league.FormatCSV,
	})
	if err != nil {
		t.Fatalf("FetchLeague: %v", err)
	}
	if len(records) != 1 || records[0].HomeTeam != "Leeds" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestClient_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(feedPayload))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 1, resilience.CircuitBreakerConfig{})

	records, err := client.FetchLeague(t.Context(), league.Source{
		ID: "207", Name: "Serie A", File: "leagues/league_207_2025.json", Format: league.FormatJSON,
	})
	if err != nil {
		t.Fatalf("FetchLeague after retry: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("unexpected records: %+v", records)
	}
	if hits.Load() != 2 {
		t.Fatalf("expected 2 requests, got %d", hits.Load())
	}
}

func TestClient_DoesNotRetryClientError(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3, resilience.CircuitBreakerConfig{})

	_, err := client.FetchLeague(t.Context(), league.Source{
		ID: "207", Name: "Serie A", File: "leagues/missing.json", Format: league.FormatJSON,
	})
	if err == nil {
		t.Fatalf("expected an error for 404")
	}
	if hits.Load() != 1 {
		t.Fatalf("404 must not be retried, got %d requests", hits.Load())
	}
}

func TestClient_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 0, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 1,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	})

	src := league.Source{ID: "207", Name: "Serie A", File: "leagues/league_207_2025.json", Format: league.FormatJSON}

	if _, err := client.FetchLeague(t.Context(), src); err == nil {
		t.Fatalf("expected the first fetch to fail")
	}
	requestsSoFar := hits.Load()

	_, err := client.FetchLeague(t.Context(), src)
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit-open error, got %v", err)
	}
	if hits.Load() != requestsSoFar {
		t.Fatalf("open circuit must not reach the server")
	}
}

func TestClient_RejectsInvalidSource(t *testing.T) {
	t.Parallel()

	client := newTestClient("http://example.invalid", 0, resilience.CircuitBreakerConfig{})

	if _, err := client.FetchLeague(t.Context(), league.Source{}); err == nil {
		t.Fatalf("expected validation error for empty source")
	}
}

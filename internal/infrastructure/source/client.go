// Package source fetches per-league data files and normalizes them into
// canonical matches. Two wire shapes exist: an API-Football style JSON list
// and a columnar CSV archive. The trend engine never sees either shape, only
// the canonical records.
package source

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/matchpulse/trend-api/internal/domain/league"
	"github.com/matchpulse/trend-api/internal/domain/match"
	"github.com/matchpulse/trend-api/internal/platform/logging"
	"github.com/matchpulse/trend-api/internal/platform/resilience"
)

const maxBodyBytes = 16 << 20

var errTransient = crerr.New("league feed transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches league files over HTTP. A circuit breaker guards the feed
// host and concurrent fetches of the same file are deduplicated.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchLeague downloads and decodes one catalog entry. Rows that cannot be
// normalized (missing date or team name) are dropped; missing numeric stats
// decode to zero.
func (c *Client) FetchLeague(ctx context.Context, src league.Source) ([]match.CanonicalMatch, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "league feed circuit breaker rejected request",
				"league", src.ID, "state", c.breaker.State())
			return nil, crerr.Wrapf(err, "league feed unavailable")
		}
	}

	fullURL := src.File
	if !strings.Contains(fullURL, "://") {
		fullURL = c.baseURL + "/" + strings.TrimLeft(src.File, "/")
	}

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, crerr.Newf("unexpected payload type %T", out)
	}

	switch src.Format {
	case league.FormatCSV:
		return decodeCSV(raw, src.Name), nil
	default:
		return decodeJSON(raw, src.Name)
	}
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		raw, err := c.fetchOnce(ctx, fullURL)
		if err == nil {
			return raw, nil
		}
		lastErr = err
		if !crerr.Is(err, errTransient) || attempt == c.maxRetries {
			break
		}

		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func (c *Client) fetchOnce(ctx context.Context, fullURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, crerr.Wrap(err, "build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send request"), errTransient)
	}
	defer resp.Body.Close()

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := io.Copy(buf, io.LimitReader(resp.Body, maxBodyBytes)); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read response body"), errTransient)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := crerr.Newf("feed status=%d url=%s", resp.StatusCode, fullURL)
		if isRetryableStatus(resp.StatusCode) {
			return nil, crerr.Mark(statusErr, errTransient)
		}
		return nil, statusErr
	}

	raw := make([]byte, buf.Len())
	copy(raw, buf.Bytes())
	return raw, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/ozanbudak/footsight/internal/platform/logging"
	"github.com/ozanbudak/footsight/internal/platform/resilience"
	"github.com/ozanbudak/footsight/internal/usecase"
)

const defaultBaseURL = "https://api.football-data.org/v4"

var authTokenHeaderRegex = regexp.MustCompile(`(?i)x-auth-token:\s*[^\s"']+`)
var errFootballDataTransient = crerr.New("football-data transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the football-data.org v4 API and maps its payloads
// into the provider-neutral types the ingestion pipeline consumes.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.FixtureProvider = (*Client)(nil)

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

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// FetchSeasonMatches loads every fixture of one competition season. An
// empty matches array is a valid answer: the provider simply has no
// data for that season.
func (c *Client) FetchSeasonMatches(ctx context.Context, competitionCode string, seasonYear int) (usecase.ExternalSeason, error) {
	competitionCode = strings.ToUpper(strings.TrimSpace(competitionCode))
	if competitionCode == "" {
		return usecase.ExternalSeason{}, fmt.Errorf("competition code is required")
	}
	if seasonYear <= 0 {
		return usecase.ExternalSeason{}, fmt.Errorf("season year must be greater than zero")
	}

	path := fmt.Sprintf("/competitions/%s/matches", competitionCode)
	query := map[string]string{"season": strconv.Itoa(seasonYear)}

	var envelope matchesEnvelope
	if err := c.doJSON(ctx, path, query, &envelope); err != nil {
		return usecase.ExternalSeason{}, fmt.Errorf("fetch matches competition=%s season=%d: %w", competitionCode, seasonYear, err)
	}

	season := usecase.ExternalSeason{
		League: usecase.ExternalLeague{
			ExternalID: envelope.Competition.ID,
			Code:       firstNonEmpty(envelope.Competition.Code, competitionCode),
			Name:       envelope.Competition.Name,
			Country:    envelope.Competition.Area.Name,
			Emblem:     envelope.Competition.Emblem,
		},
		Season:  seasonYear,
		Matches: make([]usecase.ExternalMatch, 0, len(envelope.Matches)),
	}

	for _, item := range envelope.Matches {
		if season.League.Country == "" {
			season.League.Country = item.Area.Name
		}
		season.Matches = append(season.Matches, mapMatchItem(item))
	}
	return season, nil
}

func mapMatchItem(item matchItem) usecase.ExternalMatch {
	out := usecase.ExternalMatch{
		ExternalID: item.ID,
		Status:     item.Status,
		Matchday:   item.Matchday,
		HomeTeam:   mapTeamItem(item.HomeTeam),
		AwayTeam:   mapTeamItem(item.AwayTeam),
		HomeScore:  item.Score.FullTime.Home,
		AwayScore:  item.Score.FullTime.Away,
	}
	if parsed, err := time.Parse(time.RFC3339, item.UTCDate); err == nil {
		out.KickoffAt = parsed.UTC()
	}
	return out
}

func mapTeamItem(item teamItem) usecase.ExternalTeam {
	shortName := item.ShortName
	if shortName == "" {
		shortName = item.TLA
	}
	return usecase.ExternalTeam{
		ExternalID: item.ID,
		Name:       item.Name,
		ShortName:  shortName,
		Crest:      item.Crest,
	}
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "football-data circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: fixture provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && isFootballDataCircuitFailure(reqErr) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode provider payload: %w", err)
	}
	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("X-Auth-Token", c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errFootballDataTransient, sanitizeSensitiveText(err.Error(), c.token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errFootballDataTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else {
				if isRetryableStatus(resp.StatusCode) {
					lastErr = fmt.Errorf("%w: provider status=%d body=%s", errFootballDataTransient, resp.StatusCode, abbreviateBody(raw))
				} else {
					return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
				}
			}
		}

		if attempt == c.maxRetries {
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

	if lastErr == nil {
		lastErr = fmt.Errorf("provider request failed")
	}
	c.logger.WarnContext(ctx, "football-data request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func sanitizeSensitiveText(value, token string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return value
	}
	if token != "" {
		value = strings.ReplaceAll(value, token, "REDACTED")
	}
	value = authTokenHeaderRegex.ReplaceAllString(value, "X-Auth-Token: REDACTED")
	return value
}

func isFootballDataCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFootballDataTransient)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) <= 240 {
		return text
	}
	return text[:240] + "..."
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}

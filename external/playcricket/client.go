package playcricket

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

	"github.com/robharvey123/cricket-platform/internal/platform/logging"
	"github.com/robharvey123/cricket-platform/internal/platform/resilience"
	"github.com/robharvey123/cricket-platform/internal/usecase"
)

const defaultBaseURL = "https://play-cricket.com/api/v2"

var apiTokenParamRegex = regexp.MustCompile(`api_token=[^&\s"']+`)
var errPlayCricketTransient = crerr.New("play-cricket transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client talks to the Play-Cricket result service. Site id and token travel
// per call because each club brings its own credentials.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

var _ usecase.MatchDetailProvider = (*Client)(nil)

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

	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		maxRetries:     maxRetries,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

// ListMatchIDs returns the site's fixture ids for a season, oldest first.
func (c *Client) ListMatchIDs(ctx context.Context, creds usecase.ProviderCredentials, season string) ([]int64, error) {
	if creds.SiteID <= 0 {
		return nil, fmt.Errorf("site id must be greater than zero")
	}

	query := map[string]string{
		"site_id": strconv.FormatInt(creds.SiteID, 10),
	}
	if season = strings.TrimSpace(season); season != "" {
		query["season"] = season
	}

	var envelope matchListEnvelope
	if _, err := c.doJSON(ctx, creds.Token, "/matches.json", query, &envelope); err != nil {
		return nil, fmt.Errorf("fetch match list site_id=%d: %w", creds.SiteID, err)
	}

	ids := make([]int64, 0, len(envelope.Matches))
	for _, item := range envelope.Matches {
		id := getInt64(item, "id")
		if id <= 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// FetchMatchDetail fetches and flattens one full scorecard.
func (c *Client) FetchMatchDetail(ctx context.Context, creds usecase.ProviderCredentials, externalMatchID int64) (usecase.ExternalMatchDetail, error) {
	if externalMatchID <= 0 {
		return usecase.ExternalMatchDetail{}, fmt.Errorf("match id must be greater than zero")
	}

	query := map[string]string{
		"match_id": strconv.FormatInt(externalMatchID, 10),
	}

	var envelope matchDetailEnvelope
	raw, err := c.doJSON(ctx, creds.Token, "/match_detail.json", query, &envelope)
	if err != nil {
		return usecase.ExternalMatchDetail{}, fmt.Errorf("fetch match detail match_id=%d: %w", externalMatchID, err)
	}
	if len(envelope.MatchDetails) == 0 {
		return usecase.ExternalMatchDetail{}, fmt.Errorf("match %d has no detail payload (body=%s)", externalMatchID, abbreviateBody(raw))
	}

	detail := parseMatchDetail(envelope.MatchDetails[0])
	detail.ExternalID = externalMatchID
	return detail, nil
}

func (c *Client) doJSON(ctx context.Context, token, path string, query map[string]string, target any) ([]byte, error) {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "play-cricket circuit breaker rejected request", "state", c.breaker.State())
			return nil, fmt.Errorf("%w: result service is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}
	values.Set("api_token", strings.TrimSpace(token))

	fullURL := c.baseURL + path + "?" + values.Encode()

	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL, token)
		if c.circuitEnabled {
			if reqErr != nil && stderrors.Is(reqErr, errPlayCricketTransient) {
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
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return raw, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL, token string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %s", errPlayCricketTransient, sanitizeSensitiveText(err.Error(), token))
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 6<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errPlayCricketTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errPlayCricketTransient, resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
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
	c.logger.WarnContext(ctx, "play-cricket request failed", "url", redactAPIURL(fullURL), "error", lastErr)
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
	return apiTokenParamRegex.ReplaceAllString(value, "api_token=REDACTED")
}

func redactAPIURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	query := parsed.Query()
	if query.Has("api_token") {
		query.Set("api_token", "REDACTED")
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
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

// Package ps3838 is the REST client for the PS3838 odds provider. All
// transport and decode failures are classified into the domain error taxonomy
// before they leave this package; callers never see a raw *url.Error.
package ps3838

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/abrahamrubi0/bettrack/internal/domain"
)

// DefaultBaseURL is the production API root.
const DefaultBaseURL = "https://api.ps3838.com/v3"

// Config holds connection parameters for the provider client.
type Config struct {
	BaseURL  string
	Username string
	Password string

	// Timeout bounds each request. Zero means 30 seconds.
	Timeout time.Duration

	// RequestsPerMinute caps the outbound request rate. The provider 429s
	// aggressively, and a 429 burns a whole polling cycle for every bet that
	// needed the fixtures page. Zero disables client-side limiting.
	RequestsPerMinute int
}

// Client is the PS3838 REST client. It is safe for use from the single
// tracker goroutine; it performs no internal concurrency.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	limiter    *rate.Limiter

	// OnRequest, when set, observes every completed request with the endpoint
	// name and a coarse status label. Used to feed metrics without this
	// package importing the metrics registry.
	OnRequest func(endpoint, status string)
}

// NewClient creates a provider client from cfg.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1)
	}

	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: cfg.Username,
		password: cfg.Password,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: limiter,
	}
}

// Fixtures fetches the live fixtures page for a sport, scoped to leagueIDs.
func (c *Client) Fixtures(ctx context.Context, sportID int, leagueIDs []int) (FixturesResponse, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(sportID))
	params.Set("leagueIds", joinIDs(leagueIDs))
	params.Set("isLive", "1")
	params.Set("since", "0")

	var resp FixturesResponse
	if err := c.get(ctx, "fixtures", "/fixtures", params, &resp); err != nil {
		return FixturesResponse{}, fmt.Errorf("ps3838: fixtures: %w", err)
	}
	return resp, nil
}

// Settled fetches the settled-results page for a sport, scoped to leagueIDs
// and bounded by the since cursor from a previous poll.
func (c *Client) Settled(ctx context.Context, sportID int, leagueIDs []int, since int64) (SettledResponse, error) {
	params := url.Values{}
	params.Set("sportId", strconv.Itoa(sportID))
	params.Set("leagueIds", joinIDs(leagueIDs))
	params.Set("since", strconv.FormatInt(since, 10))

	var resp SettledResponse
	if err := c.get(ctx, "settled", "/fixtures/settled", params, &resp); err != nil {
		return SettledResponse{}, fmt.Errorf("ps3838: settled: %w", err)
	}
	return resp, nil
}

// get performs one authenticated GET and decodes the JSON body into out,
// classifying every failure into the domain taxonomy.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(c.username, c.password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			c.observe(endpoint, "cancelled")
			return ctx.Err()
		}
		c.observe(endpoint, "error")
		return fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		c.observe(endpoint, "rate_limited")
		return domain.ErrRateLimited
	case resp.StatusCode >= 500:
		c.observe(endpoint, "error")
		return fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		c.observe(endpoint, "error")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", domain.ErrProviderUnavailable, resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(endpoint, "error")
		return fmt.Errorf("%w: read body: %v", domain.ErrProviderUnavailable, err)
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		c.observe(endpoint, "malformed")
		return fmt.Errorf("%w: empty body", domain.ErrMalformedResponse)
	}
	if err := json.Unmarshal(body, out); err != nil {
		c.observe(endpoint, "malformed")
		return fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err)
	}

	c.observe(endpoint, "ok")
	return nil
}

func (c *Client) observe(endpoint, status string) {
	if c.OnRequest != nil {
		c.OnRequest(endpoint, status)
	}
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

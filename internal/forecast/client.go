package forecast

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/pkg/logger"
)

// Client handles HTTP requests to the forecast provider
type Client struct {
	config     config.ForecastConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logger.Logger
}

// NewClient creates a new forecast API client. All requests pass through a
// shared rate limiter so a dashboard request with many locations cannot
// exceed the provider's request quota.
func NewClient(cfg config.ForecastConfig, log *logger.Logger) *Client {
	return &Client{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		logger:  log.Named("forecast-client"),
	}
}

// Fetch performs one forecast request for the given location and decodes the
// response. Transient provider errors are returned as-is; the caller decides
// how a failed location degrades. No retries.
func (c *Client) Fetch(ctx context.Context, loc config.Location) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(loc.Lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(loc.Lon, 'f', -1, 64))
	params.Set("appid", c.config.APIKey)
	params.Set("units", "metric")
	requestURL := c.config.BaseURL + "?" + params.Encode()

	c.logger.Debug("Fetching forecast",
		logger.String("location", loc.Name),
		logger.Float64("lat", loc.Lat),
		logger.Float64("lon", loc.Lon))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request to forecast API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("error decoding forecast data: %w", err)
	}

	c.logger.Debug("Forecast fetched",
		logger.String("location", loc.Name),
		logger.Int("entries", len(result.List)))

	return &result, nil
}

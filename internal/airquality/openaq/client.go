// Package openaq provides a client for the OpenAQ v3 API.
package openaq

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/saferoute/saferoute/internal/airquality"
	"github.com/saferoute/saferoute/internal/provider/resilience"
)

const (
	// DefaultBaseURL is the base URL for the OpenAQ API.
	DefaultBaseURL = "https://api.openaq.org"

	// ProviderName identifies this provider.
	ProviderName = "openaq"

	// pm25ParameterID is the OpenAQ parameter identifier for PM2.5.
	pm25ParameterID = 2

	// searchRadiusMeters is the station search radius around a query point.
	searchRadiusMeters = 25000
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OpenAQ client.
type ClientConfig struct {
	// APIKey is the OpenAQ API key (required).
	APIKey string

	// BaseURL is the API base URL (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient is the HTTP client to use. If nil, a default resilient
	// client will be created.
	HTTPClient HTTPDoer

	// Timeout for individual API requests (default: 5s).
	Timeout time.Duration
}

// Client is an OpenAQ API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
}

// NewClient creates a new OpenAQ client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 5 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      2,
			InitialInterval: 200 * time.Millisecond,
			MaxInterval:     2 * time.Second,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// API response types (from the OpenAQ v3 API).

type locationsResponse struct {
	Results []locationResult `json:"results"`
}

type locationResult struct {
	ID int `json:"id"`
}

type latestResponse struct {
	Results []latestResult `json:"results"`
}

type latestResult struct {
	Value float64 `json:"value"`
}

// PM25 returns the latest PM2.5 measurement near the coordinate in µg/m³.
// It queries the closest monitoring locations and returns the first usable
// measurement.
func (c *Client) PM25(ctx context.Context, lat, lon float64) (float64, error) {
	locations, err := c.nearestLocations(ctx, lat, lon)
	if err != nil {
		return 0, err
	}
	if len(locations) == 0 {
		return 0, airquality.ErrNoMeasurements
	}

	// Try up to the three closest locations for a usable reading.
	limit := len(locations)
	if limit > 3 {
		limit = 3
	}
	for _, loc := range locations[:limit] {
		value, err := c.latestValue(ctx, loc.ID)
		if err == nil {
			return value, nil
		}
	}

	return 0, airquality.ErrNoMeasurements
}

// nearestLocations queries monitoring locations around a point.
func (c *Client) nearestLocations(ctx context.Context, lat, lon float64) ([]locationResult, error) {
	params := url.Values{}
	params.Set("coordinates", fmt.Sprintf("%f,%f", lat, lon))
	params.Set("radius", fmt.Sprintf("%d", searchRadiusMeters))
	params.Set("limit", "5")
	params.Set("parameters_id", fmt.Sprintf("%d", pm25ParameterID))

	var resp locationsResponse
	if err := c.get(ctx, "/v3/locations?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// latestValue fetches the latest measurement for a location.
func (c *Client) latestValue(ctx context.Context, locationID int) (float64, error) {
	var resp latestResponse
	if err := c.get(ctx, fmt.Sprintf("/v3/locations/%d/latest", locationID), &resp); err != nil {
		return 0, err
	}
	if len(resp.Results) == 0 {
		return 0, airquality.ErrNoMeasurements
	}
	return resp.Results[0].Value, nil
}

// get executes a GET request against the API and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return airquality.ErrProviderUnavailable
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("openaq returned status %d: %w", resp.StatusCode, airquality.ErrProviderUnavailable)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

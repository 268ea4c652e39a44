// Package googlemaps provides a client for the Google Maps Directions API.
package googlemaps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/provider/resilience"
	"github.com/saferoute/saferoute/internal/routing"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "googlemaps"

	// DefaultBaseURL is the Google Maps API base URL.
	DefaultBaseURL = "https://maps.googleapis.com"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 10 * time.Second
)

// HTTPDoer is an interface for executing HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Google Maps client.
type ClientConfig struct {
	// APIKey is the Google Maps API key (required).
	APIKey string

	// BaseURL is the API base URL (optional, defaults to the Google Maps API).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional).
	// If nil, uses a resilient client with defaults.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 10s).
	Timeout time.Duration

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is a Google Maps Directions API client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates a new Google Maps client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:    ProviderName,
			Timeout: timeout,
		})
	}

	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// Directions API response types.

type directionsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Routes       []routeEntry `json:"routes"`
}

type routeEntry struct {
	Summary          string   `json:"summary"`
	OverviewPolyline polyline `json:"overview_polyline"`
	Legs             []leg    `json:"legs"`
}

type polyline struct {
	Points string `json:"points"`
}

type leg struct {
	Distance     textValue `json:"distance"`
	Duration     textValue `json:"duration"`
	StartAddress string    `json:"start_address"`
	EndAddress   string    `json:"end_address"`
}

type textValue struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}

// GetDirections retrieves driving route alternatives between two locations.
func (c *Client) GetDirections(ctx context.Context, req routing.DirectionsRequest) (*routing.DirectionsResponse, error) {
	params := url.Values{}
	params.Set("origin", req.Origin)
	params.Set("destination", req.Destination)
	params.Set("mode", "driving")
	params.Set("alternatives", "true")
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + "/maps/api/directions/json?" + params.Encode()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")

	c.logger.Debug().
		Str("origin", req.Origin).
		Str("destination", req.Destination).
		Msg("requesting directions from google maps")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "failed to reach routing provider",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  fmt.Sprintf("routing provider returned status %d", resp.StatusCode),
			Err:      routing.ErrProviderUnavailable,
		}
	}

	var decoded directionsResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	// The Directions API signals failures in the body status, not the HTTP code.
	if decoded.Status != "OK" {
		return nil, c.statusError(decoded.Status, decoded.ErrorMessage)
	}

	result := c.toDirectionsResponse(&decoded)

	c.logger.Debug().
		Int("route_count", len(result.Routes)).
		Msg("received directions from google maps")

	return result, nil
}

// statusError maps Directions API status codes to domain errors.
func (c *Client) statusError(status, message string) error {
	switch status {
	case "ZERO_RESULTS", "NOT_FOUND":
		return &routing.Error{
			Provider: ProviderName,
			Code:     "NO_ROUTE",
			Message:  "no route found between the given locations",
			Err:      routing.ErrNoRouteFound,
		}
	case "INVALID_REQUEST":
		return &routing.Error{
			Provider: ProviderName,
			Code:     "INVALID_REQUEST",
			Message:  statusMessage(message, "origin or destination could not be resolved"),
			Err:      routing.ErrInvalidLocation,
		}
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT":
		return &routing.Error{
			Provider: ProviderName,
			Code:     "RATE_LIMIT",
			Message:  "API rate limit exceeded, please try again later",
			Err:      routing.ErrRateLimitExceeded,
		}
	case "REQUEST_DENIED":
		return &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_DENIED",
			Message:  statusMessage(message, "API access denied - check API key configuration"),
			Err:      routing.ErrProviderUnavailable,
		}
	default:
		return &routing.Error{
			Provider: ProviderName,
			Code:     status,
			Message:  statusMessage(message, "routing provider returned an unexpected status"),
			Err:      routing.ErrProviderUnavailable,
		}
	}
}

func statusMessage(message, fallback string) string {
	if message != "" {
		return message
	}
	return fallback
}

// toDirectionsResponse converts the API response to the domain model.
func (c *Client) toDirectionsResponse(resp *directionsResponse) *routing.DirectionsResponse {
	routes := make([]routing.Route, 0, len(resp.Routes))

	for i := range resp.Routes {
		entry := &resp.Routes[i]
		route := routing.Route{
			ID:       fmt.Sprintf("route-%d", i+1),
			Summary:  entry.Summary,
			Polyline: entry.OverviewPolyline.Points,
		}

		// Requests without waypoints carry exactly one leg; summing keeps
		// totals correct if waypoints are ever added.
		for _, l := range entry.Legs {
			route.DistanceMeters += l.Distance.Value
			route.DurationSeconds += l.Duration.Value
		}
		if len(entry.Legs) > 0 {
			first := entry.Legs[0]
			last := entry.Legs[len(entry.Legs)-1]
			route.DistanceText = first.Distance.Text
			route.DurationText = first.Duration.Text
			route.StartAddress = first.StartAddress
			route.EndAddress = last.EndAddress
		}

		routes = append(routes, route)
	}

	return &routing.DirectionsResponse{
		Routes:    routes,
		Provider:  ProviderName,
		FetchedAt: time.Now(),
	}
}

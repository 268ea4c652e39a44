// Package routing provides candidate driving routes between two locations,
// including the alternatives the scoring pipeline compares.
package routing

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the routing provider is down or the circuit breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no valid route exists between the given locations.
	ErrNoRouteFound = errors.New("no route found between the given locations")
	// ErrRateLimitExceeded indicates the API quota has been exceeded.
	ErrRateLimitExceeded = errors.New("rate limit exceeded")
	// ErrInvalidLocation indicates an empty or unresolvable location.
	ErrInvalidLocation = errors.New("invalid location")
)

// Provider defines the interface for routing providers.
type Provider interface {
	// GetDirections retrieves driving routes between two locations.
	// Returns multiple route alternatives when available.
	GetDirections(ctx context.Context, req DirectionsRequest) (*DirectionsResponse, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// DirectionsRequest is the request for computing routes. Origin and
// Destination are free-form location strings resolved by the provider.
type DirectionsRequest struct {
	Origin      string
	Destination string
}

// DirectionsResponse is the response containing route alternatives.
type DirectionsResponse struct {
	Routes    []Route
	Provider  string
	FetchedAt time.Time
}

// Route represents a single route option.
type Route struct {
	ID              string // Stable identifier within one response (route-1, route-2, ...)
	Summary         string // Human-readable route summary, usually the main road
	Polyline        string // Encoded overview polyline (precision 5)
	DistanceMeters  int    // Total distance in meters
	DistanceText    string // Provider-formatted distance
	DurationSeconds int    // Total duration in seconds
	DurationText    string // Provider-formatted duration
	StartAddress    string // Resolved origin address
	EndAddress      string // Resolved destination address
}

// DistanceKm returns the route distance in kilometers.
func (r Route) DistanceKm() float64 {
	return float64(r.DistanceMeters) / 1000.0
}

// Error provides detailed error information from the routing provider.
type Error struct {
	Provider string // Provider that generated the error
	Code     string // Error code from the provider
	Message  string // Human-readable error message
	Err      error  // Underlying error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is transient and the request can be retried.
func (e *Error) IsRetryable() bool {
	return errors.Is(e.Err, ErrProviderUnavailable) || errors.Is(e.Err, ErrRateLimitExceeded)
}

// Package airquality provides the pollution signal for route scoring: a
// PM2.5 concentration per coordinate, normalized into [0,1].
package airquality

import (
	"context"
	"errors"
)

// Package errors.
var (
	// ErrProviderUnavailable indicates the air quality provider could not be reached.
	ErrProviderUnavailable = errors.New("air quality provider unavailable")
	// ErrNoMeasurements indicates the provider has no usable measurement near the point.
	ErrNoMeasurements = errors.New("no measurements available")
)

// Provider supplies raw PM2.5 concentrations.
type Provider interface {
	// PM25 returns the PM2.5 concentration in µg/m³ near the coordinate.
	PM25(ctx context.Context, lat, lon float64) (float64, error)
	// Name returns the provider identifier for logging.
	Name() string
}

// NormalizePM25 maps a PM2.5 concentration in µg/m³ to [0,1].
// 500 µg/m³ (hazardous) and above saturates at 1.0.
func NormalizePM25(value float64) float64 {
	if value <= 0 {
		return 0
	}
	normalized := value / 500.0
	if normalized > 1 {
		return 1
	}
	return normalized
}

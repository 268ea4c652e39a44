// Package scoring turns candidate routes into scored routes: it samples
// each route's geometry, synthesizes per-point features, classifies the
// route's risk, and aggregates safety and eco scores on a 0 to 100 scale.
package scoring

import (
	"errors"

	"github.com/saferoute/saferoute/internal/classifier"
	"github.com/saferoute/saferoute/internal/routing"
)

// Package errors.
var (
	// ErrNoGeometry indicates the route carries no usable polyline.
	ErrNoGeometry = errors.New("route has no geometry")
)

// FeatureMeans holds the per-signal averages across a route's sampled points.
type FeatureMeans struct {
	Crime     float64 `json:"crime"`
	Pollution float64 `json:"pollution"`
	Traffic   float64 `json:"traffic"`
	Lighting  float64 `json:"lighting"`
	Carbon    float64 `json:"carbon"`
}

// RouteScore is a fully scored route. SpeedScore, Composite, Rank, and
// Explanation are filled in by the ranker, which needs the whole batch.
type RouteScore struct {
	Route routing.Route

	SampledPoints int
	Means         FeatureMeans

	AverageRisk   float64
	Probabilities classifier.Probabilities
	RiskLabel     classifier.Label
	Degraded      bool

	SafetyScore float64
	EcoScore    float64

	SpeedScore  float64
	Composite   float64
	Rank        int
	Explanation string
}

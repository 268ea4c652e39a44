// Package classifier assigns a risk level to a route from the probability
// output of a trained model, with a deterministic heuristic fallback when
// the model is unreachable.
package classifier

import (
	"context"
	"errors"

	"github.com/saferoute/saferoute/internal/features"
)

// Package errors.
var (
	// ErrModelUnavailable indicates the prediction backend could not be reached.
	ErrModelUnavailable = errors.New("risk model unavailable")
	// ErrPredictionMismatch indicates the backend returned a prediction count
	// that does not match the request.
	ErrPredictionMismatch = errors.New("prediction count mismatch")
)

// Label is a categorical risk level.
type Label string

// Risk levels, ordered from lowest to highest expected risk.
const (
	LabelSafe     Label = "Safe"
	LabelModerate Label = "Moderate"
	LabelRisky    Label = "Risky"
)

// Probabilities is a class probability distribution over the risk levels.
type Probabilities struct {
	Safe     float64 `json:"safe"`
	Moderate float64 `json:"moderate"`
	Risky    float64 `json:"risky"`
}

// ExpectedRisk collapses the distribution into a scalar in [0,1]: Safe
// contributes 0, Moderate 0.5, and Risky 1.0.
func (p Probabilities) ExpectedRisk() float64 {
	return 0.5*p.Moderate + 1.0*p.Risky
}

// Predictor produces class probabilities for batches of feature vectors.
// Vectors follow the features.PointFeatures.Vector column order.
type Predictor interface {
	Predict(ctx context.Context, vectors [][8]float64) ([]Probabilities, error)
	Name() string
}

// Assessment is the route-level classification result.
type Assessment struct {
	// AverageRisk is the mean expected risk across all sampled points, in [0,1].
	AverageRisk float64

	// Probabilities is the mean class distribution across points. Zero-valued
	// when the assessment is degraded.
	Probabilities Probabilities

	// Label is the categorical level derived from AverageRisk.
	Label Label

	// Degraded is true when the heuristic fallback was used instead of the model.
	Degraded bool
}

// fallbackRisk estimates a point's risk without the model: a weighted blend
// of crime rate, darkness, and traffic.
func fallbackRisk(p features.PointFeatures) float64 {
	return 0.4*p.CrimeRate + 0.3*(1-p.LightingScore) + 0.3*p.TrafficDensity
}

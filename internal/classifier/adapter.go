package classifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/features"
)

// AdapterConfig holds configuration for the classifier adapter.
type AdapterConfig struct {
	// Predictor is the model backend. May be nil, in which case every
	// assessment uses the heuristic fallback.
	Predictor Predictor

	// Logger for adapter operations.
	Logger zerolog.Logger

	// SafeBelow and ModerateBelow are the label thresholds on average risk.
	// Defaults: 0.45 and 0.75.
	SafeBelow     float64
	ModerateBelow float64
}

// Adapter turns per-point features into a route-level risk assessment.
type Adapter struct {
	predictor     Predictor
	logger        zerolog.Logger
	safeBelow     float64
	moderateBelow float64
}

// NewAdapter creates a new classifier adapter.
func NewAdapter(cfg AdapterConfig) *Adapter {
	if cfg.SafeBelow == 0 {
		cfg.SafeBelow = 0.45
	}
	if cfg.ModerateBelow == 0 {
		cfg.ModerateBelow = 0.75
	}

	return &Adapter{
		predictor:     cfg.Predictor,
		logger:        cfg.Logger,
		safeBelow:     cfg.SafeBelow,
		moderateBelow: cfg.ModerateBelow,
	}
}

// AssessRoute classifies a route from its sampled point features. It never
// returns an error: when the model is unreachable the heuristic fallback
// produces a degraded assessment instead.
func (a *Adapter) AssessRoute(ctx context.Context, points []features.PointFeatures) Assessment {
	if len(points) == 0 {
		return Assessment{Label: a.LabelFor(0)}
	}

	if a.predictor != nil {
		assessment, err := a.assessWithModel(ctx, points)
		if err == nil {
			return assessment
		}
		a.logger.Warn().Err(err).
			Str("predictor", a.predictor.Name()).
			Int("points", len(points)).
			Msg("risk model unavailable, using heuristic fallback")
	}

	return a.assessWithFallback(points)
}

func (a *Adapter) assessWithModel(ctx context.Context, points []features.PointFeatures) (Assessment, error) {
	vectors := make([][8]float64, len(points))
	for i, p := range points {
		vectors[i] = p.Vector()
	}

	predictions, err := a.predictor.Predict(ctx, vectors)
	if err != nil {
		return Assessment{}, err
	}
	if len(predictions) != len(points) {
		return Assessment{}, ErrPredictionMismatch
	}

	var riskSum float64
	var meanProbs Probabilities
	for _, p := range predictions {
		riskSum += p.ExpectedRisk()
		meanProbs.Safe += p.Safe
		meanProbs.Moderate += p.Moderate
		meanProbs.Risky += p.Risky
	}

	n := float64(len(predictions))
	meanProbs.Safe /= n
	meanProbs.Moderate /= n
	meanProbs.Risky /= n

	avgRisk := riskSum / n
	return Assessment{
		AverageRisk:   avgRisk,
		Probabilities: meanProbs,
		Label:         a.LabelFor(avgRisk),
	}, nil
}

func (a *Adapter) assessWithFallback(points []features.PointFeatures) Assessment {
	var riskSum float64
	for _, p := range points {
		riskSum += fallbackRisk(p)
	}

	avgRisk := riskSum / float64(len(points))
	return Assessment{
		AverageRisk: avgRisk,
		Label:       a.LabelFor(avgRisk),
		Degraded:    true,
	}
}

// LabelFor maps an average risk value onto a categorical level.
func (a *Adapter) LabelFor(avgRisk float64) Label {
	switch {
	case avgRisk < a.safeBelow:
		return LabelSafe
	case avgRisk < a.moderateBelow:
		return LabelModerate
	default:
		return LabelRisky
	}
}

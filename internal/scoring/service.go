package scoring

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/classifier"
	"github.com/saferoute/saferoute/internal/features"
	"github.com/saferoute/saferoute/internal/routing"
	"github.com/saferoute/saferoute/pkg/polyline"
)

// ScorerConfig holds configuration for the route scorer.
type ScorerConfig struct {
	// Synthesizer builds per-point features (required).
	Synthesizer *features.Synthesizer

	// Classifier assesses route risk (required).
	Classifier *classifier.Adapter

	// Logger for scorer operations.
	Logger zerolog.Logger

	// SampleIntervalMeters is the spacing between sampled points along the
	// route geometry (default: 500).
	SampleIntervalMeters float64

	// MaxSampledPoints caps the number of points scored per route so a
	// pathological geometry cannot stall a request (default: 500).
	MaxSampledPoints int

	// Workers is the feature synthesis pool size per route (default: 8).
	Workers int
}

// Scorer scores individual routes and batches of alternatives.
type Scorer struct {
	synthesizer    *features.Synthesizer
	classifier     *classifier.Adapter
	logger         zerolog.Logger
	sampleInterval float64
	maxPoints      int
	workers        int
}

// NewScorer creates a new route scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	if cfg.SampleIntervalMeters == 0 {
		cfg.SampleIntervalMeters = 500
	}
	if cfg.MaxSampledPoints == 0 {
		cfg.MaxSampledPoints = 500
	}
	if cfg.Workers == 0 {
		cfg.Workers = 8
	}

	return &Scorer{
		synthesizer:    cfg.Synthesizer,
		classifier:     cfg.Classifier,
		logger:         cfg.Logger,
		sampleInterval: cfg.SampleIntervalMeters,
		maxPoints:      cfg.MaxSampledPoints,
		workers:        cfg.Workers,
	}
}

// Score evaluates a single route at the given time context.
func (s *Scorer) Score(ctx context.Context, route routing.Route, tc features.TimeContext) (*RouteScore, error) {
	if route.Polyline == "" {
		return nil, ErrNoGeometry
	}

	coords, err := polyline.Decode(route.Polyline)
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return nil, ErrNoGeometry
	}

	sampled := polyline.SampleEvery(coords, s.sampleInterval)
	if len(sampled) > s.maxPoints {
		s.logger.Warn().
			Str("route_id", route.ID).
			Int("sampled", len(sampled)).
			Int("max", s.maxPoints).
			Msg("sampled point count exceeds cap, truncating")
		sampled = sampled[:s.maxPoints]
	}

	points := s.synthesizePoints(ctx, sampled, tc)
	assessment := s.classifier.AssessRoute(ctx, points)

	score := &RouteScore{
		Route:         route,
		SampledPoints: len(points),
		Means:         meansOf(points),
		AverageRisk:   assessment.AverageRisk,
		Probabilities: assessment.Probabilities,
		RiskLabel:     assessment.Label,
		Degraded:      assessment.Degraded,
	}
	score.SafetyScore = safetyScore(score.Means, assessment.AverageRisk)
	score.EcoScore = ecoScore(score.Means)

	return score, nil
}

// ScoreBatch evaluates a set of route alternatives. Routes whose geometry
// cannot be decoded are skipped with a warning rather than failing the batch.
func (s *Scorer) ScoreBatch(ctx context.Context, routes []routing.Route, tc features.TimeContext) []*RouteScore {
	scores := make([]*RouteScore, 0, len(routes))
	for _, route := range routes {
		score, err := s.Score(ctx, route, tc)
		if err != nil {
			s.logger.Warn().Err(err).
				Str("route_id", route.ID).
				Str("summary", route.Summary).
				Msg("skipping route with unusable geometry")
			continue
		}
		scores = append(scores, score)
	}
	return scores
}

// synthesizePoints runs feature synthesis across a worker pool, preserving
// the sampled point order.
func (s *Scorer) synthesizePoints(ctx context.Context, coords []polyline.Coordinate, tc features.TimeContext) []features.PointFeatures {
	points := make([]features.PointFeatures, len(coords))

	workers := s.workers
	if workers > len(coords) {
		workers = len(coords)
	}

	indexes := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				c := coords[i]
				points[i] = s.synthesizer.Synthesize(ctx, c.Lat, c.Lon, tc)
			}
		}()
	}

	for i := range coords {
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	return points
}

// meansOf averages each signal across the sampled points.
func meansOf(points []features.PointFeatures) FeatureMeans {
	if len(points) == 0 {
		return FeatureMeans{}
	}

	var m FeatureMeans
	for _, p := range points {
		m.Crime += p.CrimeRate
		m.Pollution += p.PollutionLevel
		m.Traffic += p.TrafficDensity
		m.Lighting += p.LightingScore
		m.Carbon += p.CarbonFactor
	}

	n := float64(len(points))
	m.Crime /= n
	m.Pollution /= n
	m.Traffic /= n
	m.Lighting /= n
	m.Carbon /= n
	return m
}

// safetyScore blends the route's averaged signals into a 0 to 100 score.
// Low crime dominates, then lighting, then light traffic, then model risk.
func safetyScore(m FeatureMeans, avgRisk float64) float64 {
	raw := 0.40*(1-m.Crime) +
		0.35*m.Lighting +
		0.20*0.5*(1-m.Traffic) +
		0.05*(1-avgRisk)
	return clampScore(100 * raw)
}

// ecoScore weighs clean air and low emissions equally.
func ecoScore(m FeatureMeans) float64 {
	raw := 0.5*(1-m.Pollution) + 0.5*(1-m.Carbon)
	return clampScore(100 * raw)
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

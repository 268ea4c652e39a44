package risk

import (
	"sort"
	"time"

	"github.com/saferoute/saferoute/internal/noise"
)

// IndexConfig holds configuration for the spatial risk index.
type IndexConfig struct {
	// RadiusDegrees is the neighbor search radius in coordinate degrees.
	// Default: 0.027 (~3km at Delhi's latitude).
	RadiusDegrees float64

	// Epsilon is added to distances before inverse weighting to avoid
	// division by zero when a query lands on a hotspot. Default: 0.001.
	Epsilon float64

	// MaxIncidentCount normalizes weighted incident counts into [0,1].
	// Default: 100.
	MaxIncidentCount float64

	// BaselineMin and BaselineMax bound the score returned when no hotspot
	// is in range (assumed safe, no data). Defaults: 0.15 and 0.25.
	BaselineMin float64
	BaselineMax float64

	// JitterAmplitude is the half-width of the uniform jitter added to
	// in-range scores. Default: 0.05.
	JitterAmplitude float64

	// Noise is the randomness source for baseline and jitter terms.
	// Default: a clock-seeded source.
	Noise noise.Source
}

// DefaultIndexConfig returns the default index configuration.
func DefaultIndexConfig() IndexConfig {
	return IndexConfig{
		RadiusDegrees:    0.027,
		Epsilon:          0.001,
		MaxIncidentCount: 100,
		BaselineMin:      0.15,
		BaselineMax:      0.25,
		JitterAmplitude:  0.05,
	}
}

// Index answers crime-risk queries over a fixed hotspot set. It is immutable
// after construction and safe for concurrent use.
type Index struct {
	root   *kdNode
	count  int
	config IndexConfig
}

// NewIndex builds a spatial index over the given hotspots.
func NewIndex(hotspots []Hotspot, cfg IndexConfig) (*Index, error) {
	if len(hotspots) == 0 {
		return nil, ErrNoHotspots
	}

	defaults := DefaultIndexConfig()
	if cfg.RadiusDegrees <= 0 {
		cfg.RadiusDegrees = defaults.RadiusDegrees
	}
	if cfg.Epsilon <= 0 {
		cfg.Epsilon = defaults.Epsilon
	}
	if cfg.MaxIncidentCount <= 0 {
		cfg.MaxIncidentCount = defaults.MaxIncidentCount
	}
	if cfg.BaselineMin <= 0 {
		cfg.BaselineMin = defaults.BaselineMin
	}
	if cfg.BaselineMax <= 0 {
		cfg.BaselineMax = defaults.BaselineMax
	}
	if cfg.JitterAmplitude < 0 {
		cfg.JitterAmplitude = defaults.JitterAmplitude
	}
	if cfg.Noise == nil {
		cfg.Noise = noise.NewSeeded(defaultSeed())
	}

	// Build over a copy so the caller's slice order is untouched.
	owned := make([]Hotspot, len(hotspots))
	copy(owned, hotspots)

	return &Index{
		root:   buildKDTree(owned, 0),
		count:  len(owned),
		config: cfg,
	}, nil
}

// Size returns the number of indexed hotspots.
func (ix *Index) Size() int {
	return ix.count
}

// Score estimates crime risk at the given coordinate as a value in [0,1].
// Hotspots within the search radius contribute by inverse-distance weighting;
// with no hotspot in range a low baseline band is returned. A small jitter
// term is added either way, drawn from the configured noise source.
func (ix *Index) Score(lat, lon float64) float64 {
	neighbors := ix.root.withinRadius(lat, lon, ix.config.RadiusDegrees, nil)
	if len(neighbors) == 0 {
		return ix.config.Noise.Uniform(ix.config.BaselineMin, ix.config.BaselineMax)
	}

	var weightedIncidents, totalWeight float64
	for _, nb := range neighbors {
		w := 1 / (nb.distance + ix.config.Epsilon)
		weightedIncidents += float64(nb.hotspot.IncidentCount) * w
		totalWeight += w
	}

	avgIncidents := weightedIncidents / totalWeight
	score := avgIncidents / ix.config.MaxIncidentCount
	if score > 1 {
		score = 1
	}

	score += ix.config.Noise.Uniform(-ix.config.JitterAmplitude, ix.config.JitterAmplitude)
	return clamp01(score)
}

// Nearby returns the hotspots within the configured radius of a coordinate,
// closest first. Useful for explaining why a point scored high.
func (ix *Index) Nearby(lat, lon float64) []Hotspot {
	neighbors := ix.root.withinRadius(lat, lon, ix.config.RadiusDegrees, nil)
	sortNeighbors(neighbors)

	hotspots := make([]Hotspot, 0, len(neighbors))
	for _, nb := range neighbors {
		hotspots = append(hotspots, nb.hotspot)
	}
	return hotspots
}

func sortNeighbors(neighbors []neighbor) {
	sort.Slice(neighbors, func(i, j int) bool {
		return neighbors[i].distance < neighbors[j].distance
	})
}

func defaultSeed() int64 {
	return time.Now().UnixNano()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

package airquality

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/saferoute/saferoute/internal/noise"
)

// ServiceConfig holds configuration for the air quality service.
type ServiceConfig struct {
	// Provider is the upstream data source. May be nil, in which case every
	// lookup uses the fallback band.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long to cache a level per grid cell (default: 10 minutes).
	CacheTTL time.Duration

	// CacheGridSize is the cache grid cell size in degrees (default: 0.01,
	// ~1.1km). Points within the same cell share cached data.
	CacheGridSize float64

	// FallbackMin and FallbackMax bound the normalized level returned when
	// the provider fails or is absent. Defaults: 0.30 and 0.50, typical
	// urban PM2.5 in the serving region.
	FallbackMin float64
	FallbackMax float64

	// Noise is the randomness source for fallback values.
	Noise noise.Source
}

// Service resolves normalized pollution levels with caching and a fallback
// band, so a provider outage never blocks route scoring.
type Service struct {
	provider      Provider
	logger        zerolog.Logger
	cacheTTL      time.Duration
	cacheGridSize float64
	fallbackMin   float64
	fallbackMax   float64
	noise         noise.Source

	mu    sync.RWMutex
	cache map[string]cachedLevel
}

type cachedLevel struct {
	level     float64
	expiresAt time.Time
}

// NewService creates a new air quality service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.CacheGridSize == 0 {
		cfg.CacheGridSize = 0.01
	}
	if cfg.FallbackMin == 0 {
		cfg.FallbackMin = 0.30
	}
	if cfg.FallbackMax == 0 {
		cfg.FallbackMax = 0.50
	}
	if cfg.Noise == nil {
		cfg.Noise = noise.NewSeeded(time.Now().UnixNano())
	}

	return &Service{
		provider:      cfg.Provider,
		logger:        cfg.Logger,
		cacheTTL:      cfg.CacheTTL,
		cacheGridSize: cfg.CacheGridSize,
		fallbackMin:   cfg.FallbackMin,
		fallbackMax:   cfg.FallbackMax,
		noise:         cfg.Noise,
		cache:         make(map[string]cachedLevel),
	}
}

// Level returns the normalized pollution level in [0,1] at a coordinate.
// It never returns an error: provider failures fall back to the configured
// band, logged at debug level.
func (s *Service) Level(ctx context.Context, lat, lon float64) float64 {
	key := s.cacheKey(lat, lon)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.level
	}
	s.mu.RUnlock()

	if s.provider == nil {
		return s.fallback()
	}

	value, err := s.provider.PM25(ctx, lat, lon)
	if err != nil {
		s.logger.Debug().Err(err).
			Float64("lat", lat).
			Float64("lon", lon).
			Str("provider", s.provider.Name()).
			Msg("pollution lookup failed, using fallback band")
		return s.fallback()
	}

	level := NormalizePM25(value)

	s.mu.Lock()
	s.cache[key] = cachedLevel{level: level, expiresAt: time.Now().Add(s.cacheTTL)}
	s.mu.Unlock()

	return level
}

// fallback draws an estimated level from the configured band. Fallback
// values are not cached so the next lookup retries the provider.
func (s *Service) fallback() float64 {
	return s.noise.Uniform(s.fallbackMin, s.fallbackMax)
}

// cacheKey quantizes a coordinate onto the cache grid.
func (s *Service) cacheKey(lat, lon float64) string {
	gridLat := math.Floor(lat/s.cacheGridSize) * s.cacheGridSize
	gridLon := math.Floor(lon/s.cacheGridSize) * s.cacheGridSize
	return fmt.Sprintf("%.2f,%.2f", gridLat, gridLon)
}

// InvalidateCache clears all cached levels.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]cachedLevel)
}

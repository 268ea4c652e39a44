package risk

import "context"

// Repository loads the hotspot backing set for the index. Loading happens
// once at startup; the index never goes back to the repository afterwards.
type Repository interface {
	// LoadHotspots returns all known hotspots.
	LoadHotspots(ctx context.Context) ([]Hotspot, error)
}

// StaticRepository serves a fixed in-memory hotspot set.
type StaticRepository struct {
	hotspots []Hotspot
}

// NewStaticRepository creates a repository over the given hotspots.
func NewStaticRepository(hotspots []Hotspot) *StaticRepository {
	return &StaticRepository{hotspots: hotspots}
}

// LoadHotspots returns the configured hotspot set.
func (r *StaticRepository) LoadHotspots(_ context.Context) ([]Hotspot, error) {
	return r.hotspots, nil
}

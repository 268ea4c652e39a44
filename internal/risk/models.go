// Package risk provides spatial crime-risk estimation from a static set of
// incident hotspots. An Index is built once at startup and is read-only
// thereafter, so lookups are safe from concurrent scoring workers.
package risk

import "errors"

// Package errors.
var (
	// ErrNoHotspots indicates an index cannot be built from an empty hotspot set.
	ErrNoHotspots = errors.New("no hotspots to index")
)

// Hotspot is a fixed geographic point with a historical incident count.
// Hotspots are loaded once at startup and never mutated.
type Hotspot struct {
	Area          string
	Lat           float64
	Lon           float64
	IncidentCount int
}

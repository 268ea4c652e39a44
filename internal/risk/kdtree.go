package risk

import (
	"math"
	"sort"
)

// kdNode is a node in a 2-dimensional k-d tree over hotspot coordinates.
// The tree is built once and never rebalanced; lookups require no locking.
type kdNode struct {
	hotspot     Hotspot
	axis        int // 0 = latitude, 1 = longitude
	left, right *kdNode
}

// buildKDTree constructs a balanced tree by splitting on the median of the
// current axis at each level. The input slice is reordered in place.
func buildKDTree(hotspots []Hotspot, depth int) *kdNode {
	if len(hotspots) == 0 {
		return nil
	}

	axis := depth % 2
	sort.Slice(hotspots, func(i, j int) bool {
		return coordOnAxis(hotspots[i], axis) < coordOnAxis(hotspots[j], axis)
	})

	median := len(hotspots) / 2
	return &kdNode{
		hotspot: hotspots[median],
		axis:    axis,
		left:    buildKDTree(hotspots[:median], depth+1),
		right:   buildKDTree(hotspots[median+1:], depth+1),
	}
}

func coordOnAxis(h Hotspot, axis int) float64 {
	if axis == 0 {
		return h.Lat
	}
	return h.Lon
}

// neighbor pairs a hotspot with its planar degree-space distance from the
// query point.
type neighbor struct {
	hotspot  Hotspot
	distance float64
}

// withinRadius collects all hotspots whose planar distance from (lat, lon)
// is at most radius degrees. Subtrees are pruned when the splitting plane is
// farther than the radius.
func (n *kdNode) withinRadius(lat, lon, radius float64, found []neighbor) []neighbor {
	if n == nil {
		return found
	}

	dLat := lat - n.hotspot.Lat
	dLon := lon - n.hotspot.Lon
	dist := math.Sqrt(dLat*dLat + dLon*dLon)
	if dist <= radius {
		found = append(found, neighbor{hotspot: n.hotspot, distance: dist})
	}

	var planeDist float64
	if n.axis == 0 {
		planeDist = lat - n.hotspot.Lat
	} else {
		planeDist = lon - n.hotspot.Lon
	}

	near, far := n.left, n.right
	if planeDist > 0 {
		near, far = n.right, n.left
	}

	found = near.withinRadius(lat, lon, radius, found)
	if math.Abs(planeDist) <= radius {
		found = far.withinRadius(lat, lon, radius, found)
	}

	return found
}

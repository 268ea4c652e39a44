// Package polyline provides encoding, decoding and sampling utilities for
// Google's polyline algorithm (precision 5, signed delta, base-63 packing).
// The algorithm is documented at:
// https://developers.google.com/maps/documentation/utilities/polylinealgorithm
package polyline

import (
	"errors"
	"math"
)

// ErrMalformedGeometry indicates an encoded path that cannot be decoded into
// at least one coordinate pair. Callers scoring a batch of routes should skip
// the offending route rather than abort the batch.
var ErrMalformedGeometry = errors.New("malformed route geometry")

// Coordinate represents a geographic point with latitude and longitude.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Decode decodes a polyline-encoded string into a slice of coordinates.
// Returns ErrMalformedGeometry for empty or truncated input.
func Decode(encoded string) ([]Coordinate, error) {
	if encoded == "" {
		return nil, ErrMalformedGeometry
	}

	var coords []Coordinate
	index := 0
	lat := 0
	lon := 0

	for index < len(encoded) {
		latDelta, newIndex, ok := decodeValue(encoded, index)
		if !ok {
			return nil, ErrMalformedGeometry
		}
		index = newIndex
		lat += latDelta

		lonDelta, newIndex, ok := decodeValue(encoded, index)
		if !ok {
			// A latitude without its longitude means the string was truncated.
			return nil, ErrMalformedGeometry
		}
		index = newIndex
		lon += lonDelta

		coords = append(coords, Coordinate{
			Lat: float64(lat) / 1e5,
			Lon: float64(lon) / 1e5,
		})
	}

	return coords, nil
}

// decodeValue decodes a single delta value from the polyline at the given
// index. Returns the decoded value, the new index position, and whether the
// value terminated properly.
func decodeValue(encoded string, index int) (int, int, bool) {
	shift := 0
	result := 0
	terminated := false

	for index < len(encoded) {
		b := int(encoded[index]) - 63
		if b < 0 {
			return 0, index, false
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			terminated = true
			break
		}
	}

	if !terminated {
		return 0, index, false
	}

	// Apply two's complement for negative values
	if result&1 != 0 {
		return ^(result >> 1), index, true
	}
	return result >> 1, index, true
}

// Encode encodes a slice of coordinates into a polyline-encoded string.
func Encode(coords []Coordinate) string {
	if len(coords) == 0 {
		return ""
	}

	encoded := make([]byte, 0, len(coords)*4)
	prevLat := 0
	prevLon := 0

	for _, coord := range coords {
		lat := int(math.Round(coord.Lat * 1e5))
		lon := int(math.Round(coord.Lon * 1e5))

		encoded = encodeValue(encoded, lat-prevLat)
		encoded = encodeValue(encoded, lon-prevLon)

		prevLat = lat
		prevLon = lon
	}

	return string(encoded)
}

// encodeValue encodes a single integer value using the polyline algorithm.
func encodeValue(buf []byte, value int) []byte {
	// Invert if negative
	if value < 0 {
		value = ^(value << 1)
	} else {
		value <<= 1
	}

	// Encode in 5-bit chunks
	for value >= 0x20 {
		buf = append(buf, byte((value&0x1f)|0x20)+63)
		value >>= 5
	}
	buf = append(buf, byte(value)+63)

	return buf
}

// Length calculates the total length of a polyline in meters using the
// haversine formula.
func Length(coords []Coordinate) float64 {
	if len(coords) < 2 {
		return 0
	}

	var total float64
	for i := 1; i < len(coords); i++ {
		total += HaversineMeters(coords[i-1], coords[i])
	}
	return total
}

// SampleEvery returns route vertices sampled at approximately the given
// spacing in meters. The walk accumulates haversine distance from the last
// emitted vertex and emits the current vertex each time the accumulator
// reaches the interval, then resets it. The first and last vertices are
// always included, so a path shorter than the interval yields just the two
// endpoints and no short trailing segment is ever dropped.
func SampleEvery(coords []Coordinate, intervalMeters float64) []Coordinate {
	if len(coords) == 0 {
		return nil
	}
	if intervalMeters <= 0 || len(coords) == 1 {
		return coords
	}

	sampled := []Coordinate{coords[0]}
	accumulated := 0.0

	for i := 1; i < len(coords); i++ {
		accumulated += HaversineMeters(coords[i-1], coords[i])
		if accumulated >= intervalMeters {
			sampled = append(sampled, coords[i])
			accumulated = 0
		}
	}

	last := coords[len(coords)-1]
	if sampled[len(sampled)-1] != last {
		sampled = append(sampled, last)
	}

	return sampled
}

const earthRadiusMeters = 6371000

// HaversineMeters calculates the great-circle distance between two
// coordinates in meters.
func HaversineMeters(a, b Coordinate) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)

	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(h))
}

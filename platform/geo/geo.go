// Package geo parses free-text coordinates and measures great-circle distance.
// This is part of the platform layer and contains no business logic.
package geo

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const earthRadiusKm = 6371.0

// Point is a WGS84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether p lies within latitude/longitude bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// String renders p in the "lat,lng" form Parse accepts.
func (p Point) String() string {
	return fmt.Sprintf("%s,%s",
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
	)
}

// Parse reads a "lat,lng" string such as "19.0760, 72.8777".
// It reports false for empty input, anything other than exactly two
// comma-separated parts, non-numeric parts and out-of-range values.
// It never panics.
func Parse(raw string) (Point, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Point{}, false
	}

	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return Point{}, false
	}

	lat, ok := parseCoordinate(parts[0])
	if !ok {
		return Point{}, false
	}
	lng, ok := parseCoordinate(parts[1])
	if !ok {
		return Point{}, false
	}

	p := Point{Lat: lat, Lng: lng}
	if !p.Valid() {
		return Point{}, false
	}
	return p, true
}

func parseCoordinate(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// DistanceKm returns the haversine distance between a and b in kilometers.
func DistanceKm(a, b Point) float64 {
	lat1Rad := degreesToRadians(a.Lat)
	lat2Rad := degreesToRadians(b.Lat)
	deltaLat := degreesToRadians(b.Lat - a.Lat)
	deltaLng := degreesToRadians(b.Lng - a.Lng)

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

// Within reports whether b lies at most radiusKm from a.
func Within(a, b Point, radiusKm float64) bool {
	return DistanceKm(a, b) <= radiusKm
}

func degreesToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180.0
}

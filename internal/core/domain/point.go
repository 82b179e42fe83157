package domain

import "fmt"

// Point is a geographic coordinate (WGS 84), latitude and longitude in
// degrees. It is a plain value: copy it freely, it is never mutated after
// construction.
//
// Coordinate ranges are NOT validated. Out-of-range values (e.g. a latitude
// beyond ±90°) are accepted and flow through the trigonometric formulas
// untouched, producing mathematically defined but geographically meaningless
// results.
type Point struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// NewPoint builds a point from latitude and longitude in degrees.
func NewPoint(latitude, longitude float64) Point {
	return Point{Latitude: latitude, Longitude: longitude}
}

// Equal reports whether both coordinates match exactly, bit for bit.
//
// There is deliberately no epsilon: two points differing in the last
// representable bit of either coordinate are unequal. This keeps segment
// construction strict rather than approximate. Callers that want
// near-equality must pre-round their coordinates.
func (p Point) Equal(other Point) bool {
	return p.Latitude == other.Latitude && p.Longitude == other.Longitude
}

// String renders the point with six decimal places. The format is stable;
// tests and error messages rely on it literally.
func (p Point) String() string {
	return fmt.Sprintf("Point(lat: %.6f, lon: %.6f)", p.Latitude, p.Longitude)
}

package domain

import (
	"fmt"
	"math"
)

// Segment is a directed line between two distinct points. Construct it with
// NewSegment; a zero-length segment is rejected there and cannot exist
// afterwards.
type Segment struct {
	Start Point `json:"start"`
	End   Point `json:"end"`
}

// NewSegment validates that the endpoints differ (exact equality, see
// Point.Equal) and returns the segment. Identical endpoints yield a
// *DegenerateSegmentError.
func NewSegment(start, end Point) (Segment, error) {
	if start.Equal(end) {
		return Segment{}, &DegenerateSegmentError{Start: start, End: end}
	}
	return Segment{Start: start, End: end}, nil
}

// EuclideanDistance treats (latitude, longitude) as planar (x, y) coordinates
// and returns sqrt(Δlat² + Δlon²).
//
// This is a flat-plane simplification with no geographic meaning; it exists
// for unit testing and cheap relative comparisons, not as a geodesic measure.
func (s Segment) EuclideanDistance() float64 {
	dLat := s.End.Latitude - s.Start.Latitude
	dLon := s.End.Longitude - s.Start.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// String renders the segment using the stable point format.
func (s Segment) String() string {
	return fmt.Sprintf("Segment(start: %s, end: %s)", s.Start, s.End)
}

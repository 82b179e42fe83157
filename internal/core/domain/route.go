package domain

import "time"

// Route is a stored named polyline: the persistence-facing shape of a Path.
// Coordinates hold the polyline vertices in order; a route with N coordinates
// yields a path of N-1 segments.
type Route struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Name        string    `json:"name"`
	Coordinates []Point   `json:"coordinates"`
	CreatedAt   time.Time `json:"created_at"`
}

// Path builds the validated Path for this route. Segment and path invariants
// apply: repeated adjacent coordinates fail as degenerate segments, so any
// error from NewSegment or NewPath surfaces here. Fewer than two coordinates
// produce an empty path.
func (r *Route) Path() (Path, error) {
	if len(r.Coordinates) < 2 {
		return Path{}, nil
	}
	segments := make([]Segment, 0, len(r.Coordinates)-1)
	for i := 1; i < len(r.Coordinates); i++ {
		seg, err := NewSegment(r.Coordinates[i-1], r.Coordinates[i])
		if err != nil {
			return Path{}, err
		}
		segments = append(segments, seg)
	}
	return NewPath(segments...)
}

// Measurement is the outcome of measuring a stored route, published to the
// message broker after each successful aggregation.
type Measurement struct {
	RouteID     string    `json:"route_id"`
	Slug        string    `json:"slug"`
	Methodology string    `json:"methodology"`
	Distance    float64   `json:"distance"`
	Unit        string    `json:"unit"`
	Segments    int       `json:"segments"`
	MeasuredAt  time.Time `json:"measured_at"`
}

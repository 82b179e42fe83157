package geodesy

import (
	"math"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// Haversine returns the great-circle distance between two points in
// kilometers, treating the Earth as a sphere.
//
// The formula is numerically stable for every latitude/longitude pair,
// antipodal points included: a saturates near 1 and c near π, there is no
// singularity.
func Haversine(p, q domain.Point, s Sphere) float64 {
	lat1 := DegreesToRadians(p.Latitude)
	lat2 := DegreesToRadians(q.Latitude)
	dLat := DegreesToRadians(q.Latitude - p.Latitude)
	dLon := DegreesToRadians(q.Longitude - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return s.RadiusKm * c
}

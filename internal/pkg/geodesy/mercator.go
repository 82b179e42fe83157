package geodesy

import (
	"math"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// WebMercator projects a WGS 84 point (EPSG:4326) to Web Mercator
// (EPSG:3857) coordinates in meters.
//
// The projection diverges at the poles: latitudes at or beyond +90° map to
// +Inf, at or beyond -90° to -Inf. Inputs are assumed normalized; nothing is
// clamped below the poles.
func WebMercator(p domain.Point) (x, y float64) {
	x = p.Longitude * EarthRadiusMeters * math.Pi / 180

	switch {
	case p.Latitude >= 90:
		y = math.Inf(1)
	case p.Latitude <= -90:
		y = math.Inf(-1)
	default:
		y = math.Log(math.Tan((90+p.Latitude)*math.Pi/360)) * EarthRadiusMeters
	}
	return x, y
}

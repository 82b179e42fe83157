// Package geodesy holds the distance engine: the spherical (Haversine) and
// ellipsoidal (Vincenty) point-to-point distances, the Web Mercator
// projection, and the parallel whole-path aggregation.
//
// Earth models are plain read-only values passed explicitly into the
// functions that need them. There is no hidden global state; WGS84Sphere and
// WGS84 are the single source of truth for the constants.
package geodesy

import "math"

// Sphere is the spherical Earth model used by the Haversine formula.
type Sphere struct {
	// RadiusKm is the mean Earth radius in kilometers.
	RadiusKm float64
}

// Ellipsoid is the oblate Earth model used by Vincenty's inverse formula.
// Axis lengths are in meters.
type Ellipsoid struct {
	SemiMajorAxis float64
	SemiMinorAxis float64
	Flattening    float64
}

// EarthRadiusMeters is the equatorial radius used by the Web Mercator
// projection (EPSG:3857).
const EarthRadiusMeters = 6378137.0

// WGS84Sphere is the mean-radius spherical approximation.
var WGS84Sphere = Sphere{RadiusKm: 6371.0}

// WGS84 is the reference ellipsoid.
var WGS84 = Ellipsoid{
	SemiMajorAxis: 6378137.0,
	SemiMinorAxis: 6356752.314245,
	Flattening:    (6378137.0 - 6356752.314245) / 6378137.0,
}

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

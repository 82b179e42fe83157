package geodesy

import (
	"errors"
	"math"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// ErrVincentyNotConverged is returned when the λ iteration does not settle
// within tolerance before the iteration cap. Near-antipodal pairs can trigger
// this; it is a known limitation of the classical formula and is surfaced to
// the caller rather than papered over with an approximation. The failure is
// deterministic for a given input, so retrying without changing the input
// will fail again.
var ErrVincentyNotConverged = errors.New("vincenty: iteration did not converge")

const (
	vincentyMaxIterations = 100
	vincentyTolerance     = 1e-12 // radians
)

// Vincenty returns the geodesic distance between two points on the ellipsoid
// surface, in meters, using Vincenty's inverse formula.
//
// The longitude difference λ is refined by fixed-point iteration. Coincident
// points are detected through sinσ == 0 on the first pass and return 0
// immediately; that check also guards the division by sinσ below it.
func Vincenty(p, q domain.Point, e Ellipsoid) (float64, error) {
	lat1 := DegreesToRadians(p.Latitude)
	lat2 := DegreesToRadians(q.Latitude)
	lonDiff := DegreesToRadians(q.Longitude - p.Longitude)

	f := e.Flattening

	// Reduced latitudes.
	u1 := math.Atan((1 - f) * math.Tan(lat1))
	u2 := math.Atan((1 - f) * math.Tan(lat2))

	sinU1, cosU1 := math.Sincos(u1)
	sinU2, cosU2 := math.Sincos(u2)

	lambda := lonDiff
	var sinSigma, cosSigma, sigma, cos2SigmaM float64

	for i := 0; ; i++ {
		if i == vincentyMaxIterations {
			return 0, ErrVincentyNotConverged
		}

		sinLambda, cosLambda := math.Sincos(lambda)

		sinSigma = math.Sqrt(
			(cosU2*sinLambda)*(cosU2*sinLambda) +
				(cosU1*sinU2-sinU1*cosU2*cosLambda)*(cosU1*sinU2-sinU1*cosU2*cosLambda))
		if sinSigma == 0 {
			// Coincident points on the ellipsoid surface.
			return 0, nil
		}

		cosSigma = sinU1*sinU2 + cosU1*cosU2*cosLambda
		sigma = math.Atan2(sinSigma, cosSigma)

		sinAlpha := cosU1 * cosU2 * sinLambda / sinSigma
		cos2SigmaM = 1 - sinAlpha*sinAlpha

		c := f / 16 * cos2SigmaM * (4 + f*(4-3*cos2SigmaM))

		lambdaPrev := lambda
		lambda = lonDiff + (1-c)*f*sinAlpha*
			(sigma+c*sinSigma*(cos2SigmaM+c*cosSigma*(-1+2*cos2SigmaM)))

		if math.Abs(lambda-lambdaPrev) < vincentyTolerance {
			break
		}
	}

	b := e.SemiMinorAxis
	uSquared := cos2SigmaM * (e.SemiMajorAxis*e.SemiMajorAxis - b*b) / (b * b)
	aTerm := 1 + uSquared/16384*(4096+uSquared*(-768+uSquared*(320-175*uSquared)))
	bTerm := uSquared / 1024 * (256 + uSquared*(-128+uSquared*(74-47*uSquared)))

	deltaSigma := bTerm * sinSigma *
		(cos2SigmaM + bTerm/4*
			(cosSigma*(-1+2*cos2SigmaM*cos2SigmaM)-
				bTerm/6*cos2SigmaM*(-3+4*sinSigma*sinSigma)*(-3+4*cos2SigmaM*cos2SigmaM)))

	return b * aTerm * (sigma - deltaSigma), nil
}

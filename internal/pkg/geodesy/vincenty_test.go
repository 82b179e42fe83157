package geodesy_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
)

func TestVincentySamePoint(t *testing.T) {
	p := domain.NewPoint(43.263, -2.935)

	got, err := geodesy.Vincenty(p, p, geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0 {
		t.Errorf("Vincenty(p, p) = %v, want 0", got)
	}
}

func TestVincentyMeridianArc(t *testing.T) {
	// One degree of latitude along the Greenwich meridian is roughly
	// 110.57 km near the equator.
	p := domain.NewPoint(0, 0)
	q := domain.NewPoint(1, 0)

	got, err := geodesy.Vincenty(p, q, geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got < 110_500 || got > 110_650 {
		t.Errorf("meridian arc = %v m, want within [110500, 110650]", got)
	}
}

func TestVincentySymmetric(t *testing.T) {
	p := domain.NewPoint(43.263, -2.935)
	q := domain.NewPoint(40.417, -3.703)

	ab, err := geodesy.Vincenty(p, q, geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := geodesy.Vincenty(q, p, geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(ab-ba) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", ab, ba)
	}
}

func TestVincentyAgreesWithHaversine(t *testing.T) {
	// The two models differ by the flattening, about 0.3% at most.
	p := domain.NewPoint(43.263, -2.935)
	q := domain.NewPoint(48.857, 2.352)

	ellipsoidal, err := geodesy.Vincenty(p, q, geodesy.WGS84)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	spherical := geodesy.Haversine(p, q, geodesy.WGS84Sphere) * 1000

	if rel := math.Abs(ellipsoidal-spherical) / spherical; rel > 0.01 {
		t.Errorf("vincenty %v m vs haversine %v m, relative diff %v > 1%%", ellipsoidal, spherical, rel)
	}
}

func TestVincentyNearAntipodalDoesNotConverge(t *testing.T) {
	// Classical failure mode of the inverse formula: for this nearly
	// antipodal pair the lambda iteration oscillates past the cap. The
	// fixture is deterministic; it must keep failing, not be approximated.
	p := domain.NewPoint(0, 0)
	q := domain.NewPoint(0.5, 179.5)

	_, err := geodesy.Vincenty(p, q, geodesy.WGS84)
	if !errors.Is(err, geodesy.ErrVincentyNotConverged) {
		t.Fatalf("error = %v, want ErrVincentyNotConverged", err)
	}
}

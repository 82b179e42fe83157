package geodesy

import (
	"fmt"
	"runtime"

	"github.com/sourcegraph/conc/pool"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// Methodology selects the per-segment distance used by PathDistance.
//
// Vincenty is deliberately not offered here: it stays a standalone
// point-to-point function because its convergence failure mode has no agreed
// aggregation semantics yet.
type Methodology int

const (
	// Euclidean measures each segment on a flat plane (unitless).
	Euclidean Methodology = iota
	// Spherical measures each segment with the Haversine formula (km).
	Spherical
)

// String returns the wire name of the methodology.
func (m Methodology) String() string {
	switch m {
	case Euclidean:
		return "euclidean"
	case Spherical:
		return "spherical"
	default:
		return fmt.Sprintf("methodology(%d)", int(m))
	}
}

// Unit returns the unit of the distances this methodology produces.
func (m Methodology) Unit() string {
	if m == Euclidean {
		return "degrees"
	}
	return "km"
}

// ParseMethodology maps a wire name to a Methodology. "haversine" is accepted
// as an alias for "spherical".
func ParseMethodology(s string) (Methodology, error) {
	switch s {
	case "euclidean":
		return Euclidean, nil
	case "spherical", "haversine":
		return Spherical, nil
	default:
		return 0, fmt.Errorf("unknown methodology %q", s)
	}
}

// PathDistance sums the chosen per-segment distance over the whole path.
//
// Segments are independent, so the per-segment work fans out over a
// fixed-size worker pool and the only synchronization point is the final sum.
// Floating-point addition is not associative and the summation order across
// workers is unspecified: results are reproducible only up to floating-point
// tolerance across runs and worker counts. Compare with a tolerance when
// summing more than a couple of segments.
//
// workers <= 0 selects runtime.GOMAXPROCS(0). An empty path is 0 under every
// methodology.
func PathDistance(p domain.Path, m Methodology, s Sphere, workers int) float64 {
	segments := p.Segments()
	if len(segments) == 0 {
		return 0
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	workerPool := pool.NewWithResults[float64]().WithMaxGoroutines(workers)
	for _, seg := range segments {
		seg := seg
		workerPool.Go(func() float64 {
			return segmentDistance(seg, m, s)
		})
	}

	var total float64
	for _, d := range workerPool.Wait() {
		total += d
	}
	return total
}

func segmentDistance(seg domain.Segment, m Methodology, s Sphere) float64 {
	if m == Euclidean {
		return seg.EuclideanDistance()
	}
	return Haversine(seg.Start, seg.End, s)
}

package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/core/ports"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
	"github.com/aldasoro/waymark/internal/pkg/metrics"
)

// DistanceService computes point-to-point distances under the three models
// and the Web Mercator projection.
type DistanceService struct {
	cache      ports.CacheService
	sphere     geodesy.Sphere
	ellipsoid  geodesy.Ellipsoid
	ttlSeconds int
}

// NewDistanceService creates a DistanceService using the WGS 84 constants.
// cache may be nil; caching is then skipped.
func NewDistanceService(cache ports.CacheService, ttlSeconds int) *DistanceService {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &DistanceService{
		cache:      cache,
		sphere:     geodesy.WGS84Sphere,
		ellipsoid:  geodesy.WGS84,
		ttlSeconds: ttlSeconds,
	}
}

// DistanceResult is the outcome of a point-to-point computation.
type DistanceResult struct {
	From     domain.Point `json:"from"`
	To       domain.Point `json:"to"`
	Method   string       `json:"method"`
	Distance float64      `json:"distance"`
	Unit     string       `json:"unit"`
}

// Between computes the distance between two points. method is one of
// "euclidean" (flat plane, degrees), "spherical"/"haversine" (great circle,
// km) or "vincenty" (ellipsoidal, meters). Vincenty non-convergence surfaces
// as geodesy.ErrVincentyNotConverged.
func (s *DistanceService) Between(ctx context.Context, from, to domain.Point, method string) (*DistanceResult, error) {
	cacheKey := fmt.Sprintf("distance:%s:%.6f:%.6f:%.6f:%.6f",
		method, from.Latitude, from.Longitude, to.Latitude, to.Longitude)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var res DistanceResult
			if err := json.Unmarshal(data, &res); err == nil {
				metrics.CacheHits.WithLabelValues("distance").Inc()
				return &res, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("distance").Inc()
	}

	res := &DistanceResult{From: from, To: to}
	switch method {
	case "euclidean":
		seg := domain.Segment{Start: from, End: to}
		res.Method, res.Unit = "euclidean", "degrees"
		res.Distance = seg.EuclideanDistance()
	case "spherical", "haversine":
		res.Method, res.Unit = "spherical", "km"
		res.Distance = geodesy.Haversine(from, to, s.sphere)
	case "vincenty":
		d, err := geodesy.Vincenty(from, to, s.ellipsoid)
		if err != nil {
			metrics.VincentyConvergenceFailures.Inc()
			return nil, fmt.Errorf("vincenty %s -> %s: %w", from, to, err)
		}
		res.Method, res.Unit = "vincenty", "m"
		res.Distance = d
	default:
		return nil, fmt.Errorf("unknown distance method %q", method)
	}
	metrics.DistanceComputations.WithLabelValues(res.Method).Inc()

	if s.cache != nil {
		if data, err := json.Marshal(res); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttlSeconds)
		}
	}

	return res, nil
}

// Projection is a point expressed in Web Mercator meters.
type Projection struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project converts a WGS 84 point to Web Mercator. Pure and total; latitudes
// at or beyond the poles yield an infinite y, which callers must render
// explicitly (IEEE infinities have no JSON encoding).
func (s *DistanceService) Project(p domain.Point) Projection {
	x, y := geodesy.WebMercator(p)
	return Projection{X: x, Y: y}
}

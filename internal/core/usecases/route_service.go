package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/core/ports"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
	"github.com/aldasoro/waymark/internal/pkg/metrics"
)

// RouteService manages stored routes and measures them.
type RouteService struct {
	routes     ports.RouteRepository
	cache      ports.CacheService
	events     ports.EventPublisher
	sphere     geodesy.Sphere
	workers    int
	ttlSeconds int
}

// NewRouteService creates a RouteService. cache and events may be nil; the
// corresponding steps are then skipped. workers bounds the measurement
// worker pool (<= 0 means one worker per CPU).
func NewRouteService(routes ports.RouteRepository, cache ports.CacheService, events ports.EventPublisher, workers, ttlSeconds int) *RouteService {
	if ttlSeconds <= 0 {
		ttlSeconds = 300
	}
	return &RouteService{
		routes:     routes,
		cache:      cache,
		events:     events,
		sphere:     geodesy.WGS84Sphere,
		workers:    workers,
		ttlSeconds: ttlSeconds,
	}
}

// Create validates the route's polyline and persists it. Geometry invariants
// are enforced before anything touches storage: a repeated adjacent
// coordinate fails as a degenerate segment, a broken adjacency as a
// disconnected path. Both surface unchanged so callers can inspect them.
func (s *RouteService) Create(ctx context.Context, route *domain.Route) error {
	if route.Slug == "" {
		return fmt.Errorf("route slug must not be empty")
	}
	if len(route.Coordinates) < 2 {
		return fmt.Errorf("route needs at least 2 coordinates, got %d", len(route.Coordinates))
	}
	if _, err := route.Path(); err != nil {
		return err
	}
	return s.routes.Create(ctx, route)
}

// GetByID returns a single route.
func (s *RouteService) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	return s.routes.GetByID(ctx, id)
}

// GetBySlug returns a single route by its slug.
func (s *RouteService) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	return s.routes.GetBySlug(ctx, slug)
}

// List returns all routes.
func (s *RouteService) List(ctx context.Context) ([]domain.Route, error) {
	return s.routes.List(ctx)
}

// Delete removes a route and drops its cached measurements.
func (s *RouteService) Delete(ctx context.Context, id string) error {
	if err := s.routes.Delete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		for _, m := range []geodesy.Methodology{geodesy.Euclidean, geodesy.Spherical} {
			_ = s.cache.Delete(ctx, measurementCacheKey(id, m))
		}
	}
	return nil
}

// Measure computes the total distance of a stored route under the chosen
// methodology ("euclidean" or "spherical"). The per-segment computation runs
// on the fixed-size worker pool; a successful measurement is cached and
// published as an event. Publish failures are logged, never fatal.
func (s *RouteService) Measure(ctx context.Context, id, methodology string) (*domain.Measurement, error) {
	method, err := geodesy.ParseMethodology(methodology)
	if err != nil {
		return nil, err
	}

	cacheKey := measurementCacheKey(id, method)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var m domain.Measurement
			if err := json.Unmarshal(data, &m); err == nil {
				metrics.CacheHits.WithLabelValues("measurement").Inc()
				return &m, nil
			}
		}
		metrics.CacheMisses.WithLabelValues("measurement").Inc()
	}

	route, err := s.routes.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load route %s: %w", id, err)
	}

	path, err := route.Path()
	if err != nil {
		// Stored coordinates that no longer form a valid path indicate
		// corrupted data; surface the invariant violation as-is.
		return nil, err
	}

	start := time.Now()
	distance := geodesy.PathDistance(path, method, s.sphere, s.workers)
	metrics.PathMeasureDuration.WithLabelValues(method.String()).Observe(time.Since(start).Seconds())

	m := &domain.Measurement{
		RouteID:     route.ID,
		Slug:        route.Slug,
		Methodology: method.String(),
		Distance:    distance,
		Unit:        method.Unit(),
		Segments:    path.Len(),
		MeasuredAt:  time.Now().UTC(),
	}

	if s.cache != nil {
		if data, err := json.Marshal(m); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, s.ttlSeconds)
		}
	}

	if s.events != nil {
		if err := s.events.PublishMeasurement(ctx, m); err != nil {
			slog.Warn("publish measurement failed", "route_id", route.ID, "error", err)
		}
	}

	return m, nil
}

func measurementCacheKey(id string, m geodesy.Methodology) string {
	return fmt.Sprintf("routes:measure:%s:%s", id, m)
}

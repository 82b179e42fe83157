package usecases_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/core/usecases"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
)

// --- Mock CacheService ---

type mockCache struct {
	getFn    func(ctx context.Context, key string) ([]byte, error)
	setFn    func(ctx context.Context, key string, value []byte, ttlSeconds int) error
	deleteFn func(ctx context.Context, key string) error
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, errors.New("miss")
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value, ttlSeconds)
	}
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, key)
	}
	return nil
}

// --- Tests ---

func TestDistanceService_Euclidean(t *testing.T) {
	svc := usecases.NewDistanceService(nil, 0)

	res, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(3, 4), "euclidean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Distance != 5.0 {
		t.Errorf("distance = %v, want 5.0", res.Distance)
	}
	if res.Unit != "degrees" {
		t.Errorf("unit = %q, want degrees", res.Unit)
	}
}

func TestDistanceService_HaversineAlias(t *testing.T) {
	svc := usecases.NewDistanceService(nil, 0)

	res, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(0, 1), "haversine")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Method != "spherical" {
		t.Errorf("method = %q, want spherical", res.Method)
	}
	want := geodesy.WGS84Sphere.RadiusKm * math.Pi / 180
	if math.Abs(res.Distance-want) > 0.001 {
		t.Errorf("distance = %v, want %v within 0.001", res.Distance, want)
	}
}

func TestDistanceService_VincentyNonConvergence(t *testing.T) {
	svc := usecases.NewDistanceService(nil, 0)

	_, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(0.5, 179.5), "vincenty")
	if !errors.Is(err, geodesy.ErrVincentyNotConverged) {
		t.Fatalf("error = %v, want ErrVincentyNotConverged", err)
	}
}

func TestDistanceService_UnknownMethod(t *testing.T) {
	svc := usecases.NewDistanceService(nil, 0)

	if _, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(1, 1), "cartesian"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestDistanceService_CachesResult(t *testing.T) {
	var storedKey string
	cache := &mockCache{
		setFn: func(ctx context.Context, key string, value []byte, ttlSeconds int) error {
			storedKey = key
			if ttlSeconds != 60 {
				t.Errorf("ttl = %d, want 60", ttlSeconds)
			}
			return nil
		},
	}
	svc := usecases.NewDistanceService(cache, 60)

	if _, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(3, 4), "euclidean"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if storedKey == "" {
		t.Error("result was not cached")
	}
}

func TestDistanceService_CacheHitSkipsComputation(t *testing.T) {
	cache := &mockCache{
		getFn: func(ctx context.Context, key string) ([]byte, error) {
			return []byte(`{"method":"euclidean","distance":42,"unit":"degrees"}`), nil
		},
	}
	svc := usecases.NewDistanceService(cache, 60)

	res, err := svc.Between(context.Background(), domain.NewPoint(0, 0), domain.NewPoint(3, 4), "euclidean")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Distance != 42 {
		t.Errorf("distance = %v, want the cached 42", res.Distance)
	}
}

func TestDistanceService_Project(t *testing.T) {
	svc := usecases.NewDistanceService(nil, 0)

	proj := svc.Project(domain.NewPoint(0, 180))
	want := geodesy.EarthRadiusMeters * math.Pi
	if math.Abs(proj.X-want) > 1e-6 {
		t.Errorf("x = %v, want %v", proj.X, want)
	}

	polar := svc.Project(domain.NewPoint(90, 0))
	if !math.IsInf(polar.Y, 1) {
		t.Errorf("y at the pole = %v, want +Inf", polar.Y)
	}
}

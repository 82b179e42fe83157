package domain_test

import (
	"errors"
	"testing"

	"github.com/aldasoro/waymark/internal/core/domain"
)

func TestRoutePath(t *testing.T) {
	route := domain.Route{
		Slug: "test-route",
		Coordinates: []domain.Point{
			domain.NewPoint(0, 0),
			domain.NewPoint(3, 4),
			domain.NewPoint(6, 8),
		},
	}

	path, err := route.Path()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if path.Len() != 2 {
		t.Errorf("Len() = %d, want 2", path.Len())
	}
}

func TestRoutePathDuplicateCoordinate(t *testing.T) {
	route := domain.Route{
		Coordinates: []domain.Point{
			domain.NewPoint(0, 0),
			domain.NewPoint(0, 0),
			domain.NewPoint(3, 4),
		},
	}

	_, err := route.Path()
	var degenerate *domain.DegenerateSegmentError
	if !errors.As(err, &degenerate) {
		t.Fatalf("expected *DegenerateSegmentError, got %v", err)
	}
}

func TestRoutePathTooFewCoordinates(t *testing.T) {
	for _, coords := range [][]domain.Point{nil, {domain.NewPoint(1, 2)}} {
		route := domain.Route{Coordinates: coords}
		path, err := route.Path()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if path.Len() != 0 {
			t.Errorf("Len() = %d, want 0", path.Len())
		}
	}
}

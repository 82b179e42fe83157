package ports

import (
	"context"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// RouteRepository persists named polylines.
type RouteRepository interface {
	Create(ctx context.Context, route *domain.Route) error
	GetByID(ctx context.Context, id string) (*domain.Route, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Route, error)
	List(ctx context.Context) ([]domain.Route, error)
	Delete(ctx context.Context, id string) error
}

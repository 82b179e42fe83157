package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// ErrRouteNotFound is returned when a route id or slug matches nothing.
var ErrRouteNotFound = errors.New("route not found")

// RouteRepo implements ports.RouteRepository. Coordinates are stored as a
// JSONB array of {lat, lon} objects; the geometry invariants are enforced in
// the domain before anything reaches this layer.
type RouteRepo struct {
	db *DB
}

func NewRouteRepo(db *DB) *RouteRepo { return &RouteRepo{db: db} }

func (r *RouteRepo) Create(ctx context.Context, route *domain.Route) error {
	coords, err := json.Marshal(route.Coordinates)
	if err != nil {
		return fmt.Errorf("marshal coordinates: %w", err)
	}

	err = r.db.Pool.QueryRow(ctx, `
		INSERT INTO routes (slug, name, coordinates)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, route.Slug, route.Name, coords).Scan(&route.ID, &route.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert route: %w", err)
	}
	return nil
}

func (r *RouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	return r.getOne(ctx, `
		SELECT id, slug, name, coordinates, created_at
		FROM routes WHERE id = $1
	`, id)
}

func (r *RouteRepo) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	return r.getOne(ctx, `
		SELECT id, slug, name, coordinates, created_at
		FROM routes WHERE slug = $1
	`, slug)
}

func (r *RouteRepo) getOne(ctx context.Context, query, arg string) (*domain.Route, error) {
	var (
		route  domain.Route
		coords []byte
	)
	err := r.db.Pool.QueryRow(ctx, query, arg).
		Scan(&route.ID, &route.Slug, &route.Name, &coords, &route.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRouteNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(coords, &route.Coordinates); err != nil {
		return nil, fmt.Errorf("unmarshal coordinates: %w", err)
	}
	return &route, nil
}

func (r *RouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, slug, name, coordinates, created_at
		FROM routes ORDER BY slug
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var (
			route  domain.Route
			coords []byte
		)
		if err := rows.Scan(&route.ID, &route.Slug, &route.Name, &coords, &route.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(coords, &route.Coordinates); err != nil {
			return nil, fmt.Errorf("unmarshal coordinates: %w", err)
		}
		routes = append(routes, route)
	}
	return routes, rows.Err()
}

func (r *RouteRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM routes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRouteNotFound
	}
	return nil
}

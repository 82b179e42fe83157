package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	handler "github.com/aldasoro/waymark/internal/adapters/http"
	"github.com/aldasoro/waymark/internal/adapters/postgres"
	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/core/usecases"
)

// ---- Mocks ----

type mockRouteRepo struct {
	createFn    func(ctx context.Context, r *domain.Route) error
	getByIDFn   func(ctx context.Context, id string) (*domain.Route, error)
	getBySlugFn func(ctx context.Context, slug string) (*domain.Route, error)
	listFn      func(ctx context.Context) ([]domain.Route, error)
	deleteFn    func(ctx context.Context, id string) error
}

func (m *mockRouteRepo) Create(ctx context.Context, r *domain.Route) error {
	if m.createFn != nil {
		return m.createFn(ctx, r)
	}
	return nil
}
func (m *mockRouteRepo) GetByID(ctx context.Context, id string) (*domain.Route, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, postgres.ErrRouteNotFound
}
func (m *mockRouteRepo) GetBySlug(ctx context.Context, slug string) (*domain.Route, error) {
	if m.getBySlugFn != nil {
		return m.getBySlugFn(ctx, slug)
	}
	return nil, postgres.ErrRouteNotFound
}
func (m *mockRouteRepo) List(ctx context.Context) ([]domain.Route, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockRouteRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

// ---- Test helpers ----

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	d := &handler.Dependencies{
		Distances: usecases.NewDistanceService(nil, 0),
		Routes:    usecases.NewRouteService(&mockRouteRepo{}, nil, nil, 0, 0),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func testStoredRoute() *domain.Route {
	return &domain.Route{
		ID:   "r1",
		Slug: "test-route",
		Name: "Test Route",
		Coordinates: []domain.Point{
			domain.NewPoint(0, 0),
			domain.NewPoint(3, 4),
			domain.NewPoint(6, 8),
		},
	}
}

// ---- Distance handler tests ----

func TestDistance_Euclidean(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=0&from_lon=0&to_lat=3&to_lon=4&method=euclidean", nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Distance float64 `json:"distance"`
		Unit     string  `json:"unit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Distance != 5.0 {
		t.Errorf("expected distance 5.0, got %v", result.Distance)
	}
	if result.Unit != "degrees" {
		t.Errorf("expected unit degrees, got %s", result.Unit)
	}
}

func TestDistance_MissingParams(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=0&from_lon=0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDistance_BadNumber(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=abc&from_lon=0&to_lat=1&to_lon=1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDistance_UnknownMethod(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=0&from_lon=0&to_lat=1&to_lon=1&method=taxicab", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestDistance_VincentyNotConverged(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/distance?from_lat=0&from_lon=0&to_lat=0.5&to_lon=179.5&method=vincenty", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 422 {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
}

// ---- Projection handler tests ----

func TestProject_Origin(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/project?lat=0&lon=0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.X != 0 || result.Y != 0 {
		t.Errorf("expected origin, got (%v, %v)", result.X, result.Y)
	}
}

func TestProject_PoleRendersInfinityString(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/project?lat=90&lon=0", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Y any `json:"y"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Y != "Infinity" {
		t.Errorf("expected y to be the string Infinity, got %v", result.Y)
	}
}

// ---- Route handler tests ----

func TestCreateRoute_Success(t *testing.T) {
	var created *domain.Route
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Routes = usecases.NewRouteService(&mockRouteRepo{
			createFn: func(ctx context.Context, r *domain.Route) error {
				created = r
				return nil
			},
		}, nil, nil, 0, 0)
	})
	app := setupApp(deps)

	body := `{"slug":"camino","name":"Camino","coordinates":[{"lat":0,"lon":0},{"lat":1,"lon":1}]}`
	req := httptest.NewRequest("POST", "/v1/routes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 201 {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	if created == nil || created.Slug != "camino" {
		t.Errorf("route not stored: %+v", created)
	}
}

func TestCreateRoute_DegenerateSegment(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"slug":"bad","coordinates":[{"lat":1,"lon":1},{"lat":1,"lon":1}]}`
	req := httptest.NewRequest("POST", "/v1/routes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListRoutes_Pagination(t *testing.T) {
	routes := make([]domain.Route, 5)
	for i := range routes {
		routes[i] = domain.Route{ID: fmt.Sprintf("r%d", i), Slug: fmt.Sprintf("route-%d", i)}
	}
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Routes = usecases.NewRouteService(&mockRouteRepo{
			listFn: func(ctx context.Context) ([]domain.Route, error) { return routes, nil },
		}, nil, nil, 0, 0)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/routes?offset=2&limit=2", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.Route `json:"data"`
		Pagination struct {
			Offset int `json:"offset"`
			Limit  int `json:"limit"`
			Total  int `json:"total"`
		} `json:"pagination"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Pagination.Total != 5 {
		t.Errorf("expected total 5, got %d", result.Pagination.Total)
	}
	if len(result.Data) != 2 {
		t.Errorf("expected 2 routes in page, got %d", len(result.Data))
	}
	if result.Data[0].ID != "r2" {
		t.Errorf("expected first route r2, got %s", result.Data[0].ID)
	}
}

func TestGetRoute_NotFound(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/routes/missing", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestDeleteRoute_Success(t *testing.T) {
	deleted := ""
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Routes = usecases.NewRouteService(&mockRouteRepo{
			deleteFn: func(ctx context.Context, id string) error {
				deleted = id
				return nil
			},
		}, nil, nil, 0, 0)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("DELETE", "/v1/routes/r1", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 204 {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if deleted != "r1" {
		t.Errorf("expected delete of r1, got %q", deleted)
	}
}

func TestRouteDistance_Euclidean(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Routes = usecases.NewRouteService(&mockRouteRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Route, error) {
				return testStoredRoute(), nil
			},
		}, nil, nil, 0, 0)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("GET", "/v1/routes/r1/distance?method=euclidean", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var m domain.Measurement
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		t.Fatal(err)
	}
	if m.Distance != 10.0 {
		t.Errorf("expected distance 10.0, got %v", m.Distance)
	}
	if m.Segments != 2 {
		t.Errorf("expected 2 segments, got %d", m.Segments)
	}
}

func TestRouteDistance_UnknownMethod(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/routes/r1/distance?method=vincenty", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

// ---- Health tests ----

func TestHealth(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("GET", "/v1/health", nil)
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if result.Status != "healthy" {
		t.Errorf("expected healthy, got %s", result.Status)
	}
}

// ---- GraphQL tests ----

func TestGraphQL_Distance(t *testing.T) {
	app := setupApp(makeDeps())

	body := `{"query":"{ distance(from_lat: 0, from_lon: 0, to_lat: 3, to_lon: 4, method: \"euclidean\") { distance unit } }"}`
	req := httptest.NewRequest("POST", "/graphql", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, _ := app.Test(req, -1)
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data struct {
			Distance struct {
				Distance float64 `json:"distance"`
				Unit     string  `json:"unit"`
			} `json:"distance"`
		} `json:"data"`
		Errors []any `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatal(err)
	}
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected graphql errors: %v", result.Errors)
	}
	if result.Data.Distance.Distance != 5.0 {
		t.Errorf("expected 5.0, got %v", result.Data.Distance.Distance)
	}
}

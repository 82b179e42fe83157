package http

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/aldasoro/waymark/internal/adapters/postgres"
	"github.com/aldasoro/waymark/internal/core/domain"
	"github.com/aldasoro/waymark/internal/pkg/geodesy"
)

// queryFloat parses a required float query parameter.
func queryFloat(c *fiber.Ctx, name string) (float64, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, fmt.Errorf("%s query parameter is required", name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number, got %q", name, raw)
	}
	return v, nil
}

// geometryStatus maps a computation error to the right HTTP response.
// Invariant violations and convergence failures are caller problems, not
// server faults.
func geometryStatus(c *fiber.Ctx, err error) error {
	var (
		degenerate   *domain.DegenerateSegmentError
		disconnected *domain.DisconnectedPathError
	)
	switch {
	case errors.As(err, &degenerate), errors.As(err, &disconnected):
		return errBadRequest(c, err.Error())
	case errors.Is(err, geodesy.ErrVincentyNotConverged):
		return errUnprocessable(c, err.Error())
	case errors.Is(err, postgres.ErrRouteNotFound):
		return errNotFound(c, "route not found")
	default:
		return errInternal(c, err.Error())
	}
}

// DistanceHandler computes the distance between two points.
// GET /v1/distance?from_lat=&from_lon=&to_lat=&to_lon=&method=
func DistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var coords [4]float64
		for i, name := range []string{"from_lat", "from_lon", "to_lat", "to_lon"} {
			v, err := queryFloat(c, name)
			if err != nil {
				return errBadRequest(c, err.Error())
			}
			coords[i] = v
		}
		method := c.Query("method", "spherical")

		from := domain.NewPoint(coords[0], coords[1])
		to := domain.NewPoint(coords[2], coords[3])

		res, err := deps.Distances.Between(c.UserContext(), from, to, method)
		if err != nil {
			if errors.Is(err, geodesy.ErrVincentyNotConverged) {
				return errUnprocessable(c, err.Error())
			}
			return errBadRequest(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(res)
	}
}

// ProjectHandler converts a WGS 84 point to Web Mercator.
// GET /v1/project?lat=&lon=
func ProjectHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, err := queryFloat(c, "lat")
		if err != nil {
			return errBadRequest(c, err.Error())
		}
		lon, err := queryFloat(c, "lon")
		if err != nil {
			return errBadRequest(c, err.Error())
		}

		proj := deps.Distances.Project(domain.NewPoint(lat, lon))

		// IEEE infinities (poles) have no JSON representation; render them
		// as strings instead of failing the encode.
		y := any(proj.Y)
		if math.IsInf(proj.Y, 1) {
			y = "Infinity"
		} else if math.IsInf(proj.Y, -1) {
			y = "-Infinity"
		}

		return c.JSON(fiber.Map{"x": proj.X, "y": y})
	}
}

// createRouteRequest is the POST /v1/routes payload.
type createRouteRequest struct {
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Coordinates []domain.Point `json:"coordinates"`
}

// CreateRouteHandler stores a new route after validating its geometry.
// POST /v1/routes
func CreateRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req createRouteRequest
		if err := c.BodyParser(&req); err != nil {
			return errBadRequest(c, "invalid JSON body: "+err.Error())
		}

		route := &domain.Route{
			Slug:        req.Slug,
			Name:        req.Name,
			Coordinates: req.Coordinates,
		}
		if err := deps.Routes.Create(c.UserContext(), route); err != nil {
			return geometryStatus(c, err)
		}

		return c.Status(fiber.StatusCreated).JSON(route)
	}
}

// ListRoutesHandler returns all stored routes with offset/limit pagination.
// GET /v1/routes
func ListRoutesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		routes, err := deps.Routes.List(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}

		offset := c.QueryInt("offset", 0)
		limit := c.QueryInt("limit", 100)
		if offset < 0 {
			offset = 0
		}
		if limit <= 0 || limit > 200 {
			limit = 100
		}

		total := len(routes)
		if offset >= total {
			routes = nil
		} else {
			end := offset + limit
			if end > total {
				end = total
			}
			routes = routes[offset:end]
		}

		pg := Pagination{Offset: offset, Limit: limit, Total: total}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: routes, Pagination: pg})
	}
}

// GetRouteHandler returns a route by ID.
// GET /v1/routes/:id
func GetRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "route id is required")
		}

		route, err := deps.Routes.GetByID(c.UserContext(), id)
		if err != nil {
			return geometryStatus(c, err)
		}
		return c.JSON(route)
	}
}

// DeleteRouteHandler removes a route.
// DELETE /v1/routes/:id
func DeleteRouteHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "route id is required")
		}

		if err := deps.Routes.Delete(c.UserContext(), id); err != nil {
			return geometryStatus(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RouteDistanceHandler measures the total distance of a stored route.
// GET /v1/routes/:id/distance?method=
func RouteDistanceHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "route id is required")
		}
		method := c.Query("method", "spherical")
		if _, err := geodesy.ParseMethodology(method); err != nil {
			return errBadRequest(c, err.Error())
		}

		m, err := deps.Routes.Measure(c.UserContext(), id, method)
		if err != nil {
			if errors.Is(err, postgres.ErrRouteNotFound) {
				return errNotFound(c, "route not found")
			}
			return geometryStatus(c, err)
		}

		c.Set("Cache-Control", "public, max-age=60")
		return c.JSON(m)
	}
}

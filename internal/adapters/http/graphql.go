package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"

	"github.com/aldasoro/waymark/internal/core/domain"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	pointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	routeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Route",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"coordinates": &graphql.Field{Type: graphql.NewList(pointType)},
			"created_at":  &graphql.Field{Type: graphql.String},
		},
	})

	distanceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Distance",
		Fields: graphql.Fields{
			"from":     &graphql.Field{Type: pointType},
			"to":       &graphql.Field{Type: pointType},
			"method":   &graphql.Field{Type: graphql.String},
			"distance": &graphql.Field{Type: graphql.Float},
			"unit":     &graphql.Field{Type: graphql.String},
		},
	})

	projectionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Projection",
		Fields: graphql.Fields{
			"x": &graphql.Field{Type: graphql.Float},
			"y": &graphql.Field{Type: graphql.Float},
		},
	})

	measurementType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Measurement",
		Fields: graphql.Fields{
			"route_id":    &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"methodology": &graphql.Field{Type: graphql.String},
			"distance":    &graphql.Field{Type: graphql.Float},
			"unit":        &graphql.Field{Type: graphql.String},
			"segments":    &graphql.Field{Type: graphql.Int},
			"measured_at": &graphql.Field{Type: graphql.String},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"distance": &graphql.Field{
				Type:        distanceType,
				Description: "Distance between two points",
				Args: graphql.FieldConfigArgument{
					"from_lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"from_lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"to_lat":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"to_lon":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"method":   &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "spherical"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					from := domain.NewPoint(p.Args["from_lat"].(float64), p.Args["from_lon"].(float64))
					to := domain.NewPoint(p.Args["to_lat"].(float64), p.Args["to_lon"].(float64))
					method := p.Args["method"].(string)
					return deps.Distances.Between(p.Context, from, to, method)
				},
			},
			"project": &graphql.Field{
				Type:        projectionType,
				Description: "Web Mercator projection of a point",
				Args: graphql.FieldConfigArgument{
					"lat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					pt := domain.NewPoint(p.Args["lat"].(float64), p.Args["lon"].(float64))
					return deps.Distances.Project(pt), nil
				},
			},
			"route": &graphql.Field{
				Type:        routeType,
				Description: "Get a route by ID",
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.GetByID(p.Context, p.Args["id"].(string))
				},
			},
			"routeBySlug": &graphql.Field{
				Type:        routeType,
				Description: "Get a route by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.GetBySlug(p.Context, p.Args["slug"].(string))
				},
			},
			"routes": &graphql.Field{
				Type:        graphql.NewList(routeType),
				Description: "List all routes",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.List(p.Context)
				},
			},
			"routeDistance": &graphql.Field{
				Type:        measurementType,
				Description: "Measure the total distance of a stored route",
				Args: graphql.FieldConfigArgument{
					"id":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"method": &graphql.ArgumentConfig{Type: graphql.String, DefaultValue: "spherical"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Routes.Measure(p.Context, p.Args["id"].(string), p.Args["method"].(string))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}

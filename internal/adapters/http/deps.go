package http

import (
	"github.com/nats-io/nats.go"

	"github.com/aldasoro/waymark/internal/adapters/postgres"
	"github.com/aldasoro/waymark/internal/adapters/valkey"
	"github.com/aldasoro/waymark/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Distances *usecases.DistanceService
	Routes    *usecases.RouteService
	NATS      *nats.Conn
	DB        *postgres.DB
	Cache     *valkey.Cache
}

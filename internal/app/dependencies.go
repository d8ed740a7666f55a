package app

import (
	"database/sql"

	"github.com/planora/planora/pkg/event"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventRepo    event.Repository
	EventService event.Service
	EventHandler *event.Handler
	Seeder       *event.Seeder
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *sql.DB) *Dependencies {
	deps := &Dependencies{}

	deps.EventRepo = event.NewRepository(db)
	deps.EventService = event.NewService(deps.EventRepo)
	deps.EventHandler = event.NewHandler(deps.EventService)
	deps.Seeder = event.NewSeeder(deps.EventRepo)

	return deps
}

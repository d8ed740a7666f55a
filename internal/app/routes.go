package app

import (
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Events
	r.HandleFunc("/api/events/single", deps.EventHandler.CreateSingleEvent).Methods("POST")
	r.HandleFunc("/api/events/cyclic", deps.EventHandler.CreateCyclicEvent).Methods("POST")
	r.HandleFunc("/api/events/all", deps.EventHandler.FindAll).Methods("GET")
	r.HandleFunc("/api/events", deps.EventHandler.GetEventsForDate).Methods("GET")
	r.HandleFunc("/api/events/{id}", deps.EventHandler.UpdateEvent).Methods("PUT")

	// API documentation
	r.PathPrefix("/swagger/").Handler(httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))
}

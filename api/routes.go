package api

import (
	"github.com/gorilla/mux"
)

func SetupRoutes(router *mux.Router, handlers *Handlers) {
	// API version prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Graph dataset management endpoints
	graphs := api.PathPrefix("/graphs").Subrouter()
	graphs.HandleFunc("", handlers.ListGraphs).Methods("GET")
	graphs.HandleFunc("", handlers.UploadGraph).Methods("POST")
	graphs.HandleFunc("/{graphId}", handlers.GetGraph).Methods("GET")
	graphs.HandleFunc("/{graphId}", handlers.DeleteGraph).Methods("DELETE")

	// Analysis endpoints; ?label= selects a hierarchy subgraph
	graphs.HandleFunc("/{graphId}/statistics", handlers.GetStatistics).Methods("GET")
	graphs.HandleFunc("/{graphId}/peeling", handlers.GetPeeling).Methods("GET")
	graphs.HandleFunc("/{graphId}/adjacency", handlers.SaveAdjacency).Methods("POST")
	graphs.HandleFunc("/{graphId}/pagerank", handlers.GetPageRank).Methods("GET")

	// Visualization export endpoint
	graphs.HandleFunc("/{graphId}/vis", handlers.GetVis).Methods("GET")

	// Health check endpoint
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")
}

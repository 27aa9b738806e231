package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"graph-stats-backend/analysis"
	"graph-stats-backend/api"
	"graph-stats-backend/config"
	"graph-stats-backend/service"
)

func main() {
	// Initialize structured logging with zerolog
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	log.Info().Msg("Starting Graph Statistics Backend")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel()); err == nil {
		zerolog.SetGlobalLevel(level)
	}

	log.Info().
		Str("address", cfg.Address()).
		Str("peeling_binary", cfg.PeelingBinary()).
		Dur("peeling_timeout", cfg.PeelingTimeout()).
		Msg("Configuration loaded")

	// Initialize services with dependency injection (follow dependency order)
	analyzer := analysis.NewAnalyzer(exactPeeler(cfg))
	graphService := service.NewGraphService(cfg.UploadDir())
	analysisService := service.NewAnalysisService(graphService, analyzer)
	visService := service.NewVisualizationService(graphService)

	log.Info().Msg("Services initialized")

	// Initialize API handlers with all services
	handlers := api.NewHandlers(graphService, analysisService, visService)

	// Setup router with RESTful routes
	router := mux.NewRouter()
	api.SetupRoutes(router, handlers)

	// Add middleware stack
	router.Use(api.LoggingMiddleware)
	router.Use(api.RecoveryMiddleware)

	// Create HTTP server with proper timeouts
	server := &http.Server{
		Addr:         cfg.Address(),
		Handler:      cors.AllowAll().Handler(router),
		ReadTimeout:  cfg.ReadTimeout(),
		WriteTimeout: cfg.WriteTimeout(),
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("address", cfg.Address()).
			Msg("HTTP server starting")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server shutdown complete")
}

// exactPeeler selects the exact peeling backend. The in-process bucket
// peeler is the default; the external peeling binary is used only when a
// path to one is configured.
func exactPeeler(cfg *config.Config) analysis.Peeler {
	if bin := cfg.PeelingBinary(); bin != "" {
		log.Info().Str("binary", bin).Msg("Using external peeling process")
		return analysis.NewProcessPeeler(bin, cfg.PeelingTimeout())
	}
	return analysis.NewBucketPeeler()
}

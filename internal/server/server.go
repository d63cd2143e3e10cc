// Package server provides the HTTP server for the review analytics API.
// It handles routing, middleware configuration, and server lifecycle management.
//
// The server package follows a structured initialization approach with dependency
// injection and proper lifecycle management. Initialization runs in a fixed
// order: database, auth providers, repositories, services, handlers, routes.
package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/auth"
	"github.com/etbank-analytics/bankreviews-backend/internal/config"
	"github.com/etbank-analytics/bankreviews-backend/internal/constants"
	"github.com/etbank-analytics/bankreviews-backend/internal/database"
	"github.com/etbank-analytics/bankreviews-backend/internal/handlers"
	"github.com/etbank-analytics/bankreviews-backend/internal/repository"
	"github.com/etbank-analytics/bankreviews-backend/internal/service"
	"github.com/etbank-analytics/bankreviews-backend/migrations"
	"github.com/etbank-analytics/bankreviews-backend/scripts"
)

// Handlers contains all HTTP handlers for the application.
// It centralizes handler management for consistent request processing
// and simplifies dependency injection throughout the application.
type Handlers struct {
	// IngestHandler manages the raw review ingest endpoint
	IngestHandler *handlers.IngestHandler

	// EnrichmentHandler manages the enrichment apply endpoint
	EnrichmentHandler *handlers.EnrichmentHandler

	// BankHandler manages bank reference data endpoints
	BankHandler *handlers.BankHandler

	// ThemeHandler manages theme taxonomy endpoints
	ThemeHandler *handlers.ThemeHandler

	// InsightHandler manages read-only analytics endpoints
	InsightHandler *handlers.InsightHandler

	// VerificationHandler manages data quality endpoints
	VerificationHandler *handlers.VerificationHandler
}

// Server represents the API server for the review analytics backend.
// It encapsulates all server components and handles server lifecycle
// management, including initialization, startup, and graceful shutdown.
type Server struct {
	// Config contains application configuration
	Config *config.AppConfig

	// Db provides database access
	Db *database.Pool

	// router handles HTTP routing
	router chi.Router

	// Handlers contains all HTTP request handlers
	Handlers *Handlers

	// tokenService issues and validates service tokens for the batch
	// pipelines that call the mutating endpoints
	tokenService *auth.TokenService

	// httpServer is the underlying HTTP server
	httpServer *http.Server
}

// repositories holds all repositories used by the server.
var repositories struct {
	bankRepo         repository.BankRepository
	themeRepo        repository.ThemeRepository
	reviewRepo       repository.ReviewRepository
	statsRepo        repository.StatsRepository
	verificationRepo repository.VerificationRepository
}

// services holds all services used by the server.
var services struct {
	ingestService       *service.IngestService
	enrichmentService   *service.EnrichmentService
	insightService      *service.InsightService
	verificationService *service.VerificationService
}

// NewServer creates a new server instance with all required components.
// It initializes the database, authentication, repositories, services and
// handlers, then sets up the HTTP routes.
func NewServer(cfg *config.AppConfig) (*Server, error) {
	s := &Server{
		Config: cfg,
	}

	if err := s.setupDatabase(); err != nil {
		return nil, fmt.Errorf("failed to set up database: %w", err)
	}

	s.tokenService = auth.NewTokenService(&cfg.Auth)

	s.setupRepositories()
	s.setupServices()
	s.setupHandlers()

	s.SetupRoutes()

	s.httpServer = &http.Server{
		Addr:         cfg.Server.ServerAddress(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  constants.DefaultIdleTimeout,
	}

	return s, nil
}

// setupDatabase initializes the database connection and runs migrations.
// It ensures the schema is up to date and seeds the baseline theme taxonomy.
func (s *Server) setupDatabase() error {
	db, err := database.Connect(s.Config)
	if err != nil {
		return err
	}

	s.Db = db

	migrator := migrations.NewMigrator(db)
	if err := migrator.RunMigrations(context.Background()); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	seeder := scripts.NewSeeder(db)
	if err := seeder.SeedDatabase(context.Background()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	return nil
}

// setupRepositories initializes all data repositories.
func (s *Server) setupRepositories() {
	repositories.bankRepo = repository.NewBankRepository(s.Db)
	repositories.themeRepo = repository.NewThemeRepository(s.Db)
	repositories.reviewRepo = repository.NewReviewRepository(s.Db)
	repositories.statsRepo = repository.NewStatsRepository(s.Db)
	repositories.verificationRepo = repository.NewVerificationRepository(s.Db)
}

// setupServices initializes all business services.
func (s *Server) setupServices() {
	services.ingestService = service.NewIngestService(
		repositories.bankRepo,
		repositories.reviewRepo,
	)

	services.enrichmentService = service.NewEnrichmentService(
		repositories.reviewRepo,
		repositories.themeRepo,
		repositories.verificationRepo,
	)

	services.insightService = service.NewInsightService(
		repositories.statsRepo,
		s.Config.Insights,
	)

	services.verificationService = service.NewVerificationService(
		repositories.statsRepo,
		repositories.verificationRepo,
	)
}

// setupHandlers initializes all HTTP request handlers.
func (s *Server) setupHandlers() {
	s.Handlers = &Handlers{
		IngestHandler:       handlers.NewIngestHandler(services.ingestService),
		EnrichmentHandler:   handlers.NewEnrichmentHandler(services.enrichmentService),
		BankHandler:         handlers.NewBankHandler(repositories.bankRepo, repositories.reviewRepo),
		ThemeHandler:        handlers.NewThemeHandler(repositories.themeRepo),
		InsightHandler:      handlers.NewInsightHandler(services.insightService),
		VerificationHandler: handlers.NewVerificationHandler(services.verificationService),
	}
}

// Start starts the HTTP server and sets up signal handling for graceful
// shutdown. It blocks until the server fails or a shutdown signal arrives.
func (s *Server) Start() error {
	serverErrors := make(chan error, 1)

	go func() {
		log.Info().
			Str("address", s.Config.Server.ServerAddress()).
			Msg("Starting server")

		serverErrors <- s.httpServer.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info().
			Str("signal", sig.String()).
			Msg("Shutdown signal received")

		ctx, cancel := context.WithTimeout(context.Background(), s.Config.Server.ShutdownTimeout)
		defer cancel()

		if err := s.Shutdown(ctx); err != nil {
			if closeErr := s.httpServer.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the server, waiting for in-flight requests
// to complete before closing the database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info().Msg("Server stopped gracefully")

	s.Db.Close()
	log.Info().Msg("Database connection closed")

	return nil
}

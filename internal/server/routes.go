package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/etbank-analytics/bankreviews-backend/internal/middleware"
	"github.com/etbank-analytics/bankreviews-backend/internal/utils"
)

// SetupRoutes configures the routes for the application.
// It creates a router hierarchy with middleware and grouped routes
// according to functionality for organized API structure.
//
// The configured routes include:
// - Health check and version endpoints (unprotected)
// - Review ingest and enrichment endpoints (service token required)
// - Bank and theme reference data endpoints (service token for mutation)
// - Insight endpoints (unprotected, read only)
// - Verification endpoints (unprotected, read only)
func (s *Server) SetupRoutes() {
	r := chi.NewRouter()

	// Base middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.Recovery())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger())
	r.Use(middleware.SecurityHeaders())

	// Fallbacks keep unmatched requests inside the response envelope.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.NotFound(w, "")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.MethodNotAllowed(w)
	})

	// Health check and version routes (unprotected)
	r.Group(func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			err := s.Db.HealthCheck(r.Context())
			if err != nil {
				log.Error().Err(err).Msg("Health check failed")
				utils.Error(w, http.StatusServiceUnavailable, "service_unavailable", "Service is not healthy", nil)
				return
			}

			utils.JSON(w, http.StatusOK, map[string]string{
				"status":  "healthy",
				"version": s.Config.App.Version,
			})
		})

		r.Get("/version", func(w http.ResponseWriter, r *http.Request) {
			utils.JSON(w, http.StatusOK, map[string]string{
				"version":     s.Config.App.Version,
				"environment": s.Config.App.Environment,
			})
		})
	})

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Batch pipeline endpoints. Only the loader and the enrichment
		// pipeline hold service tokens, so these are write-protected.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireServiceToken(s.tokenService))
			r.Post("/reviews/ingest", s.Handlers.IngestHandler.IngestBatch)
			r.Post("/enrichment/apply", s.Handlers.EnrichmentHandler.ApplyBatch)
		})

		// Bank reference data
		r.Route("/banks", func(r chi.Router) {
			r.Get("/", s.Handlers.BankHandler.ListBanks)
			r.Get("/{id}", s.Handlers.BankHandler.GetBank)
			r.Get("/{id}/reviews", s.Handlers.BankHandler.ListBankReviews)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireServiceToken(s.tokenService))
				r.Post("/", s.Handlers.BankHandler.CreateBank)
				r.Put("/{id}", s.Handlers.BankHandler.UpdateBankApp)
				r.Delete("/{id}", s.Handlers.BankHandler.DeleteBank)
			})
		})

		// Theme taxonomy
		r.Route("/themes", func(r chi.Router) {
			r.Get("/", s.Handlers.ThemeHandler.ListThemes)
			r.Get("/{id}", s.Handlers.ThemeHandler.GetTheme)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireServiceToken(s.tokenService))
				r.Post("/", s.Handlers.ThemeHandler.CreateTheme)
				r.Delete("/{id}", s.Handlers.ThemeHandler.DeleteTheme)
			})
		})

		// Read-only insight endpoints
		r.Route("/insights", func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.Get("/kpis", s.Handlers.InsightHandler.GetKPIs)
			r.Get("/themes", s.Handlers.InsightHandler.GetThemeStats)
			r.Get("/drivers", s.Handlers.InsightHandler.GetDrivers)
			r.Get("/pain-points", s.Handlers.InsightHandler.GetPainPoints)
			r.Get("/rating-sentiment", s.Handlers.InsightHandler.GetRatingSentiment)
			r.Get("/evidence", s.Handlers.InsightHandler.GetEvidence)
			r.Get("/recommendations", s.Handlers.InsightHandler.GetRecommendations)
		})

		// Data quality endpoints
		r.Route("/verification", func(r chi.Router) {
			r.Use(chimiddleware.NoCache)
			r.Get("/summary", s.Handlers.VerificationHandler.GetSummary)
			r.Get("/orphans", s.Handlers.VerificationHandler.GetOrphans)
		})
	})

	s.router = r
}

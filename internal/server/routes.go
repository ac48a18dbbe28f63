package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"brandpulse/internal/db"
	"brandpulse/internal/handlers"
	"brandpulse/internal/handlers/api"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(database *db.DB, runner api.AnalysisRunner, notifier api.AlertNotifier) {
	// Initialize handlers
	analyzeHandler := api.NewAnalyzeHandler(runner, notifier, s.Cfg)
	analyticsHandler := api.NewAnalyticsHandler(database)
	dashboardAPIHandler := api.NewDashboardHandler(database)
	healthHandler := api.NewHealthHandler(database)
	pageHandler := handlers.NewDashboardHandler(database, s.Cfg)

	// JSON API routes
	s.App.Post("/api/analytics/analyze", analyzeHandler.Analyze)
	s.App.Get("/api/analytics/recent", analyticsHandler.Recent)
	s.App.Get("/api/analytics/:id", analyticsHandler.Get)
	s.App.Get("/api/dashboard", dashboardAPIHandler.Dashboard)
	s.App.Get("/api/dashboard/brand/:name", dashboardAPIHandler.Brand)
	s.App.Get("/api/health", healthHandler.Health)

	// Prometheus metrics
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Frontend routes
	s.App.Get("/", pageHandler.Index)
}

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/handlers"
	custommiddleware "github.com/avikeidar/Wealth-Dashboard-Backend/internal/api/middleware"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/auth"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/config"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

// Services bundles the service dependencies the router wires into handlers.
type Services struct {
	System     *service.SystemService
	Holding    *service.HoldingService
	Dashboard  *service.DashboardService
	Projection *service.ProjectionService
	Settings   *service.SettingsService
	Fx         *service.FxService
	Snapshot   *service.SnapshotService
	Auth       *auth.Manager
}

// NewRouter creates and configures the HTTP router
func NewRouter(svc Services, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Unauthenticated surface: login and liveness.
		authHandler := handlers.NewAuthHandler(svc.Auth)
		r.Post("/auth/login", authHandler.Login)

		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(svc.System)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		// Everything else requires a live session.
		r.Group(func(r chi.Router) {
			r.Use(custommiddleware.RequireSession(svc.Auth))

			r.Route("/holding", func(r chi.Router) {
				holdingHandler := handlers.NewHoldingHandler(svc.Holding, svc.Dashboard)
				r.Get("/", holdingHandler.Holdings)
				r.Post("/", holdingHandler.CreateHolding)
				r.Get("/groups", holdingHandler.NameGroups)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", holdingHandler.GetHolding)
					r.Put("/", holdingHandler.UpdateHolding)
					r.Delete("/", holdingHandler.DeleteHolding)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
				r.Get("/summary", dashboardHandler.Summary)
				r.Get("/groups", dashboardHandler.Groups)
				r.Get("/rollup", dashboardHandler.Rollup)
				r.Get("/liquidity", dashboardHandler.Liquidity)
				r.Get("/yield", dashboardHandler.Yield)
			})

			r.Route("/projection", func(r chi.Router) {
				projectionHandler := handlers.NewProjectionHandler(svc.Projection)
				r.Get("/", projectionHandler.Projection)
				r.Get("/settings", projectionHandler.Settings)
				r.Put("/settings", projectionHandler.UpdateSettings)
			})

			r.Route("/settings", func(r chi.Router) {
				settingsHandler := handlers.NewSettingsHandler(svc.Settings)
				r.Get("/liquidity", settingsHandler.Liquidity)
				r.Put("/liquidity", settingsHandler.UpdateLiquidity)
			})

			r.Route("/fx", func(r chi.Router) {
				fxHandler := handlers.NewFxHandler(svc.Fx)
				r.Get("/", fxHandler.Rates)
				r.Post("/refresh", fxHandler.Refresh)
				r.Post("/prices/refresh", fxHandler.RefreshPrices)
			})

			r.Route("/snapshot", func(r chi.Router) {
				snapshotHandler := handlers.NewSnapshotHandler(svc.Snapshot)
				r.Get("/", snapshotHandler.Snapshots)
				r.Post("/", snapshotHandler.CreateSnapshot)

				r.Route("/{uuid}", func(r chi.Router) {
					r.Use(custommiddleware.ValidateUUIDMiddleware)
					r.Get("/", snapshotHandler.GetSnapshot)
				})
			})

			refdataHandler := handlers.NewRefdataHandler()
			r.Get("/refdata", refdataHandler.Refdata)
		})
	})

	return r
}

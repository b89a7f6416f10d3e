package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/api"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/auth"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/config"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/database"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/jobs"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/marketdata"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/repository"
	"github.com/avikeidar/Wealth-Dashboard-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and apply pending migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	holdingRepo := repository.NewHoldingRepository(db)
	fxRepo := repository.NewFxRateRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Create market data clients
	ratesClient := marketdata.NewRatesClient(cfg.Fx.RateAPIBaseURL)
	quoteClient := marketdata.NewQuoteClient()

	// Create session manager
	sessionManager, err := auth.NewManager(cfg.Auth.Password, cfg.Auth.FernetKey, cfg.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("Failed to create session manager: %v", err)
	}

	// Create services
	systemService := service.NewSystemService(db)
	holdingService := service.NewHoldingService(db, holdingRepo)
	dashboardService := service.NewDashboardService(
		holdingRepo,
		fxRepo,
		settingsRepo,
		cfg.Fx.DisplayCurrency,
	)
	projectionService := service.NewProjectionService(db, dashboardService, settingsRepo)
	settingsService := service.NewSettingsService(db, settingsRepo)
	fxService := service.NewFxService(
		fxRepo,
		holdingRepo,
		ratesClient,
		quoteClient,
		cfg.Jobs.FetchConcurrency,
	)
	snapshotService := service.NewSnapshotService(snapshotRepo, holdingRepo, fxRepo)

	// Start the scheduled refresh jobs
	scheduler, err := jobs.NewScheduler(cfg.Jobs, fxService)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(api.Services{
		System:     systemService,
		Holding:    holdingService,
		Dashboard:  dashboardService,
		Projection: projectionService,
		Settings:   settingsService,
		Fx:         fxService,
		Snapshot:   snapshotService,
		Auth:       sessionManager,
	}, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"budget-explorer/internal/config"
	"budget-explorer/internal/handlers"
	"budget-explorer/internal/middleware"
	"budget-explorer/internal/repositories"
	"budget-explorer/internal/services"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg)

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err.Error())
		os.Exit(1)
	}

	repo, err := repositories.NewSnapshotRepository(cfg.Data.Dir)
	if err != nil {
		slog.Error("Failed to load budget snapshots", "data_dir", cfg.Data.Dir, "error", err.Error())
		os.Exit(1)
	}

	metrics := services.NewPrometheusMetrics()
	aggregator := services.NewAggregationService()
	grouper := services.NewPrefixGrouper()
	ranker := services.NewVariationRanker()

	drilldown := services.NewDrilldownService(grouper)
	drilldown.OnOpened(func(session *services.DrilldownSession) {
		metrics.IncrementCounter("drilldown.opened", map[string]string{
			"category": string(session.State.Levels[0].Category),
		})
		metrics.RecordGauge("drilldown.sessions.active", float64(drilldown.ActiveSessions()), nil)
	})
	drilldown.OnClosed(func(id uuid.UUID) {
		metrics.RecordGauge("drilldown.sessions.active", float64(drilldown.ActiveSessions()), nil)
	})

	clickRouter := services.NewClickRouter(drilldown)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiter(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
	}))

	healthHandler := handlers.NewHealthCheckHandler(repo)
	snapshotHandler := handlers.NewSnapshotHandler(repo, metrics)
	dashboardHandler := handlers.NewDashboardHandler(repo, aggregator, ranker, metrics)
	drilldownHandler := handlers.NewDrilldownHandler(clickRouter, drilldown, repo, metrics)
	adminHandler := handlers.NewAdminHandler(repo, metrics)

	e.GET("/health", healthHandler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")
	api.GET("/years", snapshotHandler.GetYears)
	api.GET("/sankey/:year", snapshotHandler.GetSankey)
	api.GET("/bilan/:year", snapshotHandler.GetBalanceSheet)
	api.GET("/breakdown/:year", dashboardHandler.GetBreakdown)
	api.GET("/variations", dashboardHandler.GetVariations)

	api.POST("/drilldown/click", drilldownHandler.Click)
	api.GET("/drilldown/:id", drilldownHandler.Get)
	api.POST("/drilldown/:id/drill", drilldownHandler.Drill)
	api.POST("/drilldown/:id/breadcrumb", drilldownHandler.Breadcrumb)
	api.DELETE("/drilldown/:id", drilldownHandler.Close)

	api.POST("/admin/cache/clear", adminHandler.ClearCache)

	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		slog.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err.Error())
		}
	}()

	slog.Info("Starting budget explorer API",
		"address", cfg.Server.Address(),
		"environment", cfg.Server.Environment,
		"years", len(repo.Years()))

	if err := e.Start(cfg.Server.Address()); err != nil && err != http.ErrServerClosed {
		slog.Error("Server error", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("Server stopped gracefully")
}

func setupLogging(cfg *config.Config) {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Logging.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/api/router"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/app/bootstrap"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/availability"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/booking"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/catalog"
	appconfig "github.com/FUAD-ALSHABIBI/mee-ad-app/internal/config"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/notify"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/observability/metrics"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/internal/schedule"
	"github.com/FUAD-ALSHABIBI/mee-ad-app/pkg/logging"
)

func main() {
	// Load .env in development; ignore when absent.
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting mee-ad booking API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Storage. Without DATABASE_URL the server runs on in-memory stores,
	// which is enough for local development and the demo widget.
	var (
		scheduleRepo schedule.Repository
		catalogRepo  catalog.Repository
		bookingRepo  booking.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := bootstrap.BuildPgxPool(ctx, cfg)
		if err != nil {
			logger.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
		if redisClient != nil {
			defer redisClient.Close()
		}

		scheduleRepo = bootstrap.BuildScheduleRepository(pool, redisClient, cfg, logger)
		catalogRepo = catalog.NewPostgresRepository(pool)
		bookingRepo = booking.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory storage")
		scheduleRepo = schedule.NewInMemoryRepository()
		catalogRepo = catalog.NewInMemoryRepository()
		bookingRepo = booking.NewInMemoryRepository()
	}

	loc := resolveLocation(cfg.BusinessTimezone, logger)

	metricsHandler, bookingMetrics := setupBookingMetrics()

	// Services
	availSvc := availability.NewService(scheduleRepo, bookingRepo, catalogRepo, cfg.BookingWindowDays, loc, logger)

	var confirmations booking.ConfirmationSender
	if sender := notify.NewSendGridSender(notify.SendGridConfig{
		APIKey:    cfg.SendGridAPIKey,
		FromEmail: cfg.SendGridFromEmail,
		FromName:  cfg.SendGridFromName,
	}, logger); sender != nil {
		confirmations = notify.NewService(sender, logger)
	} else {
		confirmations = notify.NewService(notify.NewStubEmailSender(logger), logger)
	}

	coordinator := booking.NewCoordinator(bookingRepo, availSvc, catalogRepo, confirmations, bookingMetrics, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:              logger,
		ScheduleHandler:     schedule.NewHandler(scheduleRepo, logger),
		CatalogHandler:      catalog.NewHandler(catalogRepo, logger),
		AvailabilityHandler: availability.NewHandler(availSvc, bookingMetrics, logger),
		BookingHandler:      booking.NewHandler(coordinator, logger),
		OwnerAuthSecret:     cfg.OwnerJWTSecret,
		MetricsHandler:      metricsHandler,
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		PublicRateLimit:     5,
		PublicRateBurst:     20,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// setupBookingMetrics registers booking metrics on a private registry and
// returns the scrape handler alongside the recorder.
func setupBookingMetrics() (http.Handler, *metrics.BookingMetrics) {
	registry := prometheus.NewRegistry()
	bookingMetrics := metrics.NewBookingMetrics(registry)
	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return handler, bookingMetrics
}

// resolveLocation loads the configured business timezone, falling back to
// UTC when the name is unknown.
func resolveLocation(name string, logger *logging.Logger) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		logger.Warn("unknown business timezone, falling back to UTC", "timezone", name)
		return time.UTC
	}
	return loc
}

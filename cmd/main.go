package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/citymap/internal/category"
	"github.com/UnknownOlympus/citymap/internal/config"
	"github.com/UnknownOlympus/citymap/internal/fetcher"
	"github.com/UnknownOlympus/citymap/internal/geodata"
	"github.com/UnknownOlympus/citymap/internal/metrics"
	"github.com/UnknownOlympus/citymap/internal/presenter"
	"github.com/UnknownOlympus/citymap/internal/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const pageTitle = "Smart Citizen"

// main is the entry point of the application.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// The POI source is chosen at runtime (Overpass by default, Google Places with an API key).
	provider, err := geodata.NewProvider(geodata.ProviderConfig{
		Type:    geodata.ProviderType(cfg.ProviderType),
		APIKey:  cfg.APIKey,
		BaseURL: cfg.ProviderURL,
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
	if err != nil {
		log.Fatalf("Failed to create POI provider: %v", err)
	}

	logger.InfoContext(ctx, "POI provider initialized", "type", cfg.ProviderType, "area", cfg.AreaName)

	registry := category.Default()
	poiFetcher := fetcher.NewService(logger, provider, cfg.ProviderType, appMetrics, cfg.Workers, cfg.AreaName)
	store := presenter.NewStore(registry, poiFetcher, logger, appMetrics)

	page := web.PageConfig{
		Title:       pageTitle,
		CenterLat:   cfg.Map.CenterLat,
		CenterLon:   cfg.Map.CenterLon,
		Zoom:        cfg.Map.Zoom,
		TileURL:     cfg.Map.TileURL,
		Attribution: cfg.Map.Attribution,
	}
	if cfg.LocateArea {
		locateCenter(ctx, logger, cfg.AreaName, &page)
	}

	handler := web.NewHandler(logger, registry, store, page)
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           web.NewRouter(logger, handler),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      writeTimeout(cfg.RequestTimeout, cfg.Workers, registry.Len()),
	}

	go startMonitoringServer(ctx, logger, reg, cfg.Port)
	go store.Run(ctx, cfg.SweepInterval, cfg.SessionTTL)

	go func() {
		logger.InfoContext(ctx, "Starting web server", "port", cfg.HTTPPort)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "Web server failed", "error", err)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Wait for the context to be canceled (e.g., by Ctrl+C).
	<-ctx.Done()

	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	const shutdownTimeout = 10 * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "Web server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

// writeTimeout bounds a toggle response, which waits for a whole fetch cycle. With fewer
// workers than categories a cycle runs in ceil(categories/workers) rounds of requestTimeout.
func writeTimeout(requestTimeout time.Duration, workers, categories int) time.Duration {
	const margin = 10 * time.Second

	rounds := 1
	if workers > 0 && categories > workers {
		rounds = (categories + workers - 1) / workers
	}

	return time.Duration(rounds)*requestTimeout + margin
}

// locateCenter replaces the configured map center with the geocoded center of the area.
// On failure the configured center is kept.
func locateCenter(ctx context.Context, log *slog.Logger, area string, page *web.PageConfig) {
	coords, err := geodata.NewNominatimLocator(log).Locate(ctx, area)
	if err != nil {
		log.WarnContext(ctx, "Failed to locate area, using configured map center", "area", area, "error", err)
		return
	}

	page.CenterLat = coords.Latitude
	page.CenterLon = coords.Longitude
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
//
// Parameters:
// - ctx: A context.Context for managing cancellation and timeouts.
// - log: A logger for logging server events and errors.
// - reg: A registry with Prometheus collectors.
// - port: The port number on which the server will listen.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelWarn,
			ReplaceAttr: dropTime,
		}))
	default:
		log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:       slog.LevelError,
			ReplaceAttr: dropTime,
		}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}

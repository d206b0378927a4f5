package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "github.com/i474232898/temperature-converter/internal/api/http"
	"github.com/i474232898/temperature-converter/internal/config"
	"github.com/i474232898/temperature-converter/internal/converter"
	"github.com/i474232898/temperature-converter/internal/observability"
	"github.com/i474232898/temperature-converter/internal/scheduler"
	"github.com/i474232898/temperature-converter/internal/store"
	"github.com/i474232898/temperature-converter/internal/usagelog"
	"github.com/i474232898/temperature-converter/internal/weather"
	"github.com/i474232898/temperature-converter/internal/weather/providers"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	if cfg.WeatherAPIKey == "" {
		log.Warn("WEATHERAPI_API_KEY is not set; zip lookups will fail")
	}

	// Shared HTTP client for outbound weather API calls.
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	var provider weather.Provider = providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIBaseURL, cfg.WeatherAPIKey, cfg.LookupRetries)
	if cfg.LookupCacheTTL > 0 {
		provider = weather.NewCachedProvider(provider, cfg.LookupCacheTTL, metrics)
		log.WithField("ttl", cfg.LookupCacheTTL).Info("zip lookup cache enabled")
	}

	// In-memory store with configured retention.
	memStore := store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge, nil)
	weatherSvc := weather.NewService(provider, memStore, log, metrics)

	history := usagelog.NewRecorder(usagelog.NewFileLog(cfg.HistoryFile), nil)
	conv := converter.NewService(weatherSvc, history, log, metrics)

	// Scheduler that periodically refreshes watched zip codes.
	sched := scheduler.New(cfg.WatchZips, cfg.FetchInterval, weatherSvc, log)
	if err := sched.Start(); err != nil {
		log.WithError(err).Fatal("failed to start scheduler")
	}
	defer sched.Stop()

	app := httpapi.NewApp(conv, weatherSvc, log)

	go func() {
		log.WithField("port", cfg.Port).Info("http server listening")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("shutdown complete")
}

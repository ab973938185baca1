package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/openclimb/cragcast/internal/api"
	"github.com/openclimb/cragcast/internal/config"
	"github.com/openclimb/cragcast/internal/dashboard"
	"github.com/openclimb/cragcast/internal/forecast"
	"github.com/openclimb/cragcast/internal/web"
	"github.com/openclimb/cragcast/pkg/logger"
)

var (
	// Version is injected at build time
	Version = "dev"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to configuration file (optional - will search in configs/ and root directory)")
	flag.Parse()

	// Load .env if present, so the API credential can live next to the binary
	// during development. A missing file is fine.
	_ = godotenv.Load()

	// Load configuration with fallback logic
	cfg, err := config.LoadWithFallback(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}
	cfg.ResolveAPIKey()

	// Create logger
	log, err := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("Starting CragCast server",
		logger.String("version", Version),
		logger.String("config_path", *configPath),
		logger.Int("locations", len(cfg.Locations)))

	if cfg.Forecast.APIKey == "" {
		// Not fatal: every request surfaces a descriptive error page until
		// the credential is provided.
		log.Warn("Forecast API credential not set",
			logger.String("env", cfg.Forecast.APIKeyEnv))
	}

	// Create the forecast pipeline
	forecastClient := forecast.NewClient(cfg.Forecast, log)
	forecastService := forecast.NewService(forecastClient, cfg.Locations, log)

	// Create the dashboard renderer
	renderer, err := dashboard.NewRenderer(cfg.Dashboard, log)
	if err != nil {
		log.Error("Failed to create dashboard renderer", logger.Error(err))
		os.Exit(1)
	}

	// Create the page renderer
	pages, err := web.NewRenderer(log)
	if err != nil {
		log.Error("Failed to create page renderer", logger.Error(err))
		os.Exit(1)
	}

	// Create API router
	handler := api.NewHandler(forecastService, renderer, pages, cfg, log)
	router := api.NewRouter(handler, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router.Routes(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutSecs) * time.Second,
	}

	go func() {
		log.Info("Starting HTTP server", logger.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error", logger.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", logger.Error(err))
	}

	log.Info("Server fully stopped")
}

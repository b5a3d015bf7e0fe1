package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/artglass/internal/api"
	"github.com/timmy/artglass/internal/config"
	"github.com/timmy/artglass/internal/imaging"
	"github.com/timmy/artglass/internal/logger"
	"github.com/timmy/artglass/internal/notify"
	"github.com/timmy/artglass/internal/repository"
	"github.com/timmy/artglass/internal/service"
	"github.com/timmy/artglass/internal/source"
	"github.com/timmy/artglass/internal/source/aic"
	"github.com/timmy/artglass/internal/source/cma"
	"github.com/timmy/artglass/internal/source/met"
	"github.com/timmy/artglass/internal/source/nga"
)

func main() {
	// Support CONFIG_PATH environment variable for packaged installs
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLog := logger.NewDefault()
	logger.SetDefaultLogger(appLog)
	defer logger.Sync()

	// Settings store (hotkey persistence for the platform shell)
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLog.Fatalf("Failed to initialize database: %v", err)
	}
	settingsRepo := repository.NewSettingsRepository(db)

	// Shared outbound client and museum sources
	client := source.NewHTTPClient(cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	downloader := imaging.NewDownloader(client)
	rng := source.DefaultRand()

	sources, err := buildSources(cfg, client, downloader, rng)
	if err != nil {
		appLog.Fatalf("Failed to build sources: %v", err)
	}
	if len(sources) == 0 {
		appLog.Fatal("No sources enabled")
	}

	orchestrator := service.NewOrchestrator(sources, rng, appLog)

	// Prefetch cache + background filler
	queue := service.NewPrefetchQueue(cfg.Prefetch.Capacity)
	prefetcher := service.NewPrefetcher(queue, orchestrator.FetchRandomArtwork, cfg.Prefetch.Interval, appLog)

	fillCtx, stopFill := context.WithCancel(context.Background())
	defer stopFill()
	go prefetcher.Run(fillCtx)

	// Facade
	bus := notify.NewBus(cfg.Notify.Buffer)
	history := service.NewHistory(cfg.History.MaxLen, cfg.History.TrimBy)
	artService := service.NewArtService(queue, history, orchestrator.FetchRandomArtwork, bus, appLog)

	router := api.SetupRouter(artService, settingsRepo, bus, cfg)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		appLog.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")
	stopFill()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatalf("Server forced to shutdown: %v", err)
	}

	appLog.Info("Server exited")
}

// buildSources assembles the enabled museum adapters in cascade order.
func buildSources(cfg *config.Config, client *resty.Client, downloader *imaging.Downloader, rng source.Rand) ([]source.Source, error) {
	var sources []source.Source

	if cfg.Sources.Met.Enabled {
		sources = append(sources, met.NewAdapter(client, downloader, rng))
	}
	if cfg.Sources.AIC.Enabled {
		sources = append(sources, aic.NewAdapter(client, downloader, rng, cfg.HTTP.UserAgent))
	}
	if cfg.Sources.CMA.Enabled {
		sources = append(sources, cma.NewAdapter(client, downloader, rng))
	}
	if cfg.Sources.NGA.Enabled {
		catalog, err := nga.LoadCatalog()
		if err != nil {
			return nil, err
		}
		sources = append(sources, nga.NewAdapter(catalog, downloader, rng))
	}

	return sources, nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/haneulsoft/timetable-backend/internal/catalog"
	"github.com/haneulsoft/timetable-backend/internal/config"
	"github.com/haneulsoft/timetable-backend/internal/database"
	"github.com/haneulsoft/timetable-backend/internal/handler"
	"github.com/haneulsoft/timetable-backend/internal/logger"
	"github.com/haneulsoft/timetable-backend/internal/repository"
	"github.com/haneulsoft/timetable-backend/internal/router"
	"github.com/haneulsoft/timetable-backend/internal/service"
	"github.com/haneulsoft/timetable-backend/internal/validator"
	"github.com/haneulsoft/timetable-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("year", cfg.CatalogYear).
		Str("term", cfg.CatalogTermCode).
		Msg("Starting Timetable Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Catalog Row Source ────────────────────────────────────────────
	var rowSource catalog.RowSource
	if cfg.CatalogSource == config.SourceFile {
		rowSource = catalog.NewFileSource(cfg.CatalogFile)
		log.Info().Str("file", cfg.CatalogFile).Msg("Using file catalog source")
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		rowSource = repository.NewCourseRowRepository(pool, cfg.CatalogYear, cfg.CatalogTermCode)
	}

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	keys := config.NewKeyBuilder(cfg)
	selectionRepo := repository.NewSelectionRepository(rdb, keys, log)

	// ─── Initialize Services ──────────────────────────────────────────
	catalogService := service.NewCatalogService(
		rowSource, cfg.CatalogYear, cfg.CatalogTermCode, cfg.ListLimit, log)
	plannerService := service.NewPlannerService(catalogService, selectionRepo, log)

	// ─── Load Catalog ──────────────────────────────────────────────────
	// The one-shot startup load. A failure here is terminal; there is no
	// retry, matching the rest of the error model.
	if err := catalogService.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load catalog")
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Catalog: handler.NewCatalogHandler(catalogService),
		Planner: handler.NewPlannerHandler(plannerService),
		WS:      handler.NewWSHandler(selectionRepo, plannerService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	refreshWorker := worker.NewRefreshWorker(catalogService, cfg.RefreshInterval, log)
	go refreshWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

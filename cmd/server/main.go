package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prashnalabs/papergen-backend/internal/config"
	"github.com/prashnalabs/papergen-backend/internal/contentgen"
	"github.com/prashnalabs/papergen-backend/internal/curriculum"
	"github.com/prashnalabs/papergen-backend/internal/database"
	"github.com/prashnalabs/papergen-backend/internal/handler"
	"github.com/prashnalabs/papergen-backend/internal/logger"
	"github.com/prashnalabs/papergen-backend/internal/paper"
	"github.com/prashnalabs/papergen-backend/internal/repository"
	"github.com/prashnalabs/papergen-backend/internal/router"
	"github.com/prashnalabs/papergen-backend/internal/service"
	"github.com/prashnalabs/papergen-backend/internal/validator"
	"github.com/prashnalabs/papergen-backend/internal/worker"
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
		Str("log_level", cfg.LogLevel).
		Msg("Starting PaperGen Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── External Collaborators ────────────────────────────────────────
	contentClient := contentgen.New(cfg.ContentAPIBaseURL, cfg.ContentAPIKey, log)

	// ─── Curriculum Resolution Chain ───────────────────────────────────
	curated, err := curriculum.NewCuratedProvider()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load curated syllabus tables")
	}
	chain := curriculum.NewChain(log,
		curated,
		curriculum.NewRemoteProvider(cfg.SyllabusAPIBaseURL, cfg.LookupTimeout, log),
		curriculum.NewLocalBoardProvider(),
		curriculum.NewLocalCBSEProvider(),
		curriculum.NewLocalNCERTProvider(),
	)
	resolver := curriculum.NewResolver(chain, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	paperRepo := repository.NewPaperRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	curriculumService := service.NewCurriculumService(resolver, rdb, cfg.ChapterCacheTTL, log)
	paperService := service.NewPaperService(paperRepo, contentClient, log)
	diagramService := service.NewDiagramService(paperRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Reference:  handler.NewReferenceHandler(),
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		Paper:      handler.NewPaperHandler(paperService),
		Diagram:    handler.NewDiagramHandler(diagramService, rdb, log),
		WS:         handler.NewWSHandler(rdb, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	orchestrator := paper.NewOrchestrator(contentClient, cfg.DiagramTimeout, log)
	diagramWorker := worker.NewDiagramWorker(paperRepo, rdb, orchestrator, log)

	go diagramWorker.Start(workerCtx)

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

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the background worker and let the current run wind down.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

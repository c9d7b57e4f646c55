package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kingsbal/kingsbal-backend/internal/ai"
	"github.com/kingsbal/kingsbal-backend/internal/config"
	"github.com/kingsbal/kingsbal-backend/internal/corpus"
	"github.com/kingsbal/kingsbal-backend/internal/database"
	"github.com/kingsbal/kingsbal-backend/internal/handler"
	"github.com/kingsbal/kingsbal-backend/internal/logger"
	"github.com/kingsbal/kingsbal-backend/internal/repository"
	"github.com/kingsbal/kingsbal-backend/internal/router"
	"github.com/kingsbal/kingsbal-backend/internal/service"
	"github.com/kingsbal/kingsbal-backend/internal/storage"
	"github.com/kingsbal/kingsbal-backend/internal/validator"
	"github.com/kingsbal/kingsbal-backend/internal/worker"
	"github.com/redis/go-redis/v9"
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
		Msg("Starting Kingsbal Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Resolve Storage Mode ──────────────────────────────────────────
	// Unlike a conventional deployment, PostgreSQL is optional here: with
	// no DATABASE_URL (or an unreachable one) the service runs in demo
	// mode off the bundled corpus. The decision is made once, at startup.
	store := storage.Resolve(ctx, cfg, log)
	defer store.Close()

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, results will be persisted synchronously")
			rdb = nil
		}
	}
	if rdb != nil {
		defer rdb.Close()
	}

	// ─── Load Question Corpus ──────────────────────────────────────────
	snapshot := corpus.Load(log)
	log.Info().Int("questions", snapshot.Count()).Msg("Question corpus loaded")

	// ─── Initialize Repositories & Services ────────────────────────────
	var (
		topicRepo    *repository.TopicRepository
		questionRepo *repository.QuestionRepository
	)
	if store.Persistent() {
		topicRepo = repository.NewTopicRepository(store.Pool())
		questionRepo = repository.NewQuestionRepository(store.Pool())
	}

	// Pick the result sink: queue through Redis when available, write
	// straight to PostgreSQL otherwise, drop silently in demo mode.
	var sink service.ResultSink
	switch {
	case store.Persistent() && rdb != nil:
		sink = worker.NewQueueSink(rdb)
	case store.Persistent():
		sink = worker.NewRepoSink(store.Pool())
	}

	examService := service.NewExamService(snapshot, store, questionRepo, sink, cfg, log)
	questionService := service.NewQuestionService(snapshot, store, questionRepo, log)
	curriculumService := service.NewCurriculumService(snapshot, store, topicRepo, log)

	// ─── AI Generator (optional) ───────────────────────────────────────
	var generator *ai.Generator
	if cfg.GeminiAPIKey != "" {
		g, err := ai.NewGenerator(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("AI generator unavailable")
		} else {
			generator = g
			defer generator.Close()
		}
	}

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Exam:       handler.NewExamHandler(examService),
		Question:   handler.NewQuestionHandler(questionService, snapshot),
		Curriculum: handler.NewCurriculumHandler(curriculumService),
		AI:         handler.NewAIHandler(generator),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	if store.Persistent() && rdb != nil {
		resultWorker := worker.NewResultWorker(store.Pool(), rdb, log)
		go resultWorker.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, store, cfg, log)

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

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

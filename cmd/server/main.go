package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/milan-codes/studician-api/internal/auth"
	"github.com/milan-codes/studician-api/internal/config"
	"github.com/milan-codes/studician-api/internal/database"
	"github.com/milan-codes/studician-api/internal/handler"
	"github.com/milan-codes/studician-api/internal/logger"
	"github.com/milan-codes/studician-api/internal/repository"
	"github.com/milan-codes/studician-api/internal/router"
	"github.com/milan-codes/studician-api/internal/service"
	"github.com/milan-codes/studician-api/internal/store"
	"github.com/milan-codes/studician-api/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreURL).
		Msg("Starting Studician API")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to Redis (optional token cache) ───────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			// The cache is an optimization; verification works without it.
			log.Warn().Err(err).Msg("Redis unavailable, token cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// ─── Store Client & Token Verifier ─────────────────────────────────
	st := store.New(cfg.StoreURL, cfg.StoreAuth, cfg.StoreTimeout, log)
	verifier := auth.NewIDTokenVerifier(cfg.AuthProjectID, cfg.AuthCertsURL, cfg.TokenCacheTTL, rdb, log)

	// ─── Initialize Repositories ───────────────────────────────────────
	subjectRepo := repository.NewSubjectRepository(st)
	lessonRepo := repository.NewLessonRepository(st)
	taskRepo := repository.NewTaskRepository(st)
	examRepo := repository.NewExamRepository(st)

	// ─── Initialize Services ──────────────────────────────────────────
	subjectService := service.NewSubjectService(subjectRepo, lessonRepo, taskRepo, examRepo, log)
	lessonService := service.NewLessonService(lessonRepo, subjectRepo, log)
	taskService := service.NewTaskService(taskRepo, subjectRepo, log)
	examService := service.NewExamService(examRepo, subjectRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Subject: handler.NewSubjectHandler(subjectService),
		Lesson:  handler.NewLessonHandler(lessonService),
		Task:    handler.NewTaskHandler(taskService),
		Exam:    handler.NewExamHandler(examService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(verifier, handlers, cfg)

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

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}

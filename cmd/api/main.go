package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gymlog/gymlog-go/internal/config"
	"github.com/gymlog/gymlog-go/internal/crypto"
	"github.com/gymlog/gymlog-go/internal/handler"
	"github.com/gymlog/gymlog-go/internal/logger"
	"github.com/gymlog/gymlog-go/internal/middleware"
	"github.com/gymlog/gymlog-go/internal/repository"
	"github.com/gymlog/gymlog-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Service: "gymlog-api",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	startupCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoClient, err := repository.NewMongoClient(startupCtx, cfg.MongoURI)
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongoClient.Disconnect(disconnectCtx); err != nil {
			log.Error("mongo disconnect", "error", err)
		}
	}()

	mongoDB := mongoClient.Database(cfg.MongoDatabase)
	if err := repository.EnsureIndexes(startupCtx, mongoDB); err != nil {
		return err
	}

	var users service.UserStore
	switch cfg.CredentialBackend {
	case config.BackendMySQL:
		db, err := repository.NewDB(cfg.MySQLDSN)
		if err != nil {
			return err
		}
		defer db.Close()

		if err := repository.ApplyMigrations(db); err != nil {
			return err
		}
		users = repository.NewUserRepository(db)
	default:
		users = repository.NewMongoUserRepository(mongoDB)
	}
	log.Info("credential store ready", "backend", cfg.CredentialBackend)

	authLimiter, closeLimiter, err := newAuthLimiter(ctx, startupCtx, cfg, log)
	if err != nil {
		return err
	}
	defer closeLimiter()

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService, err := service.NewAuthService(users, crypto.NewHasher(crypto.DefaultHashParams()), tokens)
	if err != nil {
		return fmt.Errorf("init auth service: %w", err)
	}
	workoutService := service.NewWorkoutService(repository.NewWorkoutRepository(mongoDB))

	srv := &http.Server{
		Addr: ":" + cfg.Port,
		Handler: handler.NewRouter(handler.RouterConfig{
			Auth:        handler.NewAuthHandler(authService),
			Workouts:    handler.NewWorkoutHandler(workoutService),
			Tokens:      tokens,
			AuthLimiter: authLimiter,
			Logger:      log,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}

// newAuthLimiter prefers a Redis-backed limiter shared across replicas and falls
// back to the in-process limiter when REDIS_ADDR is unset.
func newAuthLimiter(ctx, startupCtx context.Context, cfg config.Config, log *slog.Logger) (middleware.Limiter, func(), error) {
	if cfg.RedisAddr == "" {
		log.Info("auth rate limiter: in-process", "rps", cfg.AuthRateRPS, "burst", cfg.AuthRateBurst)
		return middleware.NewIPRateLimiter(ctx, cfg.AuthRateRPS, cfg.AuthRateBurst), func() {}, nil
	}

	rdb, err := repository.NewRedisClient(startupCtx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		return nil, nil, err
	}

	perMinute := int(cfg.AuthRateRPS * 60)
	if perMinute < cfg.AuthRateBurst {
		perMinute = cfg.AuthRateBurst
	}
	log.Info("auth rate limiter: redis", "addr", cfg.RedisAddr, "per_minute", perMinute)

	closeFn := func() {
		if err := rdb.Close(); err != nil {
			log.Error("redis close", "error", err)
		}
	}
	return middleware.NewRedisRateLimiter(rdb, "auth", perMinute, time.Minute), closeFn, nil
}

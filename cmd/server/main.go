package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ericfitz/userd/api"
	"github.com/ericfitz/userd/internal/config"
	"github.com/ericfitz/userd/internal/slogging"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	if err := run(*configFile); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}

func run(configFile string) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	if err := slogging.Initialize(slogging.Config{
		Level:            slogging.ParseLogLevel(cfg.Logging.Level),
		IsDev:            cfg.Logging.IsDev,
		LogDir:           cfg.Logging.LogDir,
		MaxAgeDays:       cfg.Logging.MaxAgeDays,
		MaxSizeMB:        cfg.Logging.MaxSizeMB,
		MaxBackups:       cfg.Logging.MaxBackups,
		AlsoLogToConsole: cfg.Logging.AlsoLogToConsole,
	}); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger := slogging.Get()
	defer func() { _ = logger.Close() }()

	if !cfg.Logging.IsDev {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limiter, cleanup, err := buildRateLimiter(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	store := api.NewInMemoryUserStore()
	server := api.NewServer(store, limiter)
	router := api.NewRouter(server)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("userd listening on %s (rate limit: %d/%s via %s)",
			srv.Addr, cfg.RateLimit.Limit, cfg.RateLimit.Window, cfg.RateLimit.Store)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}

// buildRateLimiter constructs the admission backend selected by config. The
// returned cleanup closes the Redis client when one was opened.
func buildRateLimiter(ctx context.Context, cfg *config.Config) (api.RateLimiter, func(), error) {
	switch cfg.RateLimit.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Redis.Addr(), err)
		}
		limiter := api.NewRedisRateLimiter(client, cfg.RateLimit.Window, cfg.RateLimit.Limit)
		return limiter, func() { _ = client.Close() }, nil
	default:
		limiter := api.NewSlidingWindowLimiter(cfg.RateLimit.Window, cfg.RateLimit.Limit)
		limiter.StartJanitor(ctx, cfg.RateLimit.SweepInterval)
		return limiter, func() {}, nil
	}
}

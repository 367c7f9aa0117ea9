// Command class-notes-server serves class-scoped study materials: public
// listing and search, plus an admin-gated upload/delete surface backed by
// MinIO blobs and PostgreSQL metadata.
package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/autumnrose0910/class-notes-project/handlers"
	"github.com/autumnrose0910/class-notes-project/internal/auth"
	"github.com/autumnrose0910/class-notes-project/internal/config"
	"github.com/autumnrose0910/class-notes-project/internal/database"
	"github.com/autumnrose0910/class-notes-project/internal/migrate"
	"github.com/autumnrose0910/class-notes-project/internal/notes/repository"
	"github.com/autumnrose0910/class-notes-project/internal/notes/service"
	"github.com/autumnrose0910/class-notes-project/internal/storage"
	"github.com/autumnrose0910/class-notes-project/pkg/metrics"
	"github.com/autumnrose0910/class-notes-project/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger := newLogger(cfg.Server.Environment)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
		logger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := database.ConnectPostgres(ctx, cfg.Database.DSN, cfg.Database.Timeout)
	if err != nil {
		logger.Fatal("postgres unavailable", zap.Error(err))
	}
	defer pool.Close()

	store, err := storage.NewMinIOStore(cfg.MinIO)
	if err != nil {
		logger.Fatal("object store unavailable", zap.Error(err))
	}

	gate := auth.NewGate(cfg.Auth.AdminPassword, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	classes := service.NewClasses(repository.NewClassRepo(pool))
	documents := service.NewDocuments(repository.NewDocumentRepo(pool), store, logger)
	resources := service.NewResources(repository.NewResourceRepo(pool))

	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.Server.CORSOrigins))

	if cfg.RateLimit.Enabled {
		r.Use(rateLimiter(cfg, logger))
	}

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	admin := middleware.RequireAdmin(gate)
	handlers.RegisterAuthRoutes(r, gate)
	handlers.RegisterClassRoutes(r, classes, admin)
	handlers.RegisterDocumentRoutes(r, documents, admin, cfg.Server.MaxUploadBytes)
	handlers.RegisterResourceRoutes(r, resources, admin)

	srv := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func newLogger(environment string) *zap.Logger {
	if environment == "development" {
		l, _ := zap.NewDevelopment()
		return l
	}
	l, _ := zap.NewProduction()
	return l
}

// rateLimiter picks the Redis-backed limiter when Redis is configured and
// reachable, otherwise the in-process token bucket.
func rateLimiter(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	if cfg.RateLimit.UseRedis && cfg.Redis.Host != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
		})
		if err := client.Ping(context.Background()).Err(); err != nil {
			logger.Warn("redis unreachable, using in-memory rate limiter", zap.Error(err))
		} else {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			return middleware.RedisRateLimitMiddleware(client, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		}
	}
	return middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		allowed[o] = true
	}
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

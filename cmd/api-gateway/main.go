package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/task-scheduler-api/internal/handler"
	"github.com/noah-isme/task-scheduler-api/internal/repository"
	"github.com/noah-isme/task-scheduler-api/internal/scheduler"
	"github.com/noah-isme/task-scheduler-api/internal/service"
	"github.com/noah-isme/task-scheduler-api/pkg/cache"
	"github.com/noah-isme/task-scheduler-api/pkg/config"
	"github.com/noah-isme/task-scheduler-api/pkg/database"
	"github.com/noah-isme/task-scheduler-api/pkg/jobs"
	"github.com/noah-isme/task-scheduler-api/pkg/logger"
	"github.com/noah-isme/task-scheduler-api/pkg/storage"
)

// @title Task Scheduler API
// @version 1.0.0
// @description Builds weekly schedules of recurring tasks inside availability windows.
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("database unavailable", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	checks := map[string]handler.Pinger{"postgres": db}
	metrics := service.NewMetricsService()

	var cacheRepo service.CacheRepository
	if cfg.Scheduler.CacheEnabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, result cache disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			cacheRepo = repository.NewCacheRepository(client)
			checks["redis"] = handler.PingFunc(func(ctx context.Context) error { return client.Ping(ctx).Err() })
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, "scheduler", cfg.Scheduler.CacheTTL, logr, cacheRepo != nil)

	engine := scheduler.NewEngine(scheduler.Config{TimeLimit: cfg.Scheduler.SolverTimeLimit}, logr)
	scheduleSvc := service.NewScheduleService(
		engine,
		repository.NewTaskRepository(db),
		repository.NewTimeSlotRepository(db),
		repository.NewScheduleRepository(db),
		db,
		cacheSvc,
		metrics,
		validator.New(),
		logr,
	)

	deps := routeDeps{
		cfg:       cfg,
		logger:    logr,
		metrics:   metrics,
		schedules: handler.NewScheduleHandler(scheduleSvc),
		health:    handler.NewMetricsHandler(metrics, checks),
	}
	if cfg.JWT.Enabled {
		deps.auth = service.NewAuthService(logr, service.AuthConfig{AccessTokenSecret: cfg.JWT.Secret, AccessTokenExpiry: cfg.JWT.Expiration})
	}

	if cfg.Exports.Enabled {
		exportSvc, shutdown, err := startExports(ctx, cfg, repository.NewScheduleRepository(db), metrics, logr)
		if err != nil {
			logr.Fatal("exports unavailable", zap.Error(err))
		}
		defer shutdown()
		deps.exports = handler.NewExportHandler(exportSvc)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

func startExports(ctx context.Context, cfg *config.Config, schedules *repository.ScheduleRepository, metrics *service.MetricsService, logr *zap.Logger) (*service.ExportService, func(), error) {
	files, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exportSvc := service.NewExportService(schedules, files, signer, metrics, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		JobTTL:    cfg.Exports.SignedURLTTL,
	}, logr)

	queue := jobs.NewQueue("exports", exportSvc.Process, jobs.QueueConfig{
		Workers:     cfg.Exports.WorkerConcurrency,
		MaxRetries:  cfg.Exports.WorkerRetries,
		RetryDelay:  2 * time.Second,
		OnExhausted: exportSvc.HandleExhausted,
		Logger:      logr,
	})
	queue.Start(ctx)
	exportSvc.SetQueue(queue)

	cleanup, err := exportSvc.StartCleanup(cfg.Exports.CleanupSchedule)
	if err != nil {
		queue.Stop()
		return nil, nil, err
	}
	return exportSvc, func() {
		<-cleanup.Stop().Done()
		queue.Stop()
	}, nil
}

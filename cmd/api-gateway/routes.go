package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/task-scheduler-api/api/swagger"
	"github.com/noah-isme/task-scheduler-api/internal/handler"
	"github.com/noah-isme/task-scheduler-api/internal/middleware"
	"github.com/noah-isme/task-scheduler-api/internal/models"
	"github.com/noah-isme/task-scheduler-api/internal/service"
	"github.com/noah-isme/task-scheduler-api/pkg/config"
	"github.com/noah-isme/task-scheduler-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/task-scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/task-scheduler-api/pkg/middleware/requestid"
)

type routeDeps struct {
	cfg       *config.Config
	logger    *zap.Logger
	metrics   *service.MetricsService
	auth      *service.AuthService
	schedules *handler.ScheduleHandler
	exports   *handler.ExportHandler
	health    *handler.MetricsHandler
}

func newRouter(deps routeDeps) *gin.Engine {
	cfg := deps.cfg
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(deps.logger))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))

	r.GET("/health", deps.health.Health)
	r.GET("/ready", deps.health.Ready)
	r.GET("/metrics", deps.health.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var validator middleware.TokenValidator
	if deps.auth != nil {
		validator = deps.auth
	}
	adminOnly := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(middleware.Protect(cfg.JWT.Enabled, validator, models.RoleAdmin), h)
	}

	api := r.Group(cfg.APIPrefix)
	limiter := middleware.NewRateLimiter(cfg.Scheduler.RateLimitRPS, cfg.Scheduler.RateLimitBurst)
	api.POST("/schedule", limiter.Handler(), deps.schedules.Create)

	sched := api.Group("/schedule")
	sched.GET("/tasks", deps.schedules.ListTasks)
	sched.GET("/schedules", deps.schedules.ListSchedules)
	sched.DELETE("/schedules/:id", adminOnly(deps.schedules.DeleteSchedule)...)
	sched.DELETE("/tasks/:id", adminOnly(deps.schedules.DeleteTask)...)

	if deps.exports != nil {
		if validator != nil {
			sched.POST("/exports", middleware.OptionalJWT(validator), deps.exports.Create)
		} else {
			sched.POST("/exports", deps.exports.Create)
		}
		sched.GET("/exports/:id", deps.exports.Status)
		api.GET("/export/:token", deps.exports.Download)
	}
	return r
}

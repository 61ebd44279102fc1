package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/bilbo-wu/teacher-focus-api/api/swagger"
	"github.com/bilbo-wu/teacher-focus-api/internal/ai"
	"github.com/bilbo-wu/teacher-focus-api/internal/handler"
	"github.com/bilbo-wu/teacher-focus-api/internal/middleware"
	"github.com/bilbo-wu/teacher-focus-api/internal/models"
	"github.com/bilbo-wu/teacher-focus-api/internal/service"
	"github.com/bilbo-wu/teacher-focus-api/internal/store"
	"github.com/bilbo-wu/teacher-focus-api/pkg/cache"
	"github.com/bilbo-wu/teacher-focus-api/pkg/config"
	"github.com/bilbo-wu/teacher-focus-api/pkg/export"
	"github.com/bilbo-wu/teacher-focus-api/pkg/logger"
	corsmiddleware "github.com/bilbo-wu/teacher-focus-api/pkg/middleware/cors"
	reqidmiddleware "github.com/bilbo-wu/teacher-focus-api/pkg/middleware/requestid"
)

// @title Teacher Focus API
// @version 0.1.0
// @description Daily schedule, to-do and roster backend for a homeroom teacher
// @BasePath /api/v1
// @schemes http

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

	state := store.NewState(models.UserProfile{
		Name:        cfg.Profile.TeacherName,
		MyClasses:   append([]string{}, cfg.Profile.Classes...),
		MyLocations: append([]string{}, cfg.Profile.Locations...),
	})

	metricsSvc := service.NewMetricsService()

	cacheEnabled := cfg.Cache.Enabled
	var cacheRepo service.CacheRepository
	if cacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
			cacheEnabled = false
		} else {
			cacheStore := store.NewCacheStore(client, logr)
			defer cacheStore.Close() //nolint:errcheck
			cacheRepo = cacheStore
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cacheEnabled)

	validate := validator.New()

	aiClient := ai.NewClient(cfg.AI)
	extractionSvc := service.NewExtractionService(aiClient, metricsSvc, logr)

	scheduleSvc := service.NewScheduleService(state.Schedules, cacheSvc, validate, logr)
	taskSvc := service.NewTaskService(state.Tasks, scheduleSvc, validate, logr)
	studentSvc := service.NewStudentService(state.Students, validate, logr)
	logSvc := service.NewLogService(state.Logs, state.Students, extractionSvc, validate, logr)
	memoSvc := service.NewMemoService(state.Memos, extractionSvc, logr)
	profileSvc := service.NewProfileService(state.Profile, logr)
	exportSvc := service.NewExportService(scheduleSvc, state.Students, export.NewCSVExporter(), export.NewPDFExporter(cfg.Export.PDFFontPath), logr)

	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	taskHandler := handler.NewTaskHandler(taskSvc)
	studentHandler := handler.NewStudentHandler(studentSvc)
	logHandler := handler.NewLogHandler(logSvc)
	memoHandler := handler.NewMemoHandler(memoSvc)
	profileHandler := handler.NewProfileHandler(profileSvc)
	extractionHandler := handler.NewExtractionHandler(extractionSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api/v1")
	{
		api.GET("/schedule", scheduleHandler.ListByDate)
		api.POST("/schedule", scheduleHandler.Create)
		api.PUT("/schedule/:id", scheduleHandler.Update)
		api.DELETE("/schedule/:id", scheduleHandler.Delete)
		api.POST("/schedule/import", scheduleHandler.Import)

		api.GET("/tasks", taskHandler.List)
		api.POST("/tasks", taskHandler.Create)
		api.PATCH("/tasks/:id/toggle", taskHandler.Toggle)

		api.GET("/students", studentHandler.List)
		api.POST("/students", studentHandler.Create)
		api.POST("/students/import", studentHandler.Import)
		api.GET("/students/groups", studentHandler.Groups)
		api.GET("/students/:id", studentHandler.Get)
		api.GET("/students/:id/logs", logHandler.ListByStudent)
		api.POST("/students/:id/logs", logHandler.Add)
		api.POST("/students/:id/messages/draft", logHandler.DraftMessage)

		api.GET("/memos", memoHandler.List)
		api.POST("/memos", memoHandler.Add)
		api.DELETE("/memos/:id", memoHandler.Delete)
		api.POST("/memos/:id/analyze", memoHandler.Analyze)

		api.GET("/profile", profileHandler.Get)
		api.PUT("/profile/name", profileHandler.UpdateName)
		api.POST("/profile/classes", profileHandler.AddClass)
		api.DELETE("/profile/classes/:value", profileHandler.RemoveClass)
		api.POST("/profile/locations", profileHandler.AddLocation)
		api.DELETE("/profile/locations/:value", profileHandler.RemoveLocation)

		api.POST("/extract/schedule/text", extractionHandler.ParseText)
		api.POST("/extract/schedule/audio", extractionHandler.ParseAudio)

		api.GET("/exports/schedule.pdf", exportHandler.SchedulePDF)
		api.GET("/exports/students.csv", exportHandler.RosterCSV)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

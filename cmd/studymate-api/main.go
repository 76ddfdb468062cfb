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
	"github.com/jmoiron/sqlx"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/swetha21032k7/AI-Agent-StudyMate-AI/api/swagger"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/handler"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/middleware"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/planner"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/repository"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/internal/service"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/cache"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/config"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/database"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/export"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/jobs"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/logger"
	corsmiddleware "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/middleware/cors"
	reqidmiddleware "github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/middleware/requestid"
	"github.com/swetha21032k7/AI-Agent-StudyMate-AI/pkg/storage"
)

// @title StudyMate API
// @version 1.0.0
// @description Weekly study timetable planner
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	metrics := service.NewMetricsService()
	validate := validator.New()

	readiness := map[string]handler.Pinger{"database": db}
	var cacheBackend service.CacheRepository
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, timetable cache disabled", zap.Error(err))
	} else {
		cacheRepo := repository.NewCacheRepository(redisClient, logr)
		defer cacheRepo.Close()
		readiness["redis"] = handler.PingFunc(cacheRepo.Ping)
		cacheBackend = cacheRepo
	}
	cacheSvc := service.NewCacheService(cacheBackend, metrics, cfg.Planner.CacheTTL, logr, cacheBackend != nil)

	dayStart := planner.DefaultDayStart
	if cfg.Planner.DayStart != "" {
		if dayStart, err = planner.ParseClock(cfg.Planner.DayStart); err != nil {
			return fmt.Errorf("PLANNER_DAY_START: %w", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	preferenceRepo := repository.NewPreferenceRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)

	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             cfg.JWT.Issuer,
	})
	subjectSvc := service.NewSubjectService(subjectRepo, cacheSvc, validate, logr)
	preferenceSvc := service.NewPreferenceService(preferenceRepo, cacheSvc, validate, logr)
	timetableSvc := service.NewTimetableService(timetableRepo, subjectSvc, preferenceSvc, cacheSvc, metrics, logr, service.TimetableConfig{
		DayStart: &dayStart,
		Seed:     cfg.Planner.Seed,
		CacheTTL: cfg.Planner.CacheTTL,
	})

	handlers := routeHandlers{
		auth:        handler.NewAuthHandler(authSvc),
		subjects:    handler.NewSubjectHandler(subjectSvc),
		preferences: handler.NewPreferenceHandler(preferenceSvc),
		metrics:     handler.NewMetricsHandler(metrics, readiness),
	}

	if cfg.Planner.Enabled {
		handlers.timetable = handler.NewTimetableHandler(timetableSvc)
	} else {
		logr.Warn("planner disabled, timetable routes not mounted")
	}
	if cfg.Planner.Enabled && cfg.Exports.Enabled {
		exportQueue, exportJobs, err := startExports(ctx, cfg, db, timetableSvc, metrics, validate, logr)
		if err != nil {
			return err
		}
		defer exportQueue.Stop()
		handlers.exports = handler.NewExportHandler(exportJobs)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	registerRoutes(r, cfg.APIPrefix, handlers, authSvc, userRepo)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
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

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func startExports(ctx context.Context, cfg *config.Config, db *sqlx.DB, timetables *service.TimetableService, metrics *service.MetricsService, validate *validator.Validate, logr *zap.Logger) (*jobs.Queue, *service.ExportJobService, error) {
	store, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		return nil, nil, err
	}
	signer := storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL)
	exporter := service.NewExportService(timetables, store, signer, service.ExportConfig{
		APIPrefix: cfg.APIPrefix,
		ResultTTL: cfg.Exports.SignedURLTTL,
	}, logr, export.NewCSVExporter(), export.NewPDFExporter())

	jobRepo := repository.NewExportJobRepository(db)
	worker := service.NewExportWorker(jobRepo, exporter, metrics, cfg.Exports.WorkerRetries, logr)
	queue := jobs.NewQueue("timetable-exports", worker.Handle, jobs.QueueConfig{
		Workers:    cfg.Exports.WorkerConcurrency,
		MaxRetries: cfg.Exports.WorkerRetries,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	queue.Start(ctx)

	jobSvc := service.NewExportJobService(jobRepo, timetables, queue, exporter, metrics, validate, logr, service.ExportJobConfig{
		ResultTTL:       cfg.Exports.SignedURLTTL,
		CleanupInterval: cfg.Exports.CleanupInterval,
	})
	jobSvc.RecoverPendingJobs(ctx)
	jobSvc.StartCleanup(ctx)
	return queue, jobSvc, nil
}

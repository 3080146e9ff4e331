package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	chatapp "github.com/tsvs/backend/internal/application/chat"
	directoryapp "github.com/tsvs/backend/internal/application/directory"
	examapp "github.com/tsvs/backend/internal/application/exam"
	identityapp "github.com/tsvs/backend/internal/application/identity"
	licenseapp "github.com/tsvs/backend/internal/application/license"
	"github.com/tsvs/backend/internal/domain/directory"
	"github.com/tsvs/backend/internal/domain/license"
	"github.com/tsvs/backend/internal/infrastructure/auth"
	"github.com/tsvs/backend/internal/infrastructure/cache"
	"github.com/tsvs/backend/internal/infrastructure/config"
	"github.com/tsvs/backend/internal/infrastructure/event"
	"github.com/tsvs/backend/internal/infrastructure/logger"
	"github.com/tsvs/backend/internal/infrastructure/persistence"
	"github.com/tsvs/backend/internal/infrastructure/realtime"
	"github.com/tsvs/backend/internal/infrastructure/storage"
	"github.com/tsvs/backend/internal/infrastructure/telemetry"
	"github.com/tsvs/backend/internal/interfaces/http/handler"
	"github.com/tsvs/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log := logger.New(cfg.Log, cfg.App.Env)
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting TSVS portal backend",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()

	tracerProvider, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, cfg.App.Version, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	log = loggerProvider.Bridge(log, logger.ParseLevel(cfg.Log.Level))

	db, err := persistence.NewDatabase(cfg.Database, cfg.Log, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := telemetry.InstrumentDB(db.DB, cfg.Telemetry, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}
	log.Info("Database connected successfully", zap.String("driver", cfg.Database.Driver))

	// Redis backs the token blacklist and the reference-data cache.
	// Without it both fall back to process memory.
	var (
		redisClient *redis.Client
		blacklist   auth.TokenBlacklist
	)
	if cfg.Redis.Enabled {
		redisClient, err = auth.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			_ = redisClient.Close()
		}()
		blacklist = auth.NewRedisTokenBlacklistWithClient(redisClient)
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Redis disabled, token blacklist is kept in memory")
	}
	listCache := cache.NewListCache(redisClient, cfg.Cache, log)

	store, err := storage.New(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}
	var staticRoot string
	if local, ok := store.(*storage.LocalStorage); ok {
		staticRoot = local.Root()
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	historyRepo := persistence.NewGormActionHistoryRepository(db.DB)
	regionRepo := persistence.NewGormDirectoryRepository(db.DB, directory.KindRegion)
	departmentRepo := persistence.NewGormDirectoryRepository(db.DB, directory.KindDepartment)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	typeRepo := persistence.NewGormTypeSelectionRepository(db.DB)
	questionRepo := persistence.NewGormQuestionRepository(db.DB)
	chatRepo := persistence.NewGormChatRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	licenseRegionRepo := persistence.NewGormLookupRepository(db.DB, license.LookupRegion)
	quantityRepo := persistence.NewGormLookupRepository(db.DB, license.LookupQuantity)
	licenseRepo := persistence.NewGormLicenseRepository(db.DB)
	attachmentRepo := persistence.NewGormAttachmentRepository(db.DB)

	// Event bus: user actions feed the audit trail, chat messages feed the WebSocket hub
	hub := realtime.NewHub()
	eventBus := event.NewInMemoryEventBus(log)
	historyRecorder := identityapp.NewHistoryRecorder(historyRepo, log)
	eventBus.Subscribe(historyRecorder)
	eventBus.Subscribe(chatapp.NewBroadcastHandler(hub, log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	userService := identityapp.NewUserService(userRepo, historyRepo, blacklist, eventBus, cfg.JWT.AccessTokenExpiration, log)
	adminService := identityapp.NewAdminService(userRepo, eventBus, log)
	chatService := chatapp.NewService(chatRepo, messageRepo, userRepo, store, eventBus, log)

	if err := authService.Bootstrap(ctx, cfg.Bootstrap); err != nil {
		log.Fatal("Failed to bootstrap superadmin", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if sqlDB, err := db.DB.DB(); err == nil {
		registry.MustRegister(collectors.NewDBStatsCollector(sqlDB, cfg.Database.Driver))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine, stopEngine := router.NewEngine(router.Deps{
		Config:     cfg,
		Logger:     log,
		JWT:        jwtService,
		Blacklist:  blacklist,
		Registry:   registry,
		StaticRoot: staticRoot,
		Handlers: router.Handlers{
			System:      handler.NewSystemHandler(cfg.App, db),
			Auth:        handler.NewAuthHandler(authService),
			Users:       handler.NewUserHandler(userService),
			Admin:       handler.NewAdminHandler(adminService),
			Regions:     handler.NewDirectoryHandler(directoryapp.NewService(regionRepo, listCache, cfg.Cache.TTL, log)),
			Departments: handler.NewDirectoryHandler(directoryapp.NewService(departmentRepo, listCache, cfg.Cache.TTL, log)),
			Exam: handler.NewExamHandler(
				examapp.NewCategoryService(categoryRepo, log),
				examapp.NewTypeSelectionService(typeRepo, log),
				examapp.NewQuestionService(questionRepo, categoryRepo, typeRepo, log),
			),
			Chat: handler.NewChatHandler(chatService, hub, cfg.HTTP.WSOriginPatterns, log),
			License: handler.NewLicenseHandler(
				licenseapp.NewLookupService(licenseRegionRepo, listCache, cfg.Cache.TTL, log),
				licenseapp.NewLookupService(quantityRepo, listCache, cfg.Cache.TTL, log),
				licenseapp.NewItemService(licenseRepo, licenseRegionRepo, quantityRepo, log),
				licenseapp.NewAttachmentService(attachmentRepo, licenseRepo, store, log),
			),
		},
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	stopEngine()
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Warn("Event bus stop failed", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Tracer provider shutdown failed", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Warn("Logger provider shutdown failed", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

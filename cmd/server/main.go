package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "github.com/propdesk/backend/docs"
	fiscalapp "github.com/propdesk/backend/internal/application/fiscal"
	"github.com/propdesk/backend/internal/domain/fiscal"
	"github.com/propdesk/backend/internal/domain/shared"
	"github.com/propdesk/backend/internal/infrastructure/cache"
	"github.com/propdesk/backend/internal/infrastructure/config"
	"github.com/propdesk/backend/internal/infrastructure/event"
	"github.com/propdesk/backend/internal/infrastructure/export"
	"github.com/propdesk/backend/internal/infrastructure/logger"
	"github.com/propdesk/backend/internal/infrastructure/migration"
	"github.com/propdesk/backend/internal/infrastructure/persistence"
	"github.com/propdesk/backend/internal/infrastructure/storage"
	"github.com/propdesk/backend/internal/infrastructure/telemetry"
	"github.com/propdesk/backend/internal/interfaces/http/handler"
	"github.com/propdesk/backend/internal/interfaces/http/middleware"
	"github.com/propdesk/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//	@title			PropDesk Fiscal API
//	@version		1.0
//	@description	Fiscal engine for rental property management: invoices, expenses, VAT books and owner settlements

//	@contact.name	API Support
//	@contact.url	https://github.com/propdesk/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@externalDocs.description	OpenAPI
//	@externalDocs.url			https://swagger.io/resources/open-api/

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// OTEL logs: tee the stdout core with the OTLP bridge when enabled
	loggerProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.Enabled && cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize logger provider", zap.Error(err))
	}
	if loggerProvider.IsEnabled() {
		logCfg.Cores = []zapcore.Core{telemetry.NewZapOTELCore(telemetry.ZapBridgeConfig{
			ServiceName:    cfg.Telemetry.ServiceName,
			LoggerProvider: loggerProvider,
			Level:          logger.ParseLevel(cfg.Log.Level),
		})}
		log, err = logger.New(logCfg)
		if err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Propdesk Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:           cfg.Telemetry.ProfilingEnabled,
		ServerAddress:     cfg.Telemetry.ProfilerServerAddress,
		ApplicationName:   cfg.Telemetry.ServiceName,
		BasicAuthUser:     cfg.Telemetry.ProfilerBasicAuthUser,
		BasicAuthPassword: cfg.Telemetry.ProfilerBasicAuthPassword,
		ProfileTypes:      cfg.Telemetry.ProfileTypes,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	if cfg.Telemetry.SpanProfilesEnabled {
		tracerProvider.EnableSpanProfiles()
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsExportInterval,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    cfg.App.Version,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	fiscalMetrics, err := telemetry.NewFiscalMetrics(meterProvider.Meter("propdesk/fiscal"))
	if err != nil {
		log.Fatal("Failed to register fiscal metrics", zap.Error(err))
	}

	// Schema
	if err := applyMigrations(cfg.Database.DSN(), log); err != nil {
		log.Fatal("Failed to apply migrations", zap.Error(err))
	}

	// Database with zap logging and optional statement tracing
	db, err := persistence.NewDatabaseWithOptions(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      logger.MapGormLogLevel(cfg.Log.Level),
		SlowThreshold: cfg.Telemetry.DBSlowQueryThresh,
		Tracing: &telemetry.DBTracingConfig{
			Enabled:         cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
			SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
			DBName:          cfg.Database.DBName,
			WithVariables:   cfg.Telemetry.DBLogFullSQL,
		},
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the lock, the Redis sequence and the ledger cache
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Error closing Redis", zap.Error(err))
			}
		}()
		log.Info("Redis connected successfully", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	recordRepo := persistence.NewGormRecordRepository(db.DB)
	ownershipRepo := persistence.NewGormOwnershipRepository(db.DB)
	ownerRepo := persistence.NewGormOwnerRepository(db.DB)
	counterpartyRepo := persistence.NewGormCounterpartyRepository(db.DB)

	scheme := numberingScheme(cfg.Fiscal)
	var sequence fiscal.SequenceGenerator
	if cfg.Fiscal.SequenceBackend == config.SequenceBackendRedis {
		sequence = cache.NewRedisRecordSequence(redisClient, recordRepo, scheme)
	} else {
		sequence = persistence.NewGormRecordSequence(db.DB, recordRepo, scheme)
	}

	var locker shared.Locker
	if redisClient != nil {
		locker = cache.NewRedisLocker(redisClient, log)
	} else {
		locker = cache.NewLocalLocker()
	}
	log.Info("Fiscal numbering configured",
		zap.String("sequence_backend", cfg.Fiscal.SequenceBackend),
		zap.Bool("distributed_lock", redisClient != nil),
	)

	// Event bus
	eventBus := event.NewInMemoryEventBus(log)

	// Services
	recordService := fiscalapp.NewRecordService(
		recordRepo,
		ownershipRepo,
		counterpartyRepo,
		sequence,
		locker,
		fiscalapp.RecordSettings{
			DefaultPaymentTermsDays: cfg.Fiscal.DefaultPaymentTermsDays,
			LockTTL:                 cfg.Fiscal.LockTTL,
		},
		log,
	)
	recordService.SetEventPublisher(eventBus)
	recordService.SetFiscalMetrics(fiscalMetrics)

	reportService := fiscalapp.NewReportService(recordRepo, ownerRepo, ownershipRepo, counterpartyRepo, log)
	reportService.SetExporter(export.NewLedgerWorkbook(cfg.Fiscal.Currency))
	reportService.SetFiscalMetrics(fiscalMetrics)

	if cfg.Fiscal.LedgerCacheEnabled {
		ledgerCache := cache.NewRedisLedgerCache(redisClient, cfg.Fiscal.LedgerCacheTTL)
		reportService.SetLedgerCache(ledgerCache)
		invalidator := fiscalapp.NewLedgerCacheInvalidator(ledgerCache, log)
		eventBus.Subscribe(invalidator, invalidator.EventTypes()...)
		log.Info("Ledger cache enabled", zap.Duration("ttl", cfg.Fiscal.LedgerCacheTTL))
	}

	if cfg.Storage.Enabled {
		archive, err := storage.NewS3ReportArchive(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to initialize report archive", zap.Error(err))
		}
		bucketCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err = archive.EnsureBucket(bucketCtx)
		cancel()
		if err != nil {
			log.Fatal("Failed to prepare report archive bucket", zap.Error(err))
		}
		reportService.SetArchive(archive)
		log.Info("Report archive enabled", zap.String("bucket", archive.Bucket()))
	}

	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}

	// HTTP engine
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxies", zap.Error(err))
	}

	engine.Use(logger.Recovery(log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	profilingConfig := middleware.DefaultProfilingConfig()
	profilingConfig.Enabled = profiler.IsEnabled()
	engine.Use(middleware.Profiling(profilingConfig))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.HTTPMetrics(meterProvider))

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORS(corsConfig))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.Timeout(cfg.HTTP.WriteTimeout, log))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, redisClient))

	// Swagger documentation
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine)
	r.Register(handler.FiscalRoutes(
		handler.NewFiscalRecordHandler(recordService),
		handler.NewFiscalReportHandler(reportService),
	))
	r.Setup()

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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := eventBus.Stop(shutdownCtx); err != nil {
		log.Error("Error stopping event bus", zap.Error(err))
	}
	if err := meterProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down meter provider", zap.Error(err))
	}
	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Error("Error stopping profiler", zap.Error(err))
	}
	if err := loggerProvider.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down logger provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// applyMigrations runs the embedded migrations on a dedicated connection;
// closing the migrator closes the connection it was given.
func applyMigrations(dsn string, log *zap.Logger) error {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		_ = sqlDB.Close()
		return err
	}
	defer m.Close()
	return m.Up()
}

// numberingScheme overlays the configured prefixes on the defaults
func numberingScheme(cfg config.FiscalConfig) fiscal.NumberingScheme {
	scheme := fiscal.DefaultNumberingScheme()
	for key, prefix := range cfg.PrefixesByKey() {
		scheme.Prefixes[key] = prefix
	}
	scheme.Padding = cfg.NumberPadding
	return scheme
}

// healthHandler reports database and, when configured, Redis reachability
func healthHandler(db *persistence.Database, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		status := gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		}
		healthy := true

		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.String("component", "database"), zap.Error(err))
			status["database"] = "error"
			healthy = false
		}
		if redisClient != nil {
			status["redis"] = "ok"
			if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
				reqLog.Warn("Health check failed", zap.String("component", "redis"), zap.Error(err))
				status["redis"] = "error"
				healthy = false
			}
		}

		if !healthy {
			status["status"] = "unhealthy"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		c.JSON(http.StatusOK, status)
	}
}

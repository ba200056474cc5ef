package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appdispatch "github.com/jaymarand/ovgi-dispatch/internal/application/dispatch"
	domain "github.com/jaymarand/ovgi-dispatch/internal/domain/dispatch"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/config"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/event"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/logger"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/notify"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/persistence"
	"github.com/jaymarand/ovgi-dispatch/internal/infrastructure/telemetry"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/handler"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/middleware"
	"github.com/jaymarand/ovgi-dispatch/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

//	@title			OVGI Dispatch API
//	@version		1.0
//	@description	Dispatch dashboard backend: delivery run registration, supply deficit reporting, and push-invalidate change streams.

//	@host		localhost:8080
//	@BasePath	/api/v1

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting dispatch backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel, 200*time.Millisecond)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.DBTraceEnabled {
		dbTracing := telemetry.DefaultDBTracingConfig()
		dbTracing.Enabled = true
		plugin := telemetry.NewDBTracingPlugin(dbTracing, log)
		if err := plugin.RegisterOtelGorm(db.DB); err != nil {
			log.Error("Failed to register database tracing", zap.Error(err))
		}
	}

	// Initialize repositories
	runRepo := persistence.NewGormRunRepository(db.DB)
	storeRepo := persistence.NewGormStoreRepository(db.DB)
	supplyRepo := persistence.NewGormStoreSupplyRepository(db.DB)
	countRepo := persistence.NewGormContainerCountRepository(db.DB)
	driverRepo := persistence.NewGormDriverRepository(db.DB)

	// Run-change notifier: Redis pub/sub when configured, in-process otherwise
	var notifier domain.RunChangeNotifier
	if cfg.Redis.Enabled {
		redisNotifier, err := notify.NewRedisRunChangeNotifier(cfg.Redis,
			notify.WithNotifierChannel(cfg.Notify.Channel),
			notify.WithNotifierLogger(log),
		)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		notifier = redisNotifier
		log.Info("Using Redis run-change notifier", zap.String("channel", cfg.Notify.Channel))
	} else {
		notifier = notify.NewInMemoryRunChangeNotifier(log)
		log.Info("Using in-memory run-change notifier")
	}
	defer func() {
		if err := notifier.Close(); err != nil {
			log.Error("Error closing notifier", zap.Error(err))
		}
	}()

	// Domain event bus
	eventBus := event.NewInMemoryEventBus(log)
	eventBus.Subscribe(event.NewLoggingEventHandler(log))
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	runService := appdispatch.NewRunService(runRepo, storeRepo, notifier, eventBus, log, cfg.Dispatch.DefaultTruckType)
	storeService := appdispatch.NewStoreService(storeRepo, supplyRepo)
	countService := appdispatch.NewCountService(countRepo, storeRepo)
	needsService := appdispatch.NewSupplyNeedsService(runRepo, countRepo, supplyRepo)
	driverService := appdispatch.NewDriverService(driverRepo)

	// Initialize handlers
	runHandler := handler.NewRunHandler(runService)
	storeHandler := handler.NewStoreHandler(storeService)
	countHandler := handler.NewCountHandler(countService)
	needsHandler := handler.NewSupplyNeedsHandler(needsService)
	driverHandler := handler.NewDriverHandler(driverService)
	systemHandler := handler.NewSystemHandler()

	streamHandler := handler.NewRunStreamHandler(notifier,
		handler.WithStreamLogger(log),
		handler.WithStreamHeartbeat(cfg.Notify.SSEHeartbeat),
		handler.WithStreamClientBuffer(cfg.Notify.SSEClientBuffer),
		handler.WithStreamMaxClients(cfg.Notify.SSEMaxConnections),
	)
	if err := streamHandler.Start(); err != nil {
		log.Fatal("Failed to start run stream handler", zap.Error(err))
	}
	defer streamHandler.Stop()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators before creating the engine
	middleware.SetupValidator()

	// Create Gin engine
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Global middleware
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsConfig.AllowCredentials = true
	corsConfig.MaxAge = 12 * time.Hour
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	// Health check endpoint (outside the versioned API)
	engine.GET("/health", healthHandler(db, log))

	// API routes
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	runs := router.NewDomainGroup("runs", "/dispatch/runs").
		GET("", runHandler.List).
		POST("", runHandler.Create).
		GET("/stream", streamHandler.Stream).
		GET("/:id", runHandler.Get).
		PATCH("/:id/status", runHandler.UpdateStatus).
		POST("/:id/cancel", runHandler.Cancel).
		PUT("/:id/driver", runHandler.AssignDriver).
		DELETE("/:id", runHandler.Delete)
	r.Register(runs)

	stores := router.NewDomainGroup("stores", "/dispatch/stores").
		GET("", storeHandler.List).
		POST("", storeHandler.Create).
		GET("/:id", storeHandler.Get).
		GET("/:id/par-levels", storeHandler.GetParLevels).
		PUT("/:id/par-levels", storeHandler.SetParLevels)
	r.Register(stores)

	counts := router.NewDomainGroup("counts", "/dispatch/counts").
		POST("", countHandler.Record)
	r.Register(counts)

	supplyNeeds := router.NewDomainGroup("supply-needs", "/dispatch/supply-needs").
		GET("", needsHandler.List)
	r.Register(supplyNeeds)

	drivers := router.NewDomainGroup("drivers", "/dispatch/drivers").
		GET("", driverHandler.List).
		POST("", driverHandler.Create).
		PUT("/:id/active", driverHandler.SetActive)
	r.Register(drivers)

	system := router.NewDomainGroup("system", "/system").
		GET("/info", systemHandler.GetSystemInfo).
		GET("/ping", systemHandler.Ping)
	r.Register(system)

	r.Setup()

	engine.GET("/api/v1/ping", systemHandler.Ping)

	// Create HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// healthHandler reports liveness and database reachability.
func healthHandler(db *persistence.Database, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			logger.GetGinLogger(c).Error("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

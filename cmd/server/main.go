package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	tagapp "github.com/workhive/todos-backend/internal/application/tag"
	todoapp "github.com/workhive/todos-backend/internal/application/todo"
	"github.com/workhive/todos-backend/internal/domain/identity"
	"github.com/workhive/todos-backend/internal/infrastructure/config"
	"github.com/workhive/todos-backend/internal/infrastructure/crypto"
	"github.com/workhive/todos-backend/internal/infrastructure/directory"
	"github.com/workhive/todos-backend/internal/infrastructure/logger"
	"github.com/workhive/todos-backend/internal/infrastructure/persistence"
	"github.com/workhive/todos-backend/internal/interfaces/http/handler"
	"github.com/workhive/todos-backend/internal/interfaces/http/middleware"
	"github.com/workhive/todos-backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Todos Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	db, err := persistence.NewDatabase(cfg, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Content cipher. Development falls back to a fixed secret so the
	// service runs without configuration; production refuses an empty
	// secret at config validation.
	secret := cfg.Crypto.Secret
	if secret == "" {
		secret = "development-only-secret-do-not-use"
	}
	cipher, err := crypto.New(secret, cfg.Crypto.Salt)
	if err != nil {
		log.Fatal("Failed to initialize cipher", zap.Error(err))
	}

	// Directory client for manager lookups
	var directoryClient identity.DirectoryService
	switch cfg.Directory.Transport {
	case "lambda":
		directoryClient, err = directory.NewLambdaClient(
			context.Background(),
			cfg.Directory.FunctionName,
			cfg.Directory.Region,
			cfg.Directory.AccessKeyID,
			cfg.Directory.SecretAccessKey,
			log,
		)
		if err != nil {
			log.Fatal("Failed to initialize directory client", zap.Error(err))
		}
	default:
		directoryClient = directory.NewHTTPClient(cfg.Directory.BaseURL, cfg.Directory.Timeout, log)
	}

	// Repositories
	tagRepo := persistence.NewGormTagRepository(db.DB)
	todoRepo := persistence.NewGormTodoRepository(db.DB)

	// Application services
	tagService := tagapp.NewTagService(tagRepo, directoryClient, log)
	commonTagService := tagapp.NewCommonTagService(tagRepo, log)
	analyticsService := tagapp.NewTagAnalyticsService(tagRepo, todoRepo, cipher, log)
	todoService := todoapp.NewTodoService(todoRepo, tagRepo, cipher, log)

	// HTTP handlers
	todoHandler := handler.NewTodoHandler(todoService)
	tagHandler := handler.NewTagHandler(tagService, analyticsService)
	commonTagHandler := handler.NewCommonTagHandler(commonTagService, middleware.AdminKey(cfg.Admin.CommonTagsKey))
	systemHandler := handler.NewSystemHandler(db)
	invokeHandler := handler.NewInvokeHandler()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsCfg))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(todoHandler).
		Register(tagHandler).
		Register(commonTagHandler).
		Register(systemHandler).
		Register(invokeHandler)
	r.Setup()

	// The invocation endpoint replays events against the fully wired engine
	invokeHandler.SetTarget(engine)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digital_market/internal/config"
	"digital_market/internal/domain"
	"digital_market/internal/handler"
	"digital_market/internal/middleware"
	"digital_market/internal/repository"
	"digital_market/internal/service"
	"digital_market/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Загрузка конфигурации
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.Log.Level)

	// Подключение к PostgreSQL
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.DSN)
	if err != nil {
		appLogger.Fatal("Invalid database DSN", "error", err)
	}
	poolCfg.MaxConns = int32(cfg.Database.MaxConnections)
	poolCfg.MaxConnIdleTime = cfg.Database.MaxIdleTime
	poolCfg.MaxConnLifetime = cfg.Database.ConnMaxLifetime

	dbPool, err := pgxpool.NewWithConfig(context.Background(), poolCfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	if err := dbPool.Ping(context.Background()); err != nil {
		appLogger.Fatal("Failed to ping database", "error", err)
	}
	appLogger.Info("Database connection established")

	if err := repository.EnsureSchema(context.Background(), dbPool); err != nil {
		appLogger.Fatal("Failed to prepare database schema", "error", err)
	}

	// Подключение к Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		appLogger.Fatal("Failed to connect to Redis", "error", err)
	}
	appLogger.Info("Redis connection established")

	repos := repository.NewRepositories(dbPool, rdb, appLogger)

	services, err := service.NewServices(repos, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize services", "error", err)
	}

	authMiddleware := middleware.NewAuthMiddleware(services.Auth, appLogger)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(services.RateLimit, appLogger)

	handlers := handler.NewHandlers(services, appLogger)

	router := setupRouter(handlers, authMiddleware, rateLimitMiddleware, cfg, appLogger)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		appLogger.Info("Starting server", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited")
}

func setupRouter(
	handlers *handler.Handlers,
	authMiddleware *middleware.AuthMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	cfg *config.Config,
	log logger.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	globalLimit := domain.RateLimitRule{
		Scope:  domain.RateLimitScopeIP,
		Limit:  cfg.RateLimit.RequestsPerMinute,
		Window: time.Minute,
	}
	verifyLimit := domain.RateLimitRule{
		Scope:  domain.RateLimitScopeVerify,
		Limit:  cfg.RateLimit.VerifyCodePerMinute,
		Window: time.Minute,
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxImageBytes + 1<<20
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORS.AllowedOrigins))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.ErrorHandler(log))

	// Health check
	router.GET("/health", handlers.Health.Check)

	v1 := router.Group("/api/v1")
	v1.Use(rateLimitMiddleware.Limit(globalLimit))
	{
		v1.GET("/", handlers.Health.Root)

		v1.GET("/status", handlers.Status.List)
		v1.POST("/status", handlers.Status.Create)

		v1.POST("/verify-code", rateLimitMiddleware.Limit(verifyLimit), handlers.Auth.VerifyCode)

		accounts := v1.Group("/accounts")
		{
			accounts.GET("", handlers.Account.List)
			accounts.POST("", authMiddleware.RequireAdmin(), handlers.Account.Create)
			accounts.DELETE("/:id", authMiddleware.RequireAdmin(), handlers.Account.Delete)
		}

		chat := v1.Group("/chat")
		{
			chat.POST("/messages", authMiddleware.OptionalAuth(), handlers.Chat.SendMessage)
			chat.GET("/transcript", handlers.Chat.GetTranscript)

			// Только для администратора
			admin := chat.Group("")
			admin.Use(authMiddleware.RequireAdmin())
			{
				admin.GET("/messages", handlers.Chat.GetMessages)
				admin.GET("/conversations", handlers.Chat.GetConversations)
				admin.GET("/conversations/:email", handlers.Chat.GetConversation)
			}
		}
	}

	return router
}

// @title Trivia API
// @version 1.0
// @description Question bank and quiz API for the trivia game.
// @contact.name API Support
// @license.name MIT
// @host localhost:5000
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey AdminToken
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_ADMIN_TOKEN' to authorize question writes.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	_ "trivia-api/cmd/api/docs"
	"trivia-api/internal/adapter"
	"trivia-api/internal/auth"
	"trivia-api/internal/cache"
	"trivia-api/internal/config"
	"trivia-api/internal/database"
	"trivia-api/internal/domain"
	"trivia-api/internal/handler"
	"trivia-api/internal/logger"
	"trivia-api/internal/middleware"
	"trivia-api/internal/repository"
	"trivia-api/internal/server"
	"trivia-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

func main() {
	if os.Getenv("APP_ENV") != "production" {
		// A missing .env is fine; real environments set variables directly.
		_ = godotenv.Load()
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	db, err := database.Open(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	categoryAdapter := repository.NewCategoryDatabaseAdapter(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db, database.DialectOf(cfg.DB.Driver))
	txManager := repository.NewTransactionManagerAdapter(db)

	health := service.NewHealthService().Register("database", categoryAdapter)

	var categoryRepository domain.CategoryRepository = categoryAdapter
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()

		cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
		categoryRepository = service.NewCachedCategoryRepository(categoryAdapter, cacheAdapter, cfg.Cache.CategoriesTTL)
		health.Register("redis", cacheAdapter)
		appLogger.Info("Category cache enabled",
			zap.String("redis", cfg.Redis.Address),
			zap.Duration("ttl", cfg.Cache.CategoriesTTL))
	}

	triviaService := service.NewTriviaService(categoryRepository, questionRepository, txManager)

	var guard fiber.Handler
	if cfg.AuthEnabled() {
		tokens := auth.NewTokenManager(cfg.Auth)
		guard = middleware.RequireScope(tokens, auth.ScopeQuestionsWrite)
		appLogger.Info("Question writes require an admin token", zap.String("scope", auth.ScopeQuestionsWrite))
	} else {
		appLogger.Warn("Admin secret not set; question writes are unauthenticated")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewDBStatsCollector(db.DB, cfg.DB.DBName),
	)

	app := server.New(cfg.Server, server.Deps{
		Trivia:   handler.NewTriviaHandler(triviaService),
		Health:   handler.NewHealthHandler(health),
		Guard:    guard,
		Registry: registry,
		Swagger:  true,
	})

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
		return
	}
	appLogger.Info("Server exited gracefully")
}

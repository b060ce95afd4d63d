// @title Study Quiz API
// @version 1.0
// @description Generates multiple-choice quizzes from pasted study material using an LLM.
// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"studyquiz/internal/adapter"
	"studyquiz/internal/adapter/llm"
	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/handler"
	"studyquiz/internal/logger"
	"studyquiz/internal/middleware"
	"studyquiz/internal/service"

	_ "studyquiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	ctx := context.Background()

	// Initialize the text generator
	appLogger.Info("Initializing text generator",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)
	generator, err := llm.NewGenerator(ctx, cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create text generator", zap.Error(err))
	}

	// Initialize the quiz cache. Redis is optional: when it is not
	// configured or not reachable the service runs without caching.
	var quizCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, running without quiz cache", zap.Error(err))
		} else {
			appLogger.Info("Successfully connected to Redis")
			quizCache = adapter.NewRedisCacheAdapter(redisClient)
		}
	}

	// Initialize services and handlers
	quizService := service.NewQuizService(generator, quizCache, cfg)
	quizHandler := handler.NewQuizHandler(quizService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Swagger handler
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Routes. The /api prefix mirrors proxy deployments where the client
	// calls /api/generate_quiz; both shapes are served.
	app.Get("/", quizHandler.HealthCheck)
	app.Post("/generate_quiz", quizHandler.GenerateQuiz)

	apiGroup := app.Group("/api")
	apiGroup.Get("/", quizHandler.HealthCheck)
	apiGroup.Post("/generate_quiz", quizHandler.GenerateQuiz)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

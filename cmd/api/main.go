// @title Quizly API
// @version 1.0
// @description Generates multiple-choice quizzes from YouTube videos.
// @host localhost:8080
// @BasePath /api
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

	"quizly/internal/adapter"
	"quizly/internal/adapter/downloader"
	"quizly/internal/adapter/quizgen"
	"quizly/internal/adapter/transcriber"
	"quizly/internal/cache"
	"quizly/internal/config"
	"quizly/internal/database"
	"quizly/internal/domain"
	"quizly/internal/handler"
	"quizly/internal/logger"
	"quizly/internal/middleware"
	"quizly/internal/repository"
	"quizly/internal/service"

	_ "quizly/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)

		return err
	}
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to database
	db, err := database.NewSQLXSQLiteDB(cfg.DB.Path)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Initialize the transcriber once at bootstrap; it is shared,
	// read-only, across all requests.
	var speechToText domain.Transcriber
	switch cfg.Transcriber.Source {
	case "whisper_cpp":
		appLogger.Info("Initializing whisper.cpp transcriber",
			zap.String("binary", cfg.Transcriber.WhisperCpp.BinaryPath),
			zap.String("model", cfg.Transcriber.WhisperCpp.ModelPath),
		)
		speechToText, err = transcriber.NewWhisperCppTranscriber(cfg.Transcriber.WhisperCpp)
		if err != nil {
			appLogger.Fatal("Failed to create whisper.cpp transcriber", zap.Error(err))
		}
	case "openai":
		appLogger.Info("Initializing OpenAI transcriber", zap.String("model", cfg.Transcriber.OpenAI.Model))
		speechToText, err = transcriber.NewOpenAITranscriber(cfg.Transcriber.OpenAI)
		if err != nil {
			appLogger.Fatal("Failed to create OpenAI transcriber", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported transcriber source", zap.String("source", cfg.Transcriber.Source))
	}

	// Gemini client; the API key was validated with the config.
	llm, err := quizgen.NewGoogleAIModel(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create Gemini client", zap.Error(err))
	}
	generator := quizgen.NewGeminiQuizGenerator(llm)

	audioAcquirer := downloader.NewYtdlpDownloader(cfg.Downloader)

	// Redis-backed refresh-token blacklist
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	blacklist := adapter.NewRedisTokenBlacklist(redisClient)

	// Repositories and services
	quizRepository := repository.NewQuizDatabaseAdapter(db)
	userRepository := repository.NewSQLXUserRepository(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	quizService := service.NewQuizService(quizRepository, txManager, audioAcquirer, speechToText, generator)
	authService, err := service.NewAuthService(userRepository, blacklist, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}

	quizHandler := handler.NewQuizHandler(quizService)
	authHandler := handler.NewAuthHandler(authService, cfg)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173",
		AllowMethods:     "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin,Content-Type,Accept,Authorization",
		AllowCredentials: true,
		MaxAge:           300,
	}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	apiGroup.Post("/register/", authHandler.Register)
	apiGroup.Post("/login/", authHandler.Login)
	apiGroup.Post("/logout/", middleware.Protected(authService), authHandler.Logout)
	apiGroup.Post("/token/refresh/", authHandler.RefreshToken)

	// Quiz routes (all protected)
	apiGroup.Post("/createQuiz/", middleware.Protected(authService), rateLimiter.Handle(), quizHandler.CreateQuiz)
	apiGroup.Get("/quizzes/", middleware.Protected(authService), quizHandler.ListQuizzes)
	apiGroup.Get("/quizzes/:id/", middleware.Protected(authService), quizHandler.GetQuiz)
	apiGroup.Patch("/quizzes/:id/", middleware.Protected(authService), quizHandler.UpdateQuiz)
	apiGroup.Delete("/quizzes/:id/", middleware.Protected(authService), quizHandler.DeleteQuiz)

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
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

// @title Exam Byte API
// @version 1.0
// @description Quiz sessions, adaptive difficulty and answer evaluation for Exam Byte.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "exam-byte/cmd/api/docs"
	"exam-byte/internal/adapter"
	"exam-byte/internal/adapter/grader"
	"exam-byte/internal/adapter/llm"
	"exam-byte/internal/adapter/quizgen"
	"exam-byte/internal/cache"
	"exam-byte/internal/config"
	"exam-byte/internal/database"
	"exam-byte/internal/handler"
	"exam-byte/internal/logger"
	"exam-byte/internal/middleware"
	"exam-byte/internal/repository"
	"exam-byte/internal/service"
	"exam-byte/internal/util"

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
			zap.String("user_agent", c.Get("User-Agent")),
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

	ctx := context.Background()

	db, err := database.NewSQLXOracleDB(ctx, cfg)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Successfully connected to Redis")

	model, err := llm.NewModel(cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create LLM client", zap.Error(err))
	}
	appLogger.Info("LLM client initialized", zap.String("provider", cfg.LLM.Provider), zap.String("model", cfg.LLM.Model))

	// Repositories
	userRepository := repository.NewSQLXUserRepository(db)
	questionRepository := repository.NewQuestionDatabaseAdapter(db)
	sessionRepository := repository.NewQuizSessionDatabaseAdapter(db)
	documentRepository := repository.NewDocumentDatabaseAdapter(db)
	txManager := repository.NewTransactionManagerAdapter(db)

	// Adapters
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)
	locker := adapter.NewRedisLocker(redisClient)
	answerGrader := grader.NewLLMGrader(model)
	questionGenerator := quizgen.NewLLMQuestionGenerator(model)

	// Services
	tokenService := service.NewTokenService(cfg.Auth.JWTSecret)
	quotaService := service.NewQuotaService(userRepository)
	difficultyService := service.NewDifficultyService(userRepository)
	statisticsService := service.NewStatisticsService(sessionRepository, questionRepository, cacheAdapter, cfg.Quiz.StatsCacheTTL)
	evaluator := service.NewAnswerEvaluator(answerGrader, cfg.LLM.GraderTimeout)
	sessionService := service.NewQuizSessionService(
		sessionRepository,
		questionRepository,
		userRepository,
		txManager,
		evaluator,
		difficultyService,
		statisticsService,
		locker,
		util.NewLockedRand(time.Now().UnixNano()),
		cfg.Quiz,
	)
	generationService := service.NewGenerationService(quotaService, questionGenerator, questionRepository, txManager, cfg.LLM.GeneratorTimeout)
	questionService := service.NewQuestionService(questionRepository, statisticsService)
	documentService := service.NewDocumentService(quotaService, documentRepository, txManager)
	appLogger.Info("Services initialized")

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", func(c *fiber.Ctx) error {
		if err := db.PingContext(c.UserContext()); err != nil {
			appLogger.Warn("Health check: database unreachable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).SendString("database unavailable")
		}
		if err := cacheAdapter.Ping(c.UserContext()); err != nil {
			appLogger.Warn("Health check: redis unreachable", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).SendString("cache unavailable")
		}
		return c.SendString("ok")
	})

	handler.RegisterRoutes(app, handler.Handlers{
		Sessions:  handler.NewQuizSessionHandler(sessionService),
		Users:     handler.NewUserHandler(statisticsService, difficultyService, quotaService),
		Questions: handler.NewQuestionHandler(generationService, questionService),
		Documents: handler.NewDocumentHandler(documentService),
	}, middleware.Protected(tokenService))

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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"conductum/ats-api/internal/config"
	"conductum/ats-api/internal/handlers"
	"conductum/ats-api/internal/logger"
	"conductum/ats-api/internal/repositories"
	"conductum/ats-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		zlog.Fatal("failed to initialize database", zap.Error(err))
	}
	zlog.Info("database connected")

	// Initialize repositories
	jobRepo := repositories.NewJobRepository(db)
	applicantRepo := repositories.NewApplicantRepository(db)

	// Initialize services
	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize gemini", zap.Error(err))
	}

	indexService, err := services.NewQdrantIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		geminiService,
		zlog,
	)
	if err != nil {
		zlog.Fatal("failed to initialize qdrant", zap.Error(err))
	}

	parserService := services.NewResumeParserService(
		services.NewPDFParserService(),
		services.NewTextChunker(),
		indexService,
		geminiService,
		cfg.Parser,
		cfg.Scoring.RetryMaxAttempts,
		zlog,
	)

	scoringService := services.NewScoringService(
		geminiService,
		cfg.Scoring.RetryMaxAttempts,
		cfg.Scoring.BatchConcurrency,
		zlog,
	)
	zlog.Info("services initialized")

	// Initialize handlers
	resumeHandler := handlers.NewResumeHandler(parserService, zlog)
	jobHandler := handlers.NewJobHandler(jobRepo, applicantRepo, scoringService, zlog)
	applicationHandler := handlers.NewApplicationHandler(applicantRepo, zlog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Conductum ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PATCH,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/resume/parse", resumeHandler.HandleParse)

	api.Post("/jobs", jobHandler.HandleCreateJob)
	api.Get("/jobs", jobHandler.HandleListJobs)
	api.Post("/jobs/:id/apply", jobHandler.HandleApply)
	api.Post("/jobs/:id/rescore", jobHandler.HandleRescore)

	api.Post("/recruiter/jobs/:id/chatbot", jobHandler.HandleScreenApplicants)
	api.Get("/recruiter/applications/:jobID", applicationHandler.HandleListApplications)
	api.Get("/recruiter/applications/:jobID/:id", applicationHandler.HandleGetApplication)
	api.Patch("/recruiter/applications/status", applicationHandler.HandleBatchUpdateStatus)
	api.Patch("/recruiter/applications/:id/status", applicationHandler.HandleUpdateStatus)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zlog.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zlog.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zlog.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}

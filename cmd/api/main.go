package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"google.golang.org/genai"

	"alfredoptarigan/resume-roaster/internal/config"
	"alfredoptarigan/resume-roaster/internal/handlers"
	"alfredoptarigan/resume-roaster/internal/repositories"
	"alfredoptarigan/resume-roaster/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ %v", err)
	}
	log.Println("✅ Config loaded successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional audit log
	var recorder services.AnalysisRecorder = services.NopRecorder{}
	var sweeper services.RetentionSweeper
	var statsHandler *handlers.StatsHandler

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			log.Fatalf("❌ Failed to initialize database: %v", err)
		}

		recordRepo := repositories.NewAnalysisRecordRepository(db)
		recorder = services.NewAnalysisRecorder(recordRepo)
		statsHandler = handlers.NewStatsHandler(recordRepo)

		sweeper = services.NewRetentionSweeper(recordRepo, cfg.Database.Retention, cfg.Database.SweepInterval)
		sweeper.Start(ctx)
		log.Println("✅ Audit log initialized successfully")
	}

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(ctx, services.GeminiOptions{
		APIKey:         cfg.Gemini.APIKey,
		Model:          cfg.Gemini.Model,
		EmbedModel:     cfg.Gemini.EmbedModel,
		Timeout:        cfg.Gemini.Timeout,
		MaxAttempts:    cfg.Gemini.MaxAttempts,
		RetryDelay:     cfg.Gemini.RetryDelay,
		Temperature:    cfg.Gemini.Temperature,
		SafetySettings: services.SafetySettings(genai.HarmBlockThreshold(cfg.Gemini.SafetyThreshold)),
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Optional reference guidance
	var guidance services.GuidanceRetriever
	if cfg.Qdrant.Enabled {
		qdrantService, err := services.NewQdrantService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
		}
		defer qdrantService.Close()

		if err := qdrantService.InitCollection(ctx); err != nil {
			log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
		}

		guidance = services.NewGuidanceRetriever(geminiService, qdrantService, cfg.Qdrant.TopK)
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize pipelines
	responseParser, err := services.NewResponseParser(cfg.Analysis.StrictSchema)
	if err != nil {
		log.Fatalf("❌ Failed to initialize response parser: %v", err)
	}

	documentParser := services.NewDocumentParserService()
	analysisPipeline := services.NewPipeline(
		documentParser,
		geminiService,
		responseParser,
		guidance,
		services.AnalysisPipelineOptions(cfg.Upload.MaxFileSize),
	)
	roastPipeline := services.NewPipeline(
		documentParser,
		geminiService,
		responseParser,
		nil,
		services.RoastPipelineOptions(cfg.Upload.MaxFileSize),
	)
	log.Println("✅ Services initialized successfully")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Roaster API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Gemini.Timeout*time.Duration(cfg.Gemini.MaxAttempts) + 30*time.Second,
		// Larger than the file limit so oversized files get the size message
		// from the pipeline instead of a bare 413.
		BodyLimit:    int(2 * cfg.Upload.MaxFileSize),
		ErrorHandler: handlers.ErrorHandler(cfg.Upload.MaxFileSize),
	})

	// Middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path} ${respHeader:X-Request-ID}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	handlers.SetupRoutes(app, handlers.Routes{
		Analyze: handlers.NewAnalyzeHandler(analysisPipeline, recorder, cfg.Upload.FieldName),
		Roast:   handlers.NewRoastHandler(roastPipeline, recorder, cfg.Upload.FieldName),
		Stats:   statsHandler,
	})
	log.Println("✅ Handlers initialized")

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if sweeper != nil {
			sweeper.Stop()
		}
		cancel()
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)
	log.Printf("📖 API Documentation: http://localhost%s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

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
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize database
	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	// Initialize repositories
	analysisRepo := repositories.NewAnalysisRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize Gemini AI
	geminiService, err := services.NewGeminiService(
		cfg.Gemini.APIKey,
		cfg.Gemini.Model,
		cfg.Gemini.EmbedModel,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini AI: %v", err)
	}
	log.Println("✅ Gemini AI initialized successfully")

	// Initialize vector store
	vectorStore, err := services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		geminiService,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := vectorStore.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant collection: %v", err)
	}
	log.Println("✅ Qdrant initialized successfully")

	// Initialize services
	pdfParser := services.NewPDFParserService()
	pdfWriter := services.NewPDFWriterService()
	skillExtractor := services.NewSkillExtractorService(geminiService)
	similarityService := services.NewSimilarityService(geminiService, skillExtractor)
	matcherService := services.NewMatcherService(geminiService, similarityService)
	rewriteService := services.NewRewriteService(geminiService, cfg.Gemini.RetryMaxAttempts)
	log.Println("✅ Services initialized successfully")

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(pdfParser, skillExtractor, cfg.Server.MaxUploadSize)
	matchHandler := handlers.NewMatchHandler(matcherService, analysisRepo, vectorStore)
	rewriteHandler := handlers.NewRewriteHandler(pdfParser, rewriteService, pdfWriter, cfg.Server.MaxUploadSize)
	analysisHandler := handlers.NewAnalysisHandler(analysisRepo, vectorStore)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Server.MaxUploadSize),
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api")

	api.Post("/upload", uploadHandler.HandleUpload)
	api.Post("/match", matchHandler.HandleMatch)
	api.Post("/rewrite_resume", rewriteHandler.HandleRewrite)
	api.Get("/analyses", analysisHandler.HandleListAnalyses)
	api.Get("/analyses/:id", analysisHandler.HandleGetAnalysis)
	api.Post("/analyses/search", analysisHandler.HandleSearchAnalyses)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Matcher API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/upload",
				"POST /api/match",
				"POST /api/rewrite_resume",
				"GET /api/analyses",
				"GET /api/analyses/:id",
				"POST /api/analyses/search",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
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

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

	"screenerpro/engine/internal/config"
	"screenerpro/engine/internal/handlers"
	"screenerpro/engine/internal/repositories"
	"screenerpro/engine/internal/screening"
	"screenerpro/engine/internal/services"
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
	docRepo := repositories.NewDocumentRepository(db)
	screeningRepo := repositories.NewScreeningRepository(db)
	log.Println("✅ Repositories initialized successfully")

	// Initialize storage
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		log.Fatalf("❌ Failed to create upload directory: %v", err)
	}

	// Initialize OCR and text extraction
	ocrEngine := services.NewTesseractEngine(cfg.Screening.TesseractPath, cfg.Screening.PdftoppmPath)
	if !ocrEngine.Available() {
		log.Println("⚠️  tesseract/pdftoppm not found, scanned resumes will fail extraction")
	}
	extractor := services.NewTextExtractorService(ocrEngine, cfg.Screening.MinTextYield)
	log.Println("✅ Text extraction initialized")

	// Initialize embedder. Gemini when a key is configured, a local hashed
	// embedder otherwise.
	var embedder services.EmbeddingService
	if cfg.Gemini.APIKey != "" {
		embedder, err = services.NewGeminiEmbedder(cfg.Gemini.APIKey)
		if err != nil {
			log.Fatalf("❌ Failed to initialize Gemini embedder: %v", err)
		}
		log.Println("✅ Gemini embedder initialized")
	} else {
		embedder = services.NewLocalEmbedder()
		log.Println("⚠️  GEMINI_API_KEY not set, using local embedder")
	}

	// Initialize scoring strategy
	strategy, warning := screening.SelectStrategy(cfg.Screening.ModelPath)
	if warning != "" {
		log.Printf("⚠️  %s\n", warning)
	}
	log.Printf("✅ Scoring strategy: %s\n", strategy.Name())

	// Initialize pipeline
	vocab := screening.DefaultVocabulary()
	pipeline := services.NewPipelineService(extractor, embedder, vocab, strategy, cfg.Screening.Concurrency)
	log.Println("✅ Screening pipeline initialized")

	// Initialize the talent pool. Optional: screening works without it,
	// similar-candidate search does not.
	var vectorStore services.VectorStoreService
	chunker := services.NewTextChunker()
	vectorStore, err = services.NewVectorStoreService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
		embedder,
		chunker,
	)
	if err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant, talent pool disabled: %v\n", err)
		vectorStore = nil
	} else if err := vectorStore.InitCollection(); err != nil {
		log.Printf("⚠️  Failed to initialize Qdrant collection, talent pool disabled: %v\n", err)
		vectorStore = nil
	} else {
		log.Println("✅ Qdrant initialized successfully")
	}

	// Initialize and start worker
	worker := services.NewWorker(screeningRepo, docRepo, pipeline, vectorStore, cfg.Worker.Concurrency)
	ctx := context.Background()
	worker.Start(ctx)

	// Initialize handlers
	uploadHandler := handlers.NewUploadHandler(docRepo, storageService, cfg.Storage.MaxFileSize)
	screeningHandler := handlers.NewScreeningHandler(
		screeningRepo,
		docRepo,
		extractor,
		worker,
		cfg.Screening.MaxExperienceYears,
	)
	resultHandler := handlers.NewResultHandler(screeningRepo, vectorStore)
	similarHandler := handlers.NewSimilarHandler(screeningRepo, embedder, vectorStore)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "ScreenerPro API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
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
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/upload", uploadHandler.HandleUpload)
	api.Delete("/documents/:id", uploadHandler.HandleDeleteDocument)
	api.Post("/screenings", screeningHandler.HandleScreen)
	api.Get("/screenings/:id", resultHandler.HandleGetScreening)
	api.Get("/screenings/:id/results/:resultID/similar", similarHandler.HandleGetSimilar)
	api.Delete("/screenings/:id/results/:resultID", resultHandler.HandleDeleteResult)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "ScreenerPro API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/upload",
				"DELETE /api/v1/documents/:id",
				"POST /api/v1/screenings",
				"GET /api/v1/screenings/:id",
				"GET /api/v1/screenings/:id/results/:resultID/similar",
				"DELETE /api/v1/screenings/:id/results/:resultID",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		worker.Stop()
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

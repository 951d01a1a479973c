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

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/pharmatrack/meeting-tracker/pkg/validator"

	"github.com/pharmatrack/meeting-tracker/internal/adapter/handler"
	"github.com/pharmatrack/meeting-tracker/internal/adapter/repository"
	"github.com/pharmatrack/meeting-tracker/internal/infrastructure/cache"
	"github.com/pharmatrack/meeting-tracker/internal/infrastructure/database"
	"github.com/pharmatrack/meeting-tracker/internal/infrastructure/storage"
	aiuse "github.com/pharmatrack/meeting-tracker/internal/usecase/ai"
	meetinguse "github.com/pharmatrack/meeting-tracker/internal/usecase/meeting"
	summaryuse "github.com/pharmatrack/meeting-tracker/internal/usecase/summary"
	pkgai "github.com/pharmatrack/meeting-tracker/pkg/ai"
	"github.com/pharmatrack/meeting-tracker/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run AutoMigrate only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Applying migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize cache, falling back to memory when Redis is unreachable
	log.Println("📦 Connecting to Redis...")
	var cacheStore cache.Store
	redisStore, err := cache.NewRedisStore(context.Background(), cfg)
	if err != nil {
		log.Printf("⚠️  Redis unavailable (%v), using in-memory cache", err)
		memStore := cache.NewMemoryStore()
		defer memStore.Close()
		cacheStore = memStore
	} else {
		defer redisStore.Close()
		cacheStore = redisStore
	}

	// Initialize object storage
	log.Println("📦 Connecting to MinIO...")
	blobStore, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	meetingRepo := repository.NewMeetingRepository(db)
	tagRepo := repository.NewTagRepository(db)
	audioRepo := repository.NewAudioRepository(db)

	// Initialize AI clients
	log.Println("🤖 Initializing AI components...")
	openaiClient := pkgai.NewOpenAIClient(cfg.OpenAI)
	realtimeClient := pkgai.NewRealtimeClient(cfg.OpenAI)
	if !cfg.OpenAI.Configured() {
		log.Println("⚠️  OPENAI_API_KEY not set; AI endpoints will return errors")
	}

	// Initialize services
	log.Println("✨ Initializing services...")
	meetingService := meetinguse.NewMeetingService(meetingRepo, tagRepo, audioRepo, blobStore, logger)
	aiService := aiuse.NewAIService(openaiClient, realtimeClient, logger)
	summaryService := summaryuse.NewSummaryService(openaiClient, meetingRepo, blobStore, cacheStore, logger)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	meetingHandler := handler.NewMeetingHandler(meetingService, logger)
	aiHandler := handler.NewAIHandler(aiService, summaryService, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, meetingHandler, aiHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}

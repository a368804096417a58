package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mortgage/internal/app"
	"mortgage/internal/config"
	"mortgage/internal/handler"
	"mortgage/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Print version info
	log.Printf("KL Mortgage Evaluator")
	log.Printf("Version: %s", Version)
	log.Printf("Build Time: %s", BuildTime)
	log.Printf("Git Commit: %s", GitCommit)
	log.Println("")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.NewLogger(utils.ParseLevel(cfg.Logging.Level))

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// Load the dataset and fit both models before accepting traffic
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	bundle, err := app.LoadBundle(ctx, cfg, logger)
	cancel()
	if err != nil {
		log.Fatalf("Failed to initialize models: %v", err)
	}

	info := bundle.Describe()
	log.Printf("✅ Models ready")
	log.Printf("   - Region: %s", info.Region)
	log.Printf("   - Training rows: %d", info.TrainingRows)
	log.Printf("   - Districts: %d", len(info.Districts))
	log.Printf("   - Seed: %d", info.Seed)
	log.Printf("   - Rate model: %d trees, depth %d, learning rate %.2f",
		info.Rate.Estimators, info.Rate.MaxDepth, info.Rate.LearningRate)

	// Initialize handlers
	evaluationHandler := handler.NewEvaluationHandler(bundle, bundle.Evaluator(), cfg.Dataset.Region, logger)
	modelHandler := handler.NewModelHandler(bundle)

	// Setup Gin router
	router := gin.Default()
	router.Use(handler.RequestID())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.AllowedOrigins}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Authorization", handler.RequestIDHeader}
	corsConfig.ExposeHeaders = []string{handler.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":        "healthy",
			"service":       "mortgage-evaluator",
			"training_rows": info.TrainingRows,
			"version":       Version,
			"build_time":    BuildTime,
			"git_commit":    GitCommit,
		})
	})

	// Version endpoint
	router.GET("/version", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	// Form
	router.GET("/", evaluationHandler.Form)
	router.POST("/evaluate", evaluationHandler.SubmitForm)

	// API routes
	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/evaluate", evaluationHandler.Evaluate)
		apiV1.GET("/districts", evaluationHandler.Districts)
		apiV1.GET("/model", modelHandler.Info)
	}

	// Templates and static assets
	// This function is implemented in embed.go (production) or static_dev.go (development)
	setupStaticFiles(router, cfg.Server)

	// Start server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("🚀 Starting server on %s", addr)
	log.Printf("📝 API: http://localhost:%d/api/v1/evaluate", cfg.Server.Port)
	log.Printf("🌐 Web UI: http://localhost:%d", cfg.Server.Port)

	go func() {
		if err := router.Run(addr); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	log.Println("✅ Server stopped")
}

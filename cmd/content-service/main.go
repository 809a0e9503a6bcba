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

	"linkedin-content-engine/internal/engine/config"
	delivery "linkedin-content-engine/internal/engine/delivery/http"
	_ "linkedin-content-engine/internal/engine/docs"
	"linkedin-content-engine/internal/engine/repository"
	"linkedin-content-engine/internal/engine/service"
	"linkedin-content-engine/pkg/logger"
	"linkedin-content-engine/pkg/postgres"
	"linkedin-content-engine/pkg/redis"
	"linkedin-content-engine/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the content service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Content Service", logger.Field("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis
	redisCfg := redis.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	}
	redisClient, err := redis.NewClient(redisCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
	}
	defer redisClient.Close()

	// Initialize repositories
	storyRepo := repository.NewStoryRepository(db.DB)
	postRepo := repository.NewGeneratedPostRepository(db.DB)
	batchRepo := repository.NewBatchRepository(db.DB)
	feedbackRepo := repository.NewFeedbackRepository(db.DB)
	preferenceRepo := repository.NewStoryPreferenceRepository(db.DB)
	cacheRepo := repository.NewPostCacheRepository(redisClient.Client)

	// Initialize AI provider with the other one as fallback
	openAIRepo := repository.NewOpenAIRepository(cfg, appLogger)
	genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: cfg.Gemini.APIKey,
	})
	if err != nil {
		appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
	}
	geminiRepo := repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)

	var completionRepo repository.TextCompletionRepository
	switch cfg.AI.Provider {
	case "gemini":
		completionRepo = repository.NewFallbackCompletionRepository(geminiRepo, openAIRepo, appLogger)
	case "openai":
		completionRepo = repository.NewFallbackCompletionRepository(openAIRepo, geminiRepo, appLogger)
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize Telegram notifier
	var notifier telegram.Notifier
	if cfg.Telegram.Enabled {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	qualityCfg := service.DefaultQualityConfig()
	qualityCfg.Threshold = cfg.Engine.QualityThreshold
	scorer := service.NewQualityScorer(qualityCfg)
	generatorSvc := service.NewGeneratorService(cfg, scorer, completionRepo, storyRepo, postRepo, batchRepo, cacheRepo, notifier, appLogger)
	feedbackSvc := service.NewFeedbackService(cfg, feedbackRepo, batchRepo, postRepo, preferenceRepo, notifier, appLogger)
	recommenderSvc := service.NewRecommenderService(cfg, storyRepo, postRepo, preferenceRepo, appLogger)
	collectorSvc := service.NewCollectorService(cfg, storyRepo, appLogger)

	// Schedule background jobs
	scheduler := cron.New()
	if cfg.Collector.CronSpec != "" {
		if _, err := scheduler.AddFunc(cfg.Collector.CronSpec, func() {
			if _, err := collectorSvc.CollectStories(ctx); err != nil {
				appLogger.Error("Story collection run failed", logger.ErrorField(err))
			}
		}); err != nil {
			appLogger.Fatal("Invalid collector cron spec", logger.ErrorField(err))
		}
	}
	if cfg.Engine.LearnCronSpec != "" {
		if _, err := scheduler.AddFunc(cfg.Engine.LearnCronSpec, func() {
			if err := feedbackSvc.LearnFromFeedback(ctx); err != nil {
				appLogger.Error("Scheduled learning pass failed", logger.ErrorField(err))
			}
		}); err != nil {
			appLogger.Fatal("Invalid learning cron spec", logger.ErrorField(err))
		}
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	// Initialize handlers and routes
	apiV1 := e.Group("/api/v1")

	postHandler := delivery.NewPostHandler(generatorSvc, postRepo, appLogger)
	postsGroup := apiV1.Group("/posts")
	postHandler.RegisterRoutes(postsGroup)

	feedbackHandler := delivery.NewFeedbackHandler(feedbackSvc, postRepo, appLogger)
	feedbackGroup := apiV1.Group("/feedback")
	batchesGroup := apiV1.Group("/batches")
	feedbackHandler.RegisterRoutes(feedbackGroup, batchesGroup)

	recommendationHandler := delivery.NewRecommendationHandler(recommenderSvc, feedbackSvc, appLogger)
	recommendationHandler.RegisterRoutes(apiV1)

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop() // trigger shutdown
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	// Gracefully shutdown the server
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title LinkedIn Content Engine API
// @version 1.0
// @description Generates, scores and ranks LinkedIn posts and learns from review feedback.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "content-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing content-service CLI: %s\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/bellevuewa/chatbot-multilingual/internal/bot"
	"github.com/bellevuewa/chatbot-multilingual/internal/content"
	"github.com/bellevuewa/chatbot-multilingual/internal/conversation"
	"github.com/bellevuewa/chatbot-multilingual/internal/feedback"
	"github.com/bellevuewa/chatbot-multilingual/internal/phrases"
	"github.com/bellevuewa/chatbot-multilingual/internal/pipeline"
	"github.com/bellevuewa/chatbot-multilingual/internal/qna"
	"github.com/bellevuewa/chatbot-multilingual/internal/translator"
	"github.com/bellevuewa/chatbot-multilingual/internal/urlmap"
	"github.com/bellevuewa/chatbot-multilingual/pkg/common"
	"github.com/bellevuewa/chatbot-multilingual/pkg/config"
	"github.com/bellevuewa/chatbot-multilingual/pkg/database"
	"github.com/bellevuewa/chatbot-multilingual/pkg/logger"
	"github.com/bellevuewa/chatbot-multilingual/pkg/middleware"
	"github.com/bellevuewa/chatbot-multilingual/pkg/redis"
	"github.com/bellevuewa/chatbot-multilingual/pkg/resilience"
)

const version = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("bot")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := database.NewPostgresPool(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()
	logger.Info("Connected to PostgreSQL database")

	// Connect to Redis
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	logger.Info("Connected to Redis")

	// Load the read-only registries once at startup; they are injected
	// everywhere and never mutated afterwards.
	phraseStore, err := phrases.Load(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to load phrase overrides: %v", err)
	}
	urlStore, err := urlmap.Load(ctx, pool)
	if err != nil {
		log.Fatalf("Failed to load url mappings: %v", err)
	}
	registry, err := content.LoadRegistry(ctx, content.NewPostgresStore(pool), cfg.Bot.ResourcesPath)
	if err != nil {
		log.Fatalf("Failed to load content registry: %v", err)
	}
	logger.Info("Registries loaded",
		zap.Int("phrase_overrides", phraseStore.Len()),
	)

	// Remote translator behind a circuit breaker
	breaker := resilience.NewBreaker(resilience.BuildSettings("translator", 60, 30, 5, 1))
	translatorClient := translator.NewClient(
		cfg.Translator.Endpoint,
		cfg.Translator.SubscriptionKey,
		time.Duration(cfg.Translator.TimeoutSeconds)*time.Second,
		breaker,
	)

	interactionLogger := feedback.NewInteractionLogger(pool)
	var sink pipeline.InteractionSink
	if registry.Flags().LogInteractions {
		sink = interactionLogger
	}

	turnPipeline := pipeline.New(
		translatorClient,
		phraseStore,
		urlStore,
		registry,
		sink,
		cfg.Bot.TranslateTo,
		cfg.Bot.SkipLanguageDetectionAfterInitialChoice,
	)

	answers := qna.NewClient(cfg.QnA.Endpoint, cfg.QnA.EndpointKey, time.Duration(cfg.QnA.TimeoutSeconds)*time.Second)
	states := conversation.NewRedisStore(redisClient)
	service := bot.NewService(
		turnPipeline,
		registry,
		states,
		feedback.NewAnnotator(registry),
		feedback.NewRecorder(pool),
		answers,
	)
	handler := bot.NewHandler(service)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheck("bot", version, map[string]func() error{
		"postgres": func() error { return pool.Ping(context.Background()) },
		"redis":    func() error { return redisClient.Ping(context.Background()).Err() },
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/messages", handler.PostActivity)
		api.PUT("/messages", handler.UpdateActivity)
	}

	addr := ":" + cfg.Server.Port
	logger.Info("Bot service starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-docquery-be/internal/config"
	"ai-docquery-be/internal/controller"
	"ai-docquery-be/internal/pkg/logger"
	"ai-docquery-be/internal/repository/implementation"
	"ai-docquery-be/internal/repository/memory"
	"ai-docquery-be/internal/service"
	"ai-docquery-be/pkg/blob"
	"ai-docquery-be/pkg/cache"
	"ai-docquery-be/pkg/embedding"
	"ai-docquery-be/pkg/llm/factory"

	pktNats "ai-docquery-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	DocumentController controller.IDocumentController
	QueryController    controller.IQueryController

	// Background Services (Exposed for main.go to run)
	IngestionService service.IIngestionService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sessionRepo := implementation.NewDocumentSessionRepository(db)
	chunkRepo := implementation.NewDocumentChunkRepository(db)
	sessionCache := memory.NewSessionCache()

	// 2. Event Bus (in-process ingestion pipeline)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. External collaborators
	// Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	switch cfg.Ai.EmbeddingProvider {
	case "ollama":
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.EmbeddingModel)
	case "gemini":
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	default:
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.OpenAIKey, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	}

	// LLM Provider based on Config
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// Blob storage for document uploads
	blobStore, err := blob.NewMinioStore(blob.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize blob storage: %v", err)
	}

	// NATS (outward lifecycle events, soft dependency)
	var eventPublisher service.EventPublisher
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	} else {
		eventPublisher = natsPub
	}

	// Redis answer cache (soft dependency)
	var answerCache *cache.AnswerCache
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis, answer cache disabled: %v", err)
	} else if cfg.Retrieval.AnswerCacheTTL > 0 {
		answerCache = cache.NewAnswerCache(rdb, time.Duration(cfg.Retrieval.AnswerCacheTTL)*time.Minute)
	}

	// 4. Services
	publisherService := service.NewPublisherService(cfg.Retrieval.IngestTopic, pubSub)

	sessionService := service.NewSessionService(
		sessionRepo,
		chunkRepo,
		blobStore,
		eventPublisher,
		sysLogger,
		time.Duration(cfg.Retrieval.UploadTTLMinutes)*time.Minute,
	)

	ingestionService := service.NewIngestionService(
		pubSub,
		cfg.Retrieval.IngestTopic,
		publisherService,
		sessionRepo,
		chunkRepo,
		sessionCache,
		blobStore,
		embeddingProvider,
		eventPublisher,
		sysLogger,
		cfg.Retrieval.ChunkMaxChars,
	)

	queryService := service.NewQueryService(
		sessionRepo,
		chunkRepo,
		sessionCache,
		answerCache,
		embeddingProvider,
		llmProvider,
		sysLogger,
		cfg.Retrieval.TopK,
	)

	// 5. Controllers
	return &Container{
		SessionController:  controller.NewSessionController(sessionService),
		DocumentController: controller.NewDocumentController(ingestionService),
		QueryController:    controller.NewQueryController(queryService),

		IngestionService: ingestionService,

		Logger: sysLogger,
	}
}

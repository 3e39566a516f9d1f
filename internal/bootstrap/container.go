package bootstrap

import (
	"context"
	"log"

	"zeorag-be/internal/config"
	"zeorag-be/internal/controller"
	"zeorag-be/internal/pkg/logger"
	"zeorag-be/internal/repository/memory"
	"zeorag-be/internal/repository/unitofwork"
	"zeorag-be/internal/service"
	"zeorag-be/internal/websocket"
	"zeorag-be/pkg/embedding"
	"zeorag-be/pkg/llm/factory"
	pktNats "zeorag-be/pkg/nats"
	"zeorag-be/pkg/objectstore"
	"zeorag-be/pkg/rag/pipeline"
	"zeorag-be/pkg/rag/retriever"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SessionController  controller.ISessionController
	QueryController    controller.IQueryController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	WebSocketHub *websocket.Hub

	// Services (Exposed for the CLI shell)
	HistoryService service.IHistoryService
	RagService     service.IRagService
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory, err := unitofwork.NewRepositoryFactory(db)
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.OpenAIBaseURL,
		cfg.Keys.OpenAI,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OpenAIBaseURL,
		cfg.Keys.OpenAI,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	store, err := objectstore.NewClient(objectstore.Config{
		Endpoint:  cfg.ObjectStore.Endpoint,
		AccessKey: cfg.ObjectStore.AccessKey,
		SecretKey: cfg.ObjectStore.SecretKey,
		Bucket:    cfg.ObjectStore.Bucket,
		UseSSL:    cfg.ObjectStore.UseSSL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object store: %v", err)
	}

	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/ingestion_events.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 5. Services
	listingCache := memory.NewSessionListingCache()

	historyService := service.NewHistoryService(uowFactory, listingCache, sysLogger)

	// Retrieval wiring: one repository handle outside the unit of work is
	// enough, search is read-only.
	embeddingRepoUow := uowFactory.NewUnitOfWork(context.Background())
	ragRetriever := retriever.NewRetriever(embeddingProvider, embeddingRepoUow.DocumentEmbeddingRepository(), cfg.Ai.RetrievalTopK)
	ragPipeline := pipeline.NewPipeline(llmProvider, ragRetriever)

	ragService := service.NewRagService(uowFactory, historyService, ragPipeline, sysLogger)

	publisherService := service.NewPublisherService(pubSub, cfg.Ingest.Topic)
	documentService := service.NewDocumentService(uowFactory, store, publisherService, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Ingest.Topic,
		uowFactory,
		store,
		embeddingProvider,
		natsPub,
		sysLogger,
	)

	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go notifService.Start()
	}

	return &Container{
		SessionController:  controller.NewSessionController(historyService),
		QueryController:    controller.NewQueryController(ragService),
		DocumentController: controller.NewDocumentController(documentService),

		ConsumerService: consumerService,
		WebSocketHub:    wsHub,

		HistoryService: historyService,
		RagService:     ragService,
	}
}

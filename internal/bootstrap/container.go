package bootstrap

import (
	"context"
	"log"
	"time"

	"bionic-interviewer-be/internal/config"
	"bionic-interviewer-be/internal/controller"
	"bionic-interviewer-be/internal/handler"
	"bionic-interviewer-be/internal/pkg/logger"
	"bionic-interviewer-be/internal/pkg/serverutils"
	"bionic-interviewer-be/internal/repository/memory"
	"bionic-interviewer-be/internal/repository/unitofwork"
	"bionic-interviewer-be/internal/service"
	"bionic-interviewer-be/internal/websocket"
	"bionic-interviewer-be/pkg/capture"
	pktNats "bionic-interviewer-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const interviewEventsTopic = "interview_events"

type Container struct {
	// Controllers
	InterviewController  controller.IInterviewController
	AuthController       controller.IAuthController
	TranscriptController controller.ITranscriptController
	EmotionController    controller.IEmotionController
	CaptureController    controller.ICaptureController

	// Middleware shared by call-scoped routes
	TokenMiddleware fiber.Handler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Status updates
	StatusHandler *handler.StatusHandler
	WebSocketHub  *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
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

	// Capture buffers. The backend is selectable so a single-instance deploy
	// can stay in memory while a clustered one shares Redis.
	captureLogger := logger.NewIsolatedLogger("logs/capture.log")
	captureBackend := newCaptureBackend(cfg, rdb)
	transcriptStore := capture.NewTranscriptStore(captureBackend, captureLogger)
	emotionStore := capture.NewEmotionStore(captureBackend, captureLogger)

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/status.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(interviewEventsTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		interviewEventsTopic,
		uowFactory,
	)

	tokenCache := memory.NewTokenCache()
	authService := service.NewAuthService(uowFactory, tokenCache)
	interviewService := service.NewInterviewService(
		uowFactory,
		natsPub,
		cfg.App.ClientURL,
		cfg.Auth.TokenExpiryDays,
	)
	transcriptService := service.NewTranscriptService(uowFactory, publisherService, natsPub)
	emotionService := service.NewEmotionService(uowFactory, publisherService, natsPub)
	captureService := service.NewCaptureService(
		transcriptStore,
		emotionStore,
		transcriptService,
		emotionService,
		sysLogger,
	)

	// 3.5 Status push (NATS -> WebSocket)
	statusNotifier := service.NewStatusNotifierService(natsSub, wsHub, wsLogger)
	if natsSub != nil {
		go statusNotifier.Start()
	}

	statusHandler := handler.NewStatusHandler(authService, wsHub, wsLogger)

	tokenMiddleware := serverutils.InterviewTokenMiddleware(func(ctx context.Context, token string) (string, uuid.UUID, error) {
		resolved, err := authService.ValidateToken(ctx, token)
		if err != nil {
			return "", uuid.Nil, err
		}
		return resolved.Role, resolved.InterviewId, nil
	})

	// 4. Controllers
	return &Container{
		InterviewController:  controller.NewInterviewController(interviewService),
		AuthController:       controller.NewAuthController(authService),
		TranscriptController: controller.NewTranscriptController(transcriptService),
		EmotionController:    controller.NewEmotionController(emotionService),
		CaptureController:    controller.NewCaptureController(captureService),

		TokenMiddleware: tokenMiddleware,

		ConsumerService: consumerService,

		StatusHandler: statusHandler,
		WebSocketHub:  wsHub,
	}
}

func newCaptureBackend(cfg *config.Config, rdb *redis.Client) capture.Backend {
	switch cfg.Capture.Backend {
	case "redis":
		ttl := time.Duration(cfg.Capture.RedisTTLMinutes) * time.Minute
		return capture.NewRedisBackend(rdb, ttl)
	case "file":
		backend, err := capture.NewFileBackend(cfg.Capture.Dir)
		if err != nil {
			log.Printf("[WARN] Failed to init file capture backend: %v. Falling back to memory", err)
			return capture.NewMemoryBackend(0)
		}
		return backend
	default:
		return capture.NewMemoryBackend(0)
	}
}

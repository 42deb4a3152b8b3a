package bootstrap

import (
	"context"
	"log"

	"careerhub-billing/internal/config"
	"careerhub-billing/internal/controller"
	"careerhub-billing/internal/pkg/logger"
	"careerhub-billing/internal/repository/unitofwork"
	"careerhub-billing/internal/service"
	"careerhub-billing/pkg/events"
	pkgRazorpay "careerhub-billing/pkg/razorpay"

	pktNats "careerhub-billing/pkg/nats"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SubscriptionController controller.ISubscriptionController
	CreditController       controller.ICreditController
	EngagementController   controller.IEngagementController
	WebhookController      controller.IWebhookController

	// Shared infrastructure (exposed for shutdown)
	Logger    logger.ILogger
	Publisher events.Publisher
	Redis     *redis.Client
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	// NATS when configured, in-process bus otherwise.
	var publisher events.Publisher
	var localBus *events.LocalBus
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v. Falling back to local bus", err)
			localBus = events.NewLocalBus()
			publisher = localBus
		} else {
			publisher = natsPub
		}
	} else {
		localBus = events.NewLocalBus()
		publisher = localBus
	}

	// Redis (webhook deduplication)
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

	// Payment gateway
	gateway := pkgRazorpay.NewClient(cfg.Razorpay.KeyId, cfg.Razorpay.KeySecret)
	if !gateway.Configured() {
		log.Printf("[WARN] Razorpay credentials not configured, payment endpoints will return 503")
	}

	// 3. Services
	pricingService := service.NewPricingService(uowFactory, sysLogger)
	promotionService := service.NewPromotionService(uowFactory)
	subscriptionService := service.NewSubscriptionService(
		uowFactory,
		promotionService,
		gateway,
		cfg.Razorpay,
		rdb,
		publisher,
		sysLogger,
	)
	creditService := service.NewCreditService(
		uowFactory,
		pricingService,
		promotionService,
		subscriptionService,
		gateway,
		cfg.Razorpay,
		publisher,
		sysLogger,
	)
	engagementService := service.NewEngagementService(uowFactory, publisher, sysLogger)

	// In-process bus has no external consumer; drain events to the
	// audit log so they are not silently dropped.
	if localBus != nil {
		consumer := service.NewConsumerService(localBus, sysLogger)
		if err := consumer.Consume(context.Background()); err != nil {
			log.Printf("[WARN] Failed to start event consumer: %v", err)
		}
	}

	// 4. Controllers
	return &Container{
		SubscriptionController: controller.NewSubscriptionController(subscriptionService),
		CreditController:       controller.NewCreditController(creditService),
		EngagementController:   controller.NewEngagementController(engagementService),
		WebhookController:      controller.NewWebhookController(subscriptionService),
		Logger:                 sysLogger,
		Publisher:              publisher,
		Redis:                  rdb,
	}
}

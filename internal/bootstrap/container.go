package bootstrap

import (
	"context"
	"time"

	"cme-be/internal/config"
	"cme-be/internal/controller"
	"cme-be/internal/pkg/logger"
	"cme-be/internal/repository/unitofwork"
	"cme-be/internal/service"
	"cme-be/pkg/crawler"
	"cme-be/pkg/events"
	"cme-be/pkg/extraction"
	"cme-be/pkg/identity"
	"cme-be/pkg/ingest"
	pktNats "cme-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const bootstrapModule = "BOOTSTRAP"

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	DataController controller.IDataController

	// Services used by the command line entry points
	AuthService    service.IAuthService
	SessionService service.ISessionService
	MdbService     service.IMdbService

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

// NewContainer wires the service against Postgres.
func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	return Build(unitofwork.NewRepositoryFactory(db), cfg, sysLogger)
}

// Build wires every component on top of the given repositories. The event
// bus and the Redis lock are optional and skipped when not configured or
// unreachable.
func Build(uowFactory unitofwork.RepositoryFactory, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Event Bus
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			sysLogger.Warn(bootstrapModule, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		} else {
			c.closers = append(c.closers, natsPub.Close)
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn(bootstrapModule, "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		} else {
			c.closers = append(c.closers, natsSub.Close)
		}
	}

	// 2. Identity
	resolver := identity.NewResolver(
		uowFactory.NewUnitOfWork(context.Background()).MdbRepository(),
		c.newLocker(cfg),
		sysLogger,
	)
	mdbLookup := uowFactory.NewUnitOfWork(context.Background()).MdbRepository()

	// 3. Services
	source := crawler.NewFileSource(cfg.Extraction.CrawlerDataDir)
	extractor := extraction.NewExtractor(resolver, sysLogger, extraction.WithDebugObjects(cfg.Extraction.AddDebugObjects))

	var eventPublisher service.EventPublisher
	if natsPub != nil {
		eventPublisher = natsPub
	}

	c.SessionService = service.NewSessionService(
		uowFactory,
		source,
		ingest.NewJSONReader(resolver, mdbLookup, sysLogger),
		extractor,
		eventPublisher,
		sysLogger,
	)
	c.MdbService = service.NewMdbService(uowFactory, source, resolver, sysLogger)
	c.AuthService = service.NewAuthService(
		uowFactory,
		cfg.Auth.JwtSecret,
		time.Duration(cfg.Auth.JwtTTLMinutes)*time.Minute,
		sysLogger,
	)
	publisherService := service.NewPublisherService(cfg.Extraction.EvaluationTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, cfg.Extraction.EvaluationTopic, c.SessionService, sysLogger)

	if natsSub != nil {
		err := natsSub.Subscribe(context.Background(), events.SessionsCrawled, "cme-evaluator", service.CrawledEventHandler(publisherService))
		if err != nil {
			sysLogger.Warn(bootstrapModule, "Failed to subscribe to crawler events", map[string]interface{}{"error": err.Error()})
		}
	}

	// 4. Controllers
	c.AuthController = controller.NewAuthController(c.AuthService)
	c.DataController = controller.NewDataController(c.SessionService, c.MdbService, service.NewFactionService(), publisherService)

	return c
}

// Close releases bus and Redis connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}

func (c *Container) newLocker(cfg *config.Config) identity.Locker {
	sysLogger := c.Logger
	if cfg.Extraction.IdentityLockBackend != "redis" {
		return identity.NewKeyedMutex()
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		sysLogger.Warn(bootstrapModule, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		sysLogger.Warn(bootstrapModule, "Redis unreachable, falling back to in-process identity lock", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return identity.NewKeyedMutex()
	}

	c.closers = append(c.closers, func() { _ = rdb.Close() })
	ttl := time.Duration(cfg.Extraction.IdentityLockTTLSeconds) * time.Second
	return identity.NewRedisLocker(rdb, ttl)
}

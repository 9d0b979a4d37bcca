package container

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/oksasatya/user-auth-service/config"
	"github.com/oksasatya/user-auth-service/internal/application"
	repo "github.com/oksasatya/user-auth-service/internal/domain/repository"
	"github.com/oksasatya/user-auth-service/internal/infrastructure/memory"
	mongoinfra "github.com/oksasatya/user-auth-service/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/user-auth-service/internal/infrastructure/postgres"
	"github.com/oksasatya/user-auth-service/internal/infrastructure/search"
	handlers "github.com/oksasatya/user-auth-service/internal/interface/http"
	"github.com/oksasatya/user-auth-service/pkg/helpers"
)

// Container holds every component built for one process. It is created once
// by New and passed explicitly; nothing here is a package-level global.
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Repo      repo.UserRepository
	Mongo     *mongo.Client
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher
	ES        *elasticsearch.Client

	Hasher *helpers.PasswordHasher
	JWT    *helpers.JWTManager

	AuthService *application.AuthService
	UserService *application.UserService

	AppHandler  *handlers.AppHandler
	AuthHandler *handlers.AuthHandler
	UserHandler *handlers.UserHandler

	closers []func()
}

// New builds the container in a fixed order: store, optional infra, hasher,
// JWT manager, services, handlers. On error everything opened so far is closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	c := &Container{Config: cfg, Logger: logger}

	if err := c.openStore(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.openOptional(ctx); err != nil {
		c.Close()
		return nil, err
	}

	c.Hasher = helpers.NewPasswordHasher(cfg.BcryptCost)
	c.JWT = helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.AccessTTL, cfg.JWTIssuer)

	c.AuthService = application.NewAuthService(c.Repo, c.Hasher, c.JWT, logger)
	c.UserService = application.NewUserService(c.Repo, c.Hasher, logger)
	c.UserService.AppName = cfg.AppName
	c.UserService.SendMail = cfg.MailSendEnabled
	if c.ES != nil {
		c.UserService.Indexer = search.NewUserIndex(c.ES, cfg.ESUsersIndex)
	}
	if c.Publisher != nil {
		c.UserService.Publisher = c.Publisher
	}

	c.AppHandler = handlers.NewAppHandler(cfg.AppName, cfg.Port, c.UserService, logger)
	c.AuthHandler = handlers.NewAuthHandler(c.AuthService, logger)
	c.UserHandler = handlers.NewUserHandler(c.UserService, logger)
	return c, nil
}

func (c *Container) openStore(ctx context.Context) error {
	cfg := c.Config
	switch cfg.StoreDriver {
	case config.StoreMemory:
		c.Repo = memory.NewUserRepository()
		c.Logger.Warn("using in-memory credential store; data is lost on restart")

	case config.StoreMongo:
		client, err := mongoinfra.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return fmt.Errorf("connect mongo: %w", err)
		}
		c.Mongo = client
		c.closers = append(c.closers, func() { _ = client.Disconnect(context.Background()) })

		r := mongoinfra.NewUserRepository(client, cfg.MongoDatabase, cfg.MongoCollection)
		if err := mongoinfra.EnsureUserIndexes(ctx, r.Collection()); err != nil {
			return fmt.Errorf("mongo indexes: %w", err)
		}
		c.Repo = r

	case config.StorePostgres:
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, c.Logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		pool, err := pginfra.NewPool(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		c.PGPool = pool
		c.closers = append(c.closers, pool.Close)
		c.Repo = pginfra.NewUserRepository(pool)

	default:
		return fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
	c.Logger.WithField("driver", cfg.StoreDriver).Info("credential store ready")
	return nil
}

// openOptional connects redis, rabbitmq and elasticsearch when configured.
// Each stays nil when its address is empty.
func (c *Container) openOptional(ctx context.Context) error {
	cfg := c.Config

	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			// the limiter fails open on redis errors
			c.Logger.WithError(err).Warn("redis ping failed; rate limiting degraded")
		}
		c.Redis = rdb
	}

	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName)
		if err != nil {
			return fmt.Errorf("connect rabbitmq: %w", err)
		}
		c.Publisher = pub
		c.closers = append(c.closers, pub.Close)
	}

	if addrs := cfg.ESAddrs(); len(addrs) > 0 {
		es, err := search.NewClient(addrs, cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			return fmt.Errorf("elasticsearch client: %w", err)
		}
		c.ES = es
	}
	return nil
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

package main

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"github.com/nats-io/nats.go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"

	"github.com/storefront/commerce-api/internal/api"
	"github.com/storefront/commerce-api/internal/api/handler"
	"github.com/storefront/commerce-api/internal/core/ports"
	"github.com/storefront/commerce-api/internal/core/service"
	"github.com/storefront/commerce-api/internal/infrastructure/auth"
	mongodb "github.com/storefront/commerce-api/internal/infrastructure/db/mongo"
	redisdb "github.com/storefront/commerce-api/internal/infrastructure/db/redis"
	"github.com/storefront/commerce-api/internal/infrastructure/messaging"
	"github.com/storefront/commerce-api/internal/infrastructure/queue"
	"github.com/storefront/commerce-api/internal/pkg/config"
	"github.com/storefront/commerce-api/pkg/logger"
)

const (
	sentryFlushTimeout = 2 * time.Second
	dispatcherWorkers  = 4
)

func newLogger(lc fx.Lifecycle, cfg *config.Config) (zerolog.Logger, error) {
	opts := logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
		Fields: map[string]string{"service": "storefront-api", "env": cfg.Env},
	}

	if cfg.SentryDSN != "" {
		w, err := logger.NewSentryWriter(cfg.SentryDSN, cfg.Env)
		if err != nil {
			return zerolog.Logger{}, err
		}
		opts.Extra = append(opts.Extra, w)
		lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				w.Close()
				sentry.Flush(sentryFlushTimeout)
				return nil
			},
		})
	}

	return logger.Init(opts), nil
}

func newMongoDatabase(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*mongo.Database, error) {
	client, db, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo connected")

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Disconnect(ctx)
		},
	})
	return db, nil
}

// newRedisClient returns nil when REDIS_ADDR is not set.
func newRedisClient(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*goredis.Client, error) {
	if cfg.Redis.Addr == "" {
		log.Info().Msg("redis not configured, login throttle disabled")
		return nil, nil
	}

	client, err := redisdb.Connect(context.Background(), redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newLoginThrottle(cfg *config.Config, client *goredis.Client) ports.LoginThrottle {
	if client == nil {
		return nil
	}
	return redisdb.NewLoginThrottle(client, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow.Std())
}

// newNATSConn returns nil when NATS_URL is not set.
func newNATSConn(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*nats.Conn, error) {
	if cfg.NATS.URL == "" {
		return nil, nil
	}

	nc, err := messaging.Connect(cfg.NATS.URL, log)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return nc.Drain()
		},
	})
	return nc, nil
}

func newEventPublisher(cfg *config.Config, nc *nats.Conn, log zerolog.Logger) ports.EventPublisher {
	if nc == nil {
		log.Info().Msg("nats not configured, events are logged only")
		return messaging.NewLogPublisher(log)
	}
	return messaging.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix)
}

func newDispatcher(lc fx.Lifecycle, publisher ports.EventPublisher, log zerolog.Logger) *queue.Dispatcher {
	d := queue.NewDispatcher(dispatcherWorkers, publisher, log)
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Start(context.Background())
			return nil
		},
		OnStop: d.Stop,
	})
	return d
}

func newAuthService(
	users *mongodb.UserRepository,
	hasher *auth.BcryptHasher,
	tokens *auth.JWTService,
	throttle ports.LoginThrottle,
	events *queue.Dispatcher,
	log zerolog.Logger,
) ports.AuthService {
	return service.NewAuthService(users, hasher, tokens, throttle, events, log)
}

func newProductService(products *mongodb.ProductRepository, events *queue.Dispatcher, log zerolog.Logger) ports.ProductService {
	return service.NewProductService(products, events, log)
}

func newReadinessChecks(db *mongo.Database, rdb *goredis.Client, nc *nats.Conn) []handler.Check {
	checks := []handler.Check{{Name: "mongodb", Ping: mongodb.Ping(db)}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: redisdb.Ping(rdb)})
	}
	if nc != nil {
		checks = append(checks, handler.Check{Name: "nats", Ping: messaging.Ping(nc)})
	}
	return checks
}

func newRouter(
	cfg *config.Config,
	log zerolog.Logger,
	authService ports.AuthService,
	productService ports.ProductService,
	tokens *auth.JWTService,
	checks []handler.Check,
) *echo.Echo {
	return api.NewRouter(api.Dependencies{
		Logger:         log,
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AuthService:    authService,
		ProductService: productService,
		Tokens:         tokens,
		Checks:         checks,
	})
}

func ensureIndexes(lc fx.Lifecycle, users *mongodb.UserRepository, products *mongodb.ProductRepository) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return mongodb.EnsureIndexes(ctx, users, products)
		},
	})
}

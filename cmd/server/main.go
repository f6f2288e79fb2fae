// Storefront API
// @title Storefront API
// @version 1.0
// @description User registration, login and product catalogue.

// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"go.uber.org/fx"

	"github.com/storefront/commerce-api/internal/infrastructure/auth"
	mongodb "github.com/storefront/commerce-api/internal/infrastructure/db/mongo"
	"github.com/storefront/commerce-api/internal/pkg/config"
)

func main() {
	fx.New(
		fx.Provide(
			config.Load,
			newLogger,
			newMongoDatabase,
			mongodb.NewUserRepository,
			mongodb.NewProductRepository,
			newRedisClient,
			newLoginThrottle,
			newNATSConn,
			newEventPublisher,
			newDispatcher,
			auth.NewBcryptHasher,
			auth.NewJWTService,
			newAuthService,
			newProductService,
			newReadinessChecks,
			newRouter,
		),
		fx.Invoke(ensureIndexes, runServer),
	).Run()
}

package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/storefront/commerce-api/internal/pkg/config"
)

const shutdownTimeout = 30 * time.Second

// runServer binds the listener on start and shuts Echo down gracefully on stop.
func runServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, cfg *config.Config, e *echo.Echo, log zerolog.Logger) {
	addr := net.JoinHostPort("", cfg.Port)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}
			e.Listener = ln

			log.Info().
				Str("addr", addr).
				Str("environment", cfg.Env).
				Bool("sentry_enabled", cfg.SentryDSN != "").
				Msg("Starting HTTP server")

			go func() {
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("HTTP server stopped unexpectedly")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			log.Info().Msg("Shutting down HTTP server...")
			if err := e.Shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Error during server shutdown")
				return err
			}
			log.Info().Msg("HTTP server shutdown completed")
			return nil
		},
	})
}

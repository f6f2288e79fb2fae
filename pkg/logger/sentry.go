package logger

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
)

const sentryFlushTimeout = 3 * time.Second

// NewSentryWriter initialises the Sentry client and returns a writer that
// forwards error-level events to it. Callers must Close the writer and
// call sentry.Flush on shutdown.
func NewSentryWriter(dsn, environment string) (*sentryzerolog.Writer, error) {
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
	}); err != nil {
		return nil, fmt.Errorf("sentry init: %w", err)
	}

	w, err := sentryzerolog.New(sentryzerolog.Config{
		Options: sentryzerolog.Options{
			Levels:          []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
			WithBreadcrumbs: true,
			FlushTimeout:    sentryFlushTimeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("sentry writer: %w", err)
	}
	return w, nil
}

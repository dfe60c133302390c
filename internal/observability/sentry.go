package observability

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
)

// InitSentry wires error reporting when a DSN is configured. Without one the
// SDK stays a no-op and the returned flush func does nothing.
func InitSentry(dsn string, environment string) (func(), error) {
	if dsn == "" {
		slog.Info("sentry disabled, no DSN configured")
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              dsn,
		Environment:      environment,
		AttachStacktrace: true,
		TracesSampleRate: 0.1,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("sentry initialized", "environment", environment)
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

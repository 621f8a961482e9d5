// Package logger builds the process-wide logger for the Artopia server.
package logger

import (
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns the production logger. When a Sentry DSN is given, error
// and fatal entries are also captured as Sentry events.
func New(sentryDSN string) (*zap.SugaredLogger, error) {
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}

	if sentryDSN != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:         sentryDSN,
			ServerName:  "artopia",
			Environment: "production",
		})
		if err != nil {
			return nil, err
		}

		zapLogger = zapLogger.WithOptions(sentryOption())
	}

	return zapLogger.Named("artopia").Sugar(), nil
}

// Flush drains buffered Sentry events, typically deferred from main.
// Safe to call when no DSN was configured.
func Flush(timeout time.Duration) {
	sentry.Flush(timeout)
}

func sentryOption() zap.Option {
	return zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.RegisterHooks(core, func(entry zapcore.Entry) error {
			if entry.Level < zapcore.ErrorLevel {
				return nil
			}

			sentry.CaptureEvent(&sentry.Event{
				Timestamp: entry.Time,
				Logger:    entry.LoggerName,
				Message:   entry.Message,
				Extra: map[string]any{
					"Stack":  entry.Stack,
					"Caller": entry.Caller.String(),
				},
				Level: sentryLevel(entry.Level),
			})

			return nil
		})
	})
}

func sentryLevel(zapLevel zapcore.Level) sentry.Level {
	switch zapLevel {
	case zapcore.ErrorLevel:
		return sentry.LevelError
	case zapcore.FatalLevel:
		return sentry.LevelFatal
	}

	return sentry.LevelInfo
}

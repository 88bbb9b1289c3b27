package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production"`
	// MinLevel decides which records are stored in Sentry: warn (default) or error.
	// Errors always create issues.
	MinLevel slog.Level
}

// NewWithSentry creates a logger that writes locally and to Sentry.
// Without a DSN, or when the SDK fails to initialize, it logs locally only.
// The returned flush function waits for buffered events; call it before exit.
func NewWithSentry(cfg SentryConfig, opts ...Option) (*slog.Logger, func()) {
	o := newOptions(opts)
	local := o.handler()
	noop := func() {}

	if cfg.DSN == "" {
		return slog.New(WithExtractors(local, o.extractors...)), noop
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		EnableLogs:  true,
	}); err != nil {
		l := slog.New(WithExtractors(local, o.extractors...))
		l.Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return l, noop
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}
	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	l := slog.New(WithExtractors(multiHandler{local, remote}, o.extractors...))
	return l, func() { sentry.Flush(2 * time.Second) }
}

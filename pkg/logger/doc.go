// Package logger builds the structured loggers used by the lingo service and CLI.
//
// Loggers are plain *slog.Logger values. New writes JSON (or text) to stdout at a
// configurable level; NewWithSentry additionally forwards warnings and errors to
// Sentry when a DSN is configured and falls back to local output otherwise.
//
//	opts, err := logger.FromConfig(logger.Config{Level: "debug", Format: "text"})
//	if err != nil {
//		return err
//	}
//	log := logger.New(append(opts, logger.WithContextExtractors(logger.LocaleExtractor()))...)
//
// # Levels
//
// LevelTrace sits below debug. The i18n engine reports misses in the External
// tier at this level, so they only show up when LOG_LEVEL=trace.
//
// # Context Extractors
//
// A ContextExtractor turns request-scoped context values into attributes:
//
//	type ContextExtractor func(ctx context.Context) (slog.Attr, bool)
//
// Extractors run on every log call. StringFromContext covers string values such
// as request IDs and LocaleExtractor adds the locale stored by i18n.WithLocaleContext.
// WithExtractors decorates any slog.Handler with them.
package logger

package logger

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// StringFromContext returns an extractor for a string stored under key.
// Empty values are skipped.
func StringFromContext(key any, attr string) ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if v, ok := ctx.Value(key).(string); ok && v != "" {
			return slog.String(attr, v), true
		}
		return slog.Attr{}, false
	}
}

// LocaleExtractor adds the request locale set with i18n.WithLocaleContext.
func LocaleExtractor() ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if l, ok := i18n.LocaleFromContext(ctx); ok {
			return slog.String("locale", l.String()), true
		}
		return slog.Attr{}, false
	}
}

package server

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/logger"
)

// requestIDKey is the context key for storing the request ID.
type requestIDKey struct{}

type engineKey struct{}

// RequestIDHeaders are checked in order for an upstream request ID.
var RequestIDHeaders = []string{"X-Request-ID", "X-Request-Id", "X-Correlation-ID"}

const stackSize = 4096

// RequestID reuses an incoming request ID or generates a UUID, stores it in the
// context and echoes it in the X-Request-ID response header.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqID string
		for _, h := range RequestIDHeaders {
			if v := r.Header.Get(h); v != "" {
				reqID = v
				break
			}
		}
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set("X-Request-ID", reqID)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, reqID)))
	})
}

// RequestIDFromContext returns the ID stored by RequestID.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds request_id to log records written with a request context.
func RequestIDExtractor() logger.ContextExtractor {
	return logger.StringFromContext(requestIDKey{}, "request_id")
}

// Recover turns a handler panic into a logged 500 response.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				stack := make([]byte, stackSize)
				stack = stack[:runtime.Stack(stack, false)]
				log.ErrorContext(r.Context(), "panic recovered",
					slog.Any("panic", rec),
					slog.String("stack", string(stack)),
				)
				writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// RequestLogger logs one record per request after it completes.
func RequestLogger(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			if status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			log.LogAttrs(r.Context(), level, "http request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", status),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// withEngine resolves the request locale from the "locale" query parameter or
// Accept-Language and attaches the matching engine and locale to the context.
// A locale parameter outside the supported set is rejected.
func (s *Server) withEngine(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var locale i18n.Locale
		if q := r.URL.Query().Get("locale"); q != "" {
			locale = i18n.ParseLocale(q)
			if !s.registry.Supports(locale) {
				writeError(w, http.StatusBadRequest, "unsupported locale")
				return
			}
		} else {
			locale = s.registry.Match(r.Header.Get("Accept-Language"))
		}

		engine, err := s.registry.Get(locale)
		if err != nil {
			s.logger.ErrorContext(r.Context(), "engine unavailable",
				slog.String("locale", locale.String()),
				slog.Any("error", err),
			)
			writeError(w, http.StatusInternalServerError, "translations unavailable")
			return
		}

		ctx := i18n.WithLocaleContext(r.Context(), locale)
		ctx = i18n.WithTranslator(ctx, engine)
		ctx = context.WithValue(ctx, engineKey{}, engine)

		w.Header().Set("Content-Language", locale.Tag().String())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func engineFromContext(ctx context.Context) *i18n.Engine {
	e, _ := ctx.Value(engineKey{}).(*i18n.Engine)
	return e
}

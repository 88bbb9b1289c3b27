package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// LevelTrace is below debug; the engine reports External tier misses at this level.
const LevelTrace = i18n.LevelTrace

// Config selects level and output encoding. Tags match the service environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Option configures a logger built by New.
type Option func(*options)

type options struct {
	level      slog.Level
	text       bool
	output     io.Writer
	extractors []ContextExtractor
}

// WithLevel sets the minimum level. Defaults to info.
func WithLevel(level slog.Level) Option {
	return func(o *options) { o.level = level }
}

// WithText switches from JSON to logfmt-style text output.
func WithText() Option {
	return func(o *options) { o.text = true }
}

// WithOutput redirects output. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) {
		if w != nil {
			o.output = w
		}
	}
}

// WithContextExtractors adds extractors applied to every record.
func WithContextExtractors(extractors ...ContextExtractor) Option {
	return func(o *options) { o.extractors = append(o.extractors, extractors...) }
}

// FromConfig translates cfg into options. Unknown levels or formats are an error.
func FromConfig(cfg Config) ([]Option, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := []Option{WithLevel(level)}
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
	case "text":
		opts = append(opts, WithText())
	default:
		return nil, fmt.Errorf("logger: unknown format %q", cfg.Format)
	}
	return opts, nil
}

// New creates a structured logger. JSON to stdout at info level unless configured otherwise.
func New(opts ...Option) *slog.Logger {
	o := newOptions(opts)
	return slog.New(WithExtractors(o.handler(), o.extractors...))
}

func newOptions(opts []Option) *options {
	o := &options{level: slog.LevelInfo, output: os.Stdout}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) handler() slog.Handler {
	ho := &slog.HandlerOptions{Level: o.level, ReplaceAttr: replaceLevel}
	if o.text {
		return slog.NewTextHandler(o.output, ho)
	}
	return slog.NewJSONHandler(o.output, ho)
}

// ParseLevel accepts trace, debug, info, warn and error, case-insensitively.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "", "info":
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("logger: %w", err)
	}
	return level, nil
}

// replaceLevel prints LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(groups []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey || len(groups) > 0 {
		return a
	}
	if level, ok := a.Value.Any().(slog.Level); ok && level == LevelTrace {
		return slog.String(slog.LevelKey, "TRACE")
	}
	return a
}

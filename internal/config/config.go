// Package config loads the lingo service and CLI settings from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/logger"
	"github.com/dmitrymomot/lingo/pkg/storage"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Config is the full application configuration. CLI flags override these values.
type Config struct {
	Namespace    string        `env:"LINGO_NAMESPACE" envDefault:"i18n.messages"`
	Locale       string        `env:"LINGO_LOCALE" envDefault:"en_us"`
	Locales      []string      `env:"LINGO_LOCALES" envSeparator:"," envDefault:"en_us"`
	BaseDir      string        `env:"LINGO_BASE_DIR"`
	Format       string        `env:"LINGO_FORMAT" envDefault:"lang"`
	ResourcesDir string        `env:"LINGO_RESOURCES_DIR" envDefault:"."`
	LoadTimeout  time.Duration `env:"LINGO_LOAD_TIMEOUT" envDefault:"10s"`

	HTTPAddr        string        `env:"LINGO_HTTP_ADDR" envDefault:":8080"`
	ShutdownTimeout time.Duration `env:"LINGO_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReloadSchedule  string        `env:"LINGO_RELOAD_SCHEDULE"`
	Watch           bool          `env:"LINGO_WATCH"`
	CacheTTL        time.Duration `env:"LINGO_CACHE_TTL" envDefault:"5m"`
	RedisURL        string        `env:"REDIS_URL"`

	Log     logger.Config
	Sentry  logger.SentryConfig
	Storage storage.Config
}

// Load reads an optional .env file and then the environment.
// Variables already set in the environment win over the file.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// Validate checks values the engine and service cannot start with.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Namespace) == "" {
		errs = append(errs, errors.New("namespace is empty"))
	}
	if _, err := i18n.ParseKind(c.Format); err != nil {
		errs = append(errs, err)
	}
	if c.ReloadSchedule != "" {
		if _, err := cron.ParseStandard(c.ReloadSchedule); err != nil {
			errs = append(errs, fmt.Errorf("reload schedule %q: %w", c.ReloadSchedule, err))
		}
	}
	if c.Watch && c.BaseDir == "" {
		errs = append(errs, errors.New("watch requires a base directory"))
	}
	if c.UsesStorage() && c.BaseDir == "" {
		errs = append(errs, errors.New("storage overrides require a base directory, used as the key prefix"))
	}
	if c.Watch && c.UsesStorage() {
		errs = append(errs, errors.New("watch is not supported for storage overrides"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Kind returns the resource type. Call Validate first.
func (c Config) Kind() i18n.Kind {
	k, _ := i18n.ParseKind(c.Format)
	return k
}

// SupportedLocales parses Locales, always including Locale first.
func (c Config) SupportedLocales() []i18n.Locale {
	primary := i18n.ParseLocale(c.Locale)
	out := []i18n.Locale{primary}
	seen := map[string]bool{primary.String(): true}
	for _, s := range c.Locales {
		if strings.TrimSpace(s) == "" {
			continue
		}
		l := i18n.ParseLocale(s)
		if !seen[l.String()] {
			seen[l.String()] = true
			out = append(out, l)
		}
	}
	return out
}

// UsesStorage reports whether overrides come from a bucket instead of a directory.
func (c Config) UsesStorage() bool {
	return c.Storage.Bucket != ""
}

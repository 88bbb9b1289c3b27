package cmd

import (
	"fmt"
	"log/slog"
	"os"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/lingo/internal/config"
	"github.com/dmitrymomot/lingo/internal/server"
	"github.com/dmitrymomot/lingo/pkg/cache"
	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/logger"
	"github.com/dmitrymomot/lingo/pkg/storage"
)

// loadConfig reads the environment (and the --env-file) and applies flags the
// user set explicitly on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	envFile, _ := flags.GetString("env-file")
	cfg, err := config.Load(envFile)
	if err != nil {
		return cfg, err
	}

	overrides := map[string]*string{
		"namespace":       &cfg.Namespace,
		"locale":          &cfg.Locale,
		"base-dir":        &cfg.BaseDir,
		"format":          &cfg.Format,
		"resources":       &cfg.ResourcesDir,
		"log-level":       &cfg.Log.Level,
		"log-format":      &cfg.Log.Format,
		"addr":            &cfg.HTTPAddr,
		"reload-schedule": &cfg.ReloadSchedule,
	}
	for name, dst := range overrides {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	if flags.Changed("locales") {
		cfg.Locales, _ = flags.GetStringSlice("locales")
	}
	if flags.Changed("watch") {
		cfg.Watch, _ = flags.GetBool("watch")
	}

	return cfg, cfg.Validate()
}

// newLogger writes to the command's stderr, and to Sentry when a DSN is configured.
func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, func(), error) {
	opts, err := logger.FromConfig(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	opts = append(opts,
		logger.WithOutput(cmd.ErrOrStderr()),
		logger.WithContextExtractors(server.RequestIDExtractor(), logger.LocaleExtractor()),
	)

	l, flush := logger.NewWithSentry(cfg.Sentry, opts...)
	return l, flush, nil
}

// newRegistry wires the Internal tier to the resources directory and the External
// tier to the base directory or, when a bucket is configured, to object storage.
// client may be nil.
func newRegistry(cfg config.Config, log *slog.Logger, client goredis.UniversalClient) (*i18n.Registry, error) {
	info, err := os.Stat(cfg.ResourcesDir)
	if err != nil {
		return nil, fmt.Errorf("resources directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("resources directory: %s is not a directory", cfg.ResourcesDir)
	}

	return i18n.NewRegistry(cfg.Namespace, cfg.SupportedLocales(),
		i18n.WithResources(os.DirFS(cfg.ResourcesDir)),
		i18n.WithResourceType(cfg.Kind()),
		i18n.WithBaseDirectory(cfg.BaseDir),
		i18n.WithExternalLoaderFactory(externalFactory(cfg, client)),
		i18n.WithLoadTimeout(cfg.LoadTimeout),
		i18n.WithLogger(log),
	)
}

func externalFactory(cfg config.Config, client goredis.UniversalClient) i18n.LoaderFactory {
	if !cfg.UsesStorage() {
		return i18n.DefaultExternalLoader
	}

	s3 := storage.Factory(cfg.Storage)
	return func(baseDir string) (i18n.Loader, error) {
		loader, err := s3(baseDir)
		if err != nil {
			return nil, err
		}

		var c cache.Cache[[]byte]
		if client != nil {
			c = cache.NewRedis(client, cache.Raw(),
				cache.WithPrefix(fmt.Sprintf("lingo:%s:%s", cfg.Storage.Bucket, baseDir)))
		} else {
			c = cache.NewMemory[[]byte](cache.WithMaxEntries(256))
		}
		return i18n.NewCachedLoader(loader, c, i18n.WithCacheTTL(cfg.CacheTTL))
	}
}

// engineFor returns the engine of the primary locale.
func engineFor(cmd *cobra.Command) (*i18n.Engine, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, flush, err := newLogger(cmd, cfg)
	if err != nil {
		return nil, nil, err
	}

	reg, err := newRegistry(cfg, log, nil)
	if err != nil {
		flush()
		return nil, nil, err
	}
	e, err := reg.Get(i18n.ParseLocale(cfg.Locale))
	if err != nil {
		_ = reg.Close()
		flush()
		return nil, nil, err
	}
	return e, func() {
		_ = reg.Close()
		flush()
	}, nil
}

package cmd

import (
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/lingo/internal/config"
	"github.com/dmitrymomot/lingo/internal/server"
	"github.com/dmitrymomot/lingo/pkg/i18n"
	"github.com/dmitrymomot/lingo/pkg/job"
	"github.com/dmitrymomot/lingo/pkg/redis"
	"github.com/dmitrymomot/lingo/pkg/storage"
	"github.com/dmitrymomot/lingo/pkg/watcher"
)

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve translations over HTTP",
		Long: `Start the HTTP API for every supported locale.

Endpoints:
  GET  /v1/translate?key=&arg=&fallback=&locale=
  GET  /v1/keys?tier=&locale=
  GET  /v1/status?locale=
  POST /v1/reload
  GET  /healthz/live, /healthz/ready

Without a locale parameter the Accept-Language header picks the locale.
Bundles reload on POST /v1/reload, on --reload-schedule, and with --watch
whenever a file under the base directory changes.`,
		Example: `  # Serve English and Italian with local overrides, reloading on change
  lingo serve -r ./resources -d ./overrides --locales en_us,it_it --watch

  # Overrides from S3 cached in Redis, reloaded every five minutes
  STORAGE_BUCKET=translations REDIS_URL=redis://localhost:6379/0 \
    lingo serve -d prod --reload-schedule "*/5 * * * *"`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	f := cmd.Flags()
	f.String("addr", "", "Listen address (default :8080)")
	f.StringSlice("locales", nil, "Supported locales; the primary --locale is always included")
	f.String("reload-schedule", "", "Cron expression for periodic reloads")
	f.Bool("watch", false, "Reload when files under the base directory change")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, flush, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer flush()

	ctx := cmd.Context()

	var client goredis.UniversalClient
	if cfg.RedisURL != "" {
		if client, err = redis.Open(ctx, cfg.RedisURL); err != nil {
			return err
		}
		defer func() { _ = client.Close() }()
	}

	reg, err := newRegistry(cfg, log, client)
	if err != nil {
		return err
	}
	defer func() { _ = reg.Close() }()

	for _, l := range cfg.SupportedLocales() {
		if _, err := reg.Get(l); err != nil {
			return err
		}
	}

	opts, err := serverOptions(cfg, log, client)
	if err != nil {
		return err
	}
	srv := server.New(reg, opts...)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return srv.Run(ctx) })

	if cfg.ReloadSchedule != "" {
		sched := job.New(job.WithLogger(log), job.WithTimeout(cfg.LoadTimeout*3))
		err := sched.Schedule(job.TaskFunc{TaskName: "reload_bundles", Fn: reg.ReloadAll}, cfg.ReloadSchedule)
		if err != nil {
			return err
		}
		eg.Go(func() error { return sched.Run(ctx) })
	}

	if cfg.Watch {
		format, err := i18n.FormatFor(cfg.Kind())
		if err != nil {
			return err
		}
		w, err := watcher.New(cfg.BaseDir, reg.ReloadAll,
			watcher.WithLogger(log),
			watcher.WithExtensions(format.Extension()),
		)
		if err != nil {
			return err
		}
		eg.Go(func() error { return w.Run(ctx) })
	}

	log.Info("lingo serving",
		slog.String("namespace", cfg.Namespace),
		slog.Any("locales", cfg.SupportedLocales()),
		slog.String("base_dir", cfg.BaseDir),
		slog.Bool("watch", cfg.Watch),
		slog.String("reload_schedule", cfg.ReloadSchedule),
	)
	return eg.Wait()
}

func serverOptions(cfg config.Config, log *slog.Logger, client goredis.UniversalClient) ([]server.Option, error) {
	opts := []server.Option{
		server.WithLogger(log),
		server.WithAddress(cfg.HTTPAddr),
		server.WithShutdownTimeout(cfg.ShutdownTimeout),
	}
	if client != nil {
		opts = append(opts, server.WithCheck("redis", redis.Healthcheck(client)))
	}
	if cfg.UsesStorage() {
		s3, err := storage.New(cfg.Storage.WithPrefix(cfg.BaseDir))
		if err != nil {
			return nil, err
		}
		opts = append(opts, server.WithCheck("storage", s3.Healthcheck()))
	}
	return opts, nil
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/lingo/pkg/cache"
)

// LoaderFactory builds the External tier loader for a base directory.
type LoaderFactory func(baseDir string) (Loader, error)

// DefaultExternalLoader reads overrides from baseDir through a small in-memory cache.
func DefaultExternalLoader(baseDir string) (Loader, error) {
	dir, err := NewDirLoader(baseDir)
	if err != nil {
		return nil, err
	}
	return NewCachedLoader(dir, cache.NewMemory[[]byte](cache.WithMaxEntries(256)))
}

type config struct {
	locale  Locale
	baseDir string
	kind    Kind
	custom  Format
	format  Format
}

// state is what readers see: a configuration and the chain built from it.
type state struct {
	cfg   config
	chain *chain
}

// Engine resolves message templates of one namespace through the External, Internal
// and Default tiers and formats them for the current locale.
//
// Translation methods never fail: a missing key yields the fallback and a broken
// template degrades to a readable string. Setters reload synchronously and are
// serialized; readers are lock-free and always see a fully built chain.
type Engine struct {
	namespace string
	internal  Loader
	factory   LoaderFactory
	logger    *slog.Logger
	timeout   time.Duration

	mu       sync.Mutex
	external Loader
	state    atomic.Pointer[state]

	formatters *formatterCache
}

// Option configures an Engine during construction.
type Option func(*Engine, *config) error

// New creates an engine for namespace, a dotted name such as "i18n.messages".
// The chain is loaded before New returns; missing resources are logged, not returned.
func New(namespace string, opts ...Option) (*Engine, error) {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		return nil, ErrEmptyNamespace
	}

	e := &Engine{
		namespace: namespace,
		factory:   DefaultExternalLoader,
		logger:    slog.New(slog.DiscardHandler),
	}
	cfg := config{locale: DefaultLocale, kind: KindProperties}

	for _, opt := range opts {
		if err := opt(e, &cfg); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if e.internal == nil {
		e.internal = NewFSLoader(os.DirFS("."))
	}
	e.formatters = newFormatterCache(e.logger)
	e.formatters.retain = func(l Locale) bool {
		s := e.state.Load()
		return s == nil || s.cfg.locale.Equal(l)
	}

	format, err := resolveFormat(cfg.kind, cfg.custom)
	if err != nil {
		return nil, err
	}
	cfg.format = format

	if cfg.baseDir != "" {
		if e.external, err = e.factory(cfg.baseDir); err != nil {
			return nil, fmt.Errorf("%w: external loader: %w", ErrInvalidConfiguration, err)
		}
	}

	if err := e.rebuild(context.Background(), cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// WithLocale sets the initial locale. Defaults to DefaultLocale.
func WithLocale(l Locale) Option {
	return func(_ *Engine, cfg *config) error {
		cfg.locale = l.normalized()
		return nil
	}
}

// WithLocaleString sets the initial locale from a canonical string such as "it_it".
func WithLocaleString(s string) Option {
	return WithLocale(ParseLocale(s))
}

// WithBaseDirectory enables the External tier, reading overrides from dir.
func WithBaseDirectory(dir string) Option {
	return func(_ *Engine, cfg *config) error {
		cfg.baseDir = strings.TrimSpace(dir)
		return nil
	}
}

// WithResourceType selects the bundle format. Defaults to KindProperties.
func WithResourceType(kind Kind) Option {
	return func(_ *Engine, cfg *config) error {
		cfg.kind = kind
		return nil
	}
}

// WithCustomFormat registers the format used for KindCustom and selects it.
func WithCustomFormat(f Format) Option {
	return func(_ *Engine, cfg *config) error {
		if f == nil {
			return ErrNilFormat
		}
		cfg.custom = f
		cfg.kind = KindCustom
		return nil
	}
}

// WithResources serves the Internal and Default tiers from fsys, typically an embed.FS.
func WithResources(fsys fs.FS) Option {
	return func(e *Engine, _ *config) error {
		if fsys == nil {
			return ErrNilLoader
		}
		e.internal = NewFSLoader(fsys)
		return nil
	}
}

// WithInternalLoader serves the Internal and Default tiers from l.
func WithInternalLoader(l Loader) Option {
	return func(e *Engine, _ *config) error {
		if l == nil {
			return ErrNilLoader
		}
		e.internal = l
		return nil
	}
}

// WithExternalLoaderFactory replaces DefaultExternalLoader, e.g. to read overrides from S3
// or to share a Redis cache between processes.
func WithExternalLoaderFactory(f LoaderFactory) Option {
	return func(e *Engine, _ *config) error {
		if f == nil {
			return ErrNilLoader
		}
		e.factory = f
		return nil
	}
}

// WithLogger sets the logger for load failures and degraded translations.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine, _ *config) error {
		if l != nil {
			e.logger = l
		}
		return nil
	}
}

// WithLoadTimeout bounds the loading of each tier. Zero means no timeout.
func WithLoadTimeout(d time.Duration) Option {
	return func(e *Engine, _ *config) error {
		e.timeout = max(d, 0)
		return nil
	}
}

func resolveFormat(kind Kind, custom Format) (Format, error) {
	if kind == KindCustom {
		if custom == nil {
			return nil, fmt.Errorf("%w: custom resource type requires a custom format", ErrInvalidConfiguration)
		}
		return custom, nil
	}
	return FormatFor(kind)
}

// rebuild loads a new chain for cfg and publishes it. Callers hold e.mu, except New.
// Nothing is published when ctx ends during loading: the tiers it cut short would
// look unavailable.
func (e *Engine) rebuild(ctx context.Context, cfg config) error {
	c := buildChain(ctx, chainSource{
		namespace: e.namespace,
		locale:    cfg.locale,
		format:    cfg.format,
		internal:  e.internal,
		external:  e.external,
		timeout:   e.timeout,
	}, e.logger)
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("i18n: reload interrupted: %w", err)
	}
	e.state.Store(&state{cfg: cfg, chain: c})
	return nil
}

// T translates key, using the key itself as the fallback.
func (e *Engine) T(key string, args ...any) string {
	return e.Translate(key, key, args...)
}

// TWithFallback translates key without arguments, returning fallback when it is missing.
func (e *Engine) TWithFallback(key, fallback string) string {
	return e.Translate(key, fallback)
}

// Translate resolves key and formats it with args. When the key is missing everywhere,
// fallback is used as the template, so "fallback should be {0}" still gets formatted.
func (e *Engine) Translate(key, fallback string, args ...any) string {
	s := e.state.Load()

	if key == "" {
		e.logger.Warn("i18n: empty translation key", slog.String("fallback", fallback))
		return e.formatters.format(s.cfg.locale, fallback, args, fallback)
	}

	template, _, ok := s.chain.lookup(key, e.logger)
	if !ok {
		e.logger.Info("i18n: translation missing, using fallback",
			slog.String("key", key),
			slog.String("locale", s.cfg.locale.String()),
			slog.String("namespace", e.namespace),
		)
		template = fallback
	}
	return e.formatters.format(s.cfg.locale, template, args, fallback)
}

// Format is Translate.
func (e *Engine) Format(key, fallback string, args ...any) string {
	return e.Translate(key, fallback, args...)
}

// Lookup returns the raw template for key and the tier that provided it.
func (e *Engine) Lookup(key string) (string, Tier, bool) {
	return e.state.Load().chain.lookup(key, e.logger)
}

// Keys returns every key available in any tier, sorted.
func (e *Engine) Keys() []string {
	return e.state.Load().chain.keys()
}

// TierKeys returns the keys of one tier, or nil when the tier is not loaded.
func (e *Engine) TierKeys(tier Tier) []string {
	if b := e.state.Load().chain.bundle(tier); b != nil {
		return b.Keys()
	}
	return nil
}

// TierTemplate returns the raw template for key from one tier only.
func (e *Engine) TierTemplate(tier Tier, key string) (string, bool) {
	if b := e.state.Load().chain.bundle(tier); b != nil {
		return b.Get(key)
	}
	return "", false
}

// Status reports load bookkeeping for External, Internal and Default, in that order.
func (e *Engine) Status() []TierStatus {
	return e.state.Load().chain.status()
}

// CurrentLocale returns the locale templates are resolved and formatted for.
func (e *Engine) CurrentLocale() Locale {
	return e.state.Load().cfg.locale
}

// BaseName returns the namespace.
func (e *Engine) BaseName() string {
	return e.namespace
}

// BaseDirectory returns the External tier directory, or "" when none is set.
func (e *Engine) BaseDirectory() string {
	return e.state.Load().cfg.baseDir
}

// ResourceType returns the selected bundle format kind.
func (e *Engine) ResourceType() Kind {
	return e.state.Load().cfg.kind
}

// LocaleFormat returns number and date conventions for the current locale.
func (e *Engine) LocaleFormat() *LocaleFormat {
	return FormatForLocale(e.CurrentLocale())
}

// SetCurrentLocale switches the locale and reloads. Compiled templates of the
// previous locale are dropped.
func (e *Engine) SetCurrentLocale(l Locale) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.state.Load().cfg
	previous := cfg.locale
	cfg.locale = l.normalized()
	e.reload(context.Background(), cfg)

	if !previous.Equal(cfg.locale) {
		e.formatters.clear(previous)
	}
	return nil
}

// SetLocaleString parses s with ParseLocale and calls SetCurrentLocale.
func (e *Engine) SetLocaleString(s string) error {
	return e.SetCurrentLocale(ParseLocale(s))
}

// SetBaseDirectory replaces the External tier directory and reloads.
// An empty dir disables the External tier.
func (e *Engine) SetBaseDirectory(dir string) error {
	dir = strings.TrimSpace(dir)

	e.mu.Lock()
	defer e.mu.Unlock()

	var next Loader
	if dir != "" {
		l, err := e.factory(dir)
		if err != nil {
			return fmt.Errorf("%w: external loader: %w", ErrInvalidConfiguration, err)
		}
		next = l
	}

	previous := e.external
	e.external = next
	if err := closeLoader(previous); err != nil {
		e.logger.Warn("i18n: failed to close external loader", slog.Any("error", err))
	}

	cfg := e.state.Load().cfg
	cfg.baseDir = dir
	e.reload(context.Background(), cfg)
	return nil
}

// SetResourceType selects another bundle format and reloads.
// KindCustom requires a format registered with SetCustomFormat or WithCustomFormat.
func (e *Engine) SetResourceType(kind Kind) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.state.Load().cfg
	format, err := resolveFormat(kind, cfg.custom)
	if err != nil {
		return err
	}
	cfg.kind = kind
	cfg.format = format
	e.reload(context.Background(), cfg)
	return nil
}

// SetCustomFormat registers f for KindCustom. The chain is reloaded only when
// KindCustom is the selected type.
func (e *Engine) SetCustomFormat(f Format) error {
	if f == nil {
		return ErrNilFormat
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.state.Load().cfg
	cfg.custom = f
	if cfg.kind != KindCustom {
		e.state.Store(&state{cfg: cfg, chain: e.state.Load().chain})
		return nil
	}
	cfg.format = f
	e.reload(context.Background(), cfg)
	return nil
}

// Reload drops loader caches and rebuilds every tier with the current configuration.
// The chain is rebuilt even when invalidation fails; the invalidation error is returned.
// When ctx ends before loading completes, the previous chain stays in place and the
// context error is returned.
func (e *Engine) Reload(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.reload(ctx, e.state.Load().cfg)
}

func (e *Engine) reload(ctx context.Context, cfg config) error {
	var errs []error
	for _, l := range []Loader{e.external, e.internal} {
		if inv, ok := l.(Invalidator); ok {
			if err := inv.Invalidate(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	err := errors.Join(errs...)
	if err != nil {
		e.logger.Warn("i18n: loader cache invalidation failed", slog.Any("error", err))
	}

	if rerr := e.rebuild(ctx, cfg); rerr != nil {
		e.logger.Warn("i18n: reload aborted, keeping previous bundles",
			slog.String("namespace", e.namespace),
			slog.Any("error", rerr),
		)
		return errors.Join(err, rerr)
	}
	e.logger.Debug("i18n: bundles reloaded",
		slog.String("namespace", e.namespace),
		slog.String("locale", cfg.locale.String()),
		slog.String("format", cfg.kind.String()),
		slog.String("base_dir", cfg.baseDir),
	)
	return err
}

// Close releases the External loader and drops compiled templates.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := closeLoader(e.external)
	e.external = nil
	e.formatters.clearAll()
	return err
}

func closeLoader(l Loader) error {
	if c, ok := l.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

package lingo

import (
	"io/fs"
	"log/slog"
	"time"

	"github.com/dmitrymomot/lingo/pkg/i18n"
)

// Type aliases - public API
type (
	// Engine resolves and formats the templates of one namespace for one locale.
	Engine = i18n.Engine

	// Registry holds one Engine per supported locale.
	Registry = i18n.Registry

	// Option configures an Engine or every engine of a Registry.
	Option = i18n.Option

	// Locale is a language plus an optional region, e.g. it_it.
	Locale = i18n.Locale

	// Translator is what consumers of translated text depend on.
	Translator = i18n.Translator

	// TranslatorFunc adapts a function to Translator.
	TranslatorFunc = i18n.TranslatorFunc

	// Tier identifies which bundle answered a lookup.
	Tier = i18n.Tier

	// TierStatus is the load bookkeeping of one tier.
	TierStatus = i18n.TierStatus

	// Loader opens raw resources by slash-separated name.
	Loader = i18n.Loader

	// LoaderFactory builds the External tier loader for a base directory.
	LoaderFactory = i18n.LoaderFactory

	// Kind selects a resource format.
	Kind = i18n.Kind

	// Format parses resources of one kind into bundles.
	Format = i18n.Format

	// Message is a compiled template.
	Message = i18n.Message
)

// Tiers in lookup order.
const (
	TierExternal = i18n.TierExternal
	TierInternal = i18n.TierInternal
	TierDefault  = i18n.TierDefault
)

// Resource kinds.
const (
	KindProperties = i18n.KindProperties
	KindJSON       = i18n.KindJSON
	KindYAML       = i18n.KindYAML
	KindTOML       = i18n.KindTOML
	KindCustom     = i18n.KindCustom
)

// DefaultLocale backs the Default tier.
var DefaultLocale = i18n.DefaultLocale

// Nop returns keys untranslated.
var Nop = i18n.Nop

// Constructors

// New creates an engine for namespace and loads its bundle chain.
//
// Example:
//
//	//go:embed i18n
//	var resources embed.FS
//
//	tr, err := lingo.New("i18n.messages",
//	    lingo.WithResources(resources),
//	    lingo.WithBaseDirectory("/etc/myapp/overrides"),
//	    lingo.WithLocale(lingo.ParseLocale("it_it")),
//	)
//	fmt.Println(tr.T("files.count", 3))
func New(namespace string, opts ...Option) (*Engine, error) {
	return i18n.New(namespace, opts...)
}

// NewRegistry creates a registry serving supported locales. The first is the
// fallback for requests that match nothing.
func NewRegistry(namespace string, supported []Locale, opts ...Option) (*Registry, error) {
	return i18n.NewRegistry(namespace, supported, opts...)
}

// ParseLocale parses "it_it", "it-IT" or "it".
func ParseLocale(s string) Locale {
	return i18n.ParseLocale(s)
}

// CompileMessage compiles a template for locale.
func CompileMessage(pattern string, locale Locale) (*Message, error) {
	return i18n.CompileMessage(pattern, locale)
}

// Options

// WithLocale sets the initial locale.
func WithLocale(l Locale) Option {
	return i18n.WithLocale(l)
}

// WithBaseDirectory enables the External tier.
func WithBaseDirectory(dir string) Option {
	return i18n.WithBaseDirectory(dir)
}

// WithResources serves the Internal and Default tiers from fsys.
func WithResources(fsys fs.FS) Option {
	return i18n.WithResources(fsys)
}

// WithResourceType selects the bundle format.
func WithResourceType(kind Kind) Option {
	return i18n.WithResourceType(kind)
}

// WithCustomFormat registers and selects a custom bundle format.
func WithCustomFormat(f Format) Option {
	return i18n.WithCustomFormat(f)
}

// WithExternalLoaderFactory replaces the directory-backed External tier loader.
func WithExternalLoaderFactory(f LoaderFactory) Option {
	return i18n.WithExternalLoaderFactory(f)
}

// WithLogger sets the logger for load failures and degraded translations.
func WithLogger(l *slog.Logger) Option {
	return i18n.WithLogger(l)
}

// WithLoadTimeout bounds the loading of each tier.
func WithLoadTimeout(d time.Duration) Option {
	return i18n.WithLoadTimeout(d)
}

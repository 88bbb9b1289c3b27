package i18n

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
)

// Registry holds one Engine per locale for hosts that serve several locales at once.
// Engines are created on first use and share the namespace and options.
type Registry struct {
	namespace string
	opts      []Option
	supported []Locale

	mu      sync.RWMutex
	engines map[string]*Engine
}

// NewRegistry creates a registry. supported drives Match; the first entry is the
// default for requests that match nothing. Options must not include WithLocale,
// which the registry sets per engine.
func NewRegistry(namespace string, supported []Locale, opts ...Option) (*Registry, error) {
	if strings.TrimSpace(namespace) == "" {
		return nil, ErrEmptyNamespace
	}
	if len(supported) == 0 {
		supported = []Locale{DefaultLocale}
	}
	return &Registry{
		namespace: namespace,
		opts:      slices.Clone(opts),
		supported: slices.Clone(supported),
		engines:   make(map[string]*Engine),
	}, nil
}

// Supported returns the locales passed to NewRegistry.
func (r *Registry) Supported() []Locale {
	return slices.Clone(r.supported)
}

// Supports reports whether l is one of the supported locales.
func (r *Registry) Supports(l Locale) bool {
	return slices.ContainsFunc(r.supported, l.Equal)
}

// Match returns the supported locale for an Accept-Language header.
func (r *Registry) Match(acceptLanguage string) Locale {
	return MatchLocale(acceptLanguage, r.supported)
}

// Get returns the engine for l, creating it on first use. Every distinct locale
// keeps an engine until Close, so callers serving untrusted input should check
// Supports or Match first.
func (r *Registry) Get(l Locale) (*Engine, error) {
	l = l.normalized()
	key := l.String()

	r.mu.RLock()
	e, ok := r.engines[key]
	r.mu.RUnlock()
	if ok {
		return e, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[key]; ok {
		return e, nil
	}
	e, err := New(r.namespace, append(slices.Clone(r.opts), WithLocale(l))...)
	if err != nil {
		return nil, err
	}
	r.engines[key] = e
	return e, nil
}

// Engines returns the engines created so far, ordered by locale.
func (r *Registry) Engines() []*Engine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Engine, 0, len(r.engines))
	for _, key := range slices.Sorted(maps.Keys(r.engines)) {
		out = append(out, r.engines[key])
	}
	return out
}

// ReloadAll reloads every engine created so far.
func (r *Registry) ReloadAll(ctx context.Context) error {
	var errs []error
	for _, e := range r.Engines() {
		if err := e.Reload(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every engine.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var errs []error
	for key, e := range r.engines {
		if err := e.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(r.engines, key)
	}
	return errors.Join(errs...)
}

package i18n

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dmitrymomot/lingo/pkg/cache"
)

// CachedLoader keeps resource bytes in a cache in front of another Loader.
// Concurrent opens of the same resource share one read. Missing resources are not cached,
// so a file created later is picked up without invalidation.
type CachedLoader struct {
	next  Loader
	cache cache.Cache[[]byte]
	ttl   time.Duration
	group singleflight.Group
}

// CachedLoaderOption configures a CachedLoader.
type CachedLoaderOption func(*CachedLoader)

// WithCacheTTL sets how long resource bytes stay cached. Zero uses the cache default.
func WithCacheTTL(ttl time.Duration) CachedLoaderOption {
	return func(l *CachedLoader) {
		l.ttl = ttl
	}
}

// NewCachedLoader wraps next with c.
func NewCachedLoader(next Loader, c cache.Cache[[]byte], opts ...CachedLoaderOption) (*CachedLoader, error) {
	if next == nil {
		return nil, ErrNilLoader
	}
	if c == nil {
		return nil, errors.Join(ErrInvalidConfiguration, errors.New("cache is nil"))
	}

	l := &CachedLoader{next: next, cache: c}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

func (l *CachedLoader) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := CheckResourceName(name); err != nil {
		return nil, err
	}

	if data, err := l.cache.Get(ctx, name); err == nil {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	v, err, _ := l.group.Do(name, func() (any, error) {
		rc, err := l.next.Open(ctx, name)
		if err != nil {
			return nil, err
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, err
		}
		// A cache write failure only costs a re-read.
		_ = l.cache.Set(ctx, name, data, l.ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(v.([]byte))), nil
}

func (l *CachedLoader) Locate(ctx context.Context, name string) (string, error) {
	return l.next.Locate(ctx, name)
}

// Invalidate drops every cached resource and forwards to the wrapped loader when it caches too.
func (l *CachedLoader) Invalidate(ctx context.Context) error {
	err := l.cache.Clear(ctx)
	if inv, ok := l.next.(Invalidator); ok {
		err = errors.Join(err, inv.Invalidate(ctx))
	}
	return err
}

// Close closes the cache and the wrapped loader if it is an io.Closer.
func (l *CachedLoader) Close() error {
	err := l.cache.Close()
	if c, ok := l.next.(io.Closer); ok {
		err = errors.Join(err, c.Close())
	}
	return err
}

package i18n

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"
)

// LevelTrace sits below slog.LevelDebug. Misses in the External tier are logged at it
// since most keys are not overridden.
const LevelTrace = slog.LevelDebug - 4

// Tier is a priority level of the bundle chain.
type Tier int

// Tiers in lookup order. TierNone marks a key no tier provides.
const (
	TierNone Tier = iota
	// TierExternal holds overrides under the base directory.
	TierExternal
	// TierInternal holds packaged resources for the current locale.
	TierInternal
	// TierDefault holds packaged resources for DefaultLocale.
	TierDefault
)

// String returns the lowercase tier name, "none" for TierNone.
func (t Tier) String() string {
	switch t {
	case TierExternal:
		return "external"
	case TierInternal:
		return "internal"
	case TierDefault:
		return "default"
	default:
		return "none"
	}
}

func (t Tier) loadFailureLevel() slog.Level {
	switch t {
	case TierDefault:
		return slog.LevelError
	case TierInternal:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

func (t Tier) missLevel() slog.Level {
	switch t {
	case TierDefault:
		return slog.LevelWarn
	case TierInternal:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// TierStatus is the load bookkeeping of one tier.
type TierStatus struct {
	Tier   Tier
	Locale Locale

	// Attempted is false for the External tier when no base directory is configured.
	Attempted bool
	Loaded    bool

	// Resources lists the resource names that loaded, most specific first.
	Resources []string
	Keys      int

	// Err holds the load failure, or problems with some candidates of a loaded tier.
	Err error
}

type tierSlot struct {
	status TierStatus
	bundle Bundle
}

// chain is an immutable set of the three tiers. It is rebuilt, never patched.
type chain struct {
	tiers [3]tierSlot
}

type chainSource struct {
	namespace string
	locale    Locale
	format    Format
	internal  Loader
	external  Loader
	timeout   time.Duration
}

func buildChain(ctx context.Context, src chainSource, logger *slog.Logger) *chain {
	c := &chain{}
	c.tiers[2] = loadSlot(ctx, src, TierDefault, src.internal, DefaultLocale, logger)
	c.tiers[1] = loadSlot(ctx, src, TierInternal, src.internal, src.locale, logger)
	if src.external != nil {
		c.tiers[0] = loadSlot(ctx, src, TierExternal, src.external, src.locale, logger)
	} else {
		c.tiers[0] = tierSlot{status: TierStatus{
			Tier:   TierExternal,
			Locale: src.locale,
			Err:    fmt.Errorf("%w: no base directory", ErrTierUnavailable),
		}}
	}
	return c
}

func loadSlot(ctx context.Context, src chainSource, tier Tier, loader Loader, locale Locale, logger *slog.Logger) tierSlot {
	if src.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, src.timeout)
		defer cancel()
	}

	bundle, names, err := loadTier(ctx, loader, src.namespace, locale, src.format)
	slot := tierSlot{
		bundle: bundle,
		status: TierStatus{
			Tier:      tier,
			Locale:    locale,
			Attempted: true,
			Loaded:    bundle != nil,
			Resources: names,
			Err:       err,
		},
	}
	if bundle != nil {
		slot.status.Keys = bundle.Len()
	}

	if err != nil {
		level := tier.loadFailureLevel()
		if bundle != nil {
			level = min(level, slog.LevelWarn)
		}
		logger.LogAttrs(ctx, level, "i18n: bundle tier load failed",
			slog.String("tier", tier.String()),
			slog.String("namespace", src.namespace),
			slog.String("locale", locale.String()),
			slog.String("language", locale.DisplayName()),
			slog.Bool("loaded", bundle != nil),
			slog.Any("error", err),
		)
	}
	return slot
}

// loadTier loads every candidate of locale and layers them most specific first.
// The tier is unavailable only when no candidate loads.
func loadTier(ctx context.Context, loader Loader, namespace string, locale Locale, format Format) (Bundle, []string, error) {
	var (
		bundles parentChain
		names   []string
		errs    []error
	)
	for _, candidate := range locale.Candidates() {
		name := ResourceName(namespace, candidate, format.Extension())
		b, err := loadBundle(ctx, loader, name, format)
		if err != nil {
			if !errors.Is(err, ErrResourceNotFound) {
				errs = append(errs, fmt.Errorf("%s: %w", name, err))
			}
			continue
		}
		bundles = append(bundles, b)
		names = append(names, name)
	}

	switch len(bundles) {
	case 0:
		if len(errs) == 0 {
			errs = append(errs, fmt.Errorf("%w: %s", ErrResourceNotFound, ResourceName(namespace, locale, format.Extension())))
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrTierUnavailable, errors.Join(errs...))
	case 1:
		return bundles[0], names, errors.Join(errs...)
	default:
		return bundles, names, errors.Join(errs...)
	}
}

func loadBundle(ctx context.Context, loader Loader, name string, format Format) (Bundle, error) {
	rc, err := loader.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return format.Load(rc)
}

// lookup probes External, Internal and Default in that order.
func (c *chain) lookup(key string, logger *slog.Logger) (string, Tier, bool) {
	ctx := context.Background()
	for i := range c.tiers {
		slot := &c.tiers[i]
		if slot.bundle == nil {
			continue
		}
		if v, ok := slot.bundle.Get(key); ok {
			return v, slot.status.Tier, true
		}

		level := slot.status.Tier.missLevel()
		if logger.Enabled(ctx, level) {
			logger.LogAttrs(ctx, level, "i18n: key missing in tier",
				slog.String("key", key),
				slog.String("tier", slot.status.Tier.String()),
				slog.String("locale", slot.status.Locale.String()),
			)
		}
	}
	return "", TierNone, false
}

// keys returns the sorted union of keys across loaded tiers.
func (c *chain) keys() []string {
	seen := make(map[string]struct{})
	for i := range c.tiers {
		if c.tiers[i].bundle == nil {
			continue
		}
		for _, k := range c.tiers[i].bundle.Keys() {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// bundle returns the loaded bundle of tier, or nil.
func (c *chain) bundle(tier Tier) Bundle {
	for i := range c.tiers {
		if c.tiers[i].status.Tier == tier {
			return c.tiers[i].bundle
		}
	}
	return nil
}

// status reports the tiers in priority order.
func (c *chain) status() []TierStatus {
	out := make([]TierStatus, len(c.tiers))
	for i := range c.tiers {
		out[i] = c.tiers[i].status
		out[i].Resources = slices.Clone(out[i].Resources)
	}
	return out
}

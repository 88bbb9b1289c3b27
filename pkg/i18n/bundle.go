package i18n

import (
	"maps"
	"slices"
)

// Bundle is a flat, read-only key to template mapping loaded from one resource.
type Bundle interface {
	// Get returns the raw template for key.
	Get(key string) (string, bool)

	// Keys returns every key that maps to a template, sorted.
	Keys() []string

	// Len returns the number of keys.
	Len() int
}

// MapBundle is the Bundle produced by the built-in formats.
type MapBundle map[string]string

// Get returns the template stored under key.
func (b MapBundle) Get(key string) (string, bool) {
	v, ok := b[key]
	return v, ok
}

// Keys returns every key, sorted.
func (b MapBundle) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}

// Len returns the number of keys.
func (b MapBundle) Len() int {
	return len(b)
}

// parentChain layers the bundles of one tier: language_region, then language, then root.
// The first bundle holding a key wins.
type parentChain []Bundle

func (c parentChain) Get(key string) (string, bool) {
	for _, b := range c {
		if v, ok := b.Get(key); ok {
			return v, true
		}
	}
	return "", false
}

func (c parentChain) Keys() []string {
	seen := make(map[string]struct{})
	for _, b := range c {
		for _, k := range b.Keys() {
			seen[k] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

func (c parentChain) Len() int {
	return len(c.Keys())
}

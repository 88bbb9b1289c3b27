package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Cache is a key-value cache with TTL support.
type Cache[V any] interface {
	// Get returns ErrNotFound when key is absent or expired.
	Get(ctx context.Context, key string) (V, error)

	// Set stores value under key for ttl.
	Set(ctx context.Context, key string, value V, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear drops every entry owned by this cache.
	Clear(ctx context.Context) error

	// Close releases background resources.
	Close() error
}

// Marshaler converts values for backends that store bytes.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

// JSON returns a Marshaler that encodes values as JSON.
func JSON[V any]() Marshaler[V] {
	return jsonMarshaler[V]{}
}

// Raw returns a Marshaler that stores byte slices unchanged.
func Raw() Marshaler[[]byte] {
	return rawMarshaler{}
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

type rawMarshaler struct{}

func (rawMarshaler) Marshal(v []byte) ([]byte, error)      { return v, nil }
func (rawMarshaler) Unmarshal(data []byte) ([]byte, error) { return data, nil }

// Package cache provides the key-value caches that sit in front of translation resource loaders.
//
// Two backends implement Cache: Memory, a process-local LRU with optional expiry,
// and Redis, which lets several processes share resources fetched from slow stores such as S3.
//
//	c := cache.NewMemory[[]byte](cache.WithMaxEntries(256))
//	defer c.Close()
//
//	shared := cache.NewRedis[[]byte](client, cache.Raw(),
//		cache.WithPrefix("lingo:overrides"),
//		cache.WithRedisDefaultTTL(10*time.Minute),
//	)
//
// TTL semantics for Set are shared by both backends: a positive duration expires
// the entry after that duration, zero applies the backend default, and a negative
// duration keeps the entry until it is deleted or the cache is cleared.
package cache

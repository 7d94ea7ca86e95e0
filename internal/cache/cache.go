package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rockymountnc/licensetracker/internal/metrics"
)

// ResponseCache caches GET responses in Redis keyed by request path and
// query. A nil client disables caching entirely.
type ResponseCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func New(redisClient *redis.Client, ttl time.Duration) *ResponseCache {
	return &ResponseCache{redis: redisClient, ttl: ttl}
}

// Enabled reports whether a Redis client is wired in.
func (c *ResponseCache) Enabled() bool {
	return c != nil && c.redis != nil
}

func cacheKey(r *http.Request) string {
	return fmt.Sprintf("cache:%s?%s", r.URL.Path, r.URL.RawQuery)
}

type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.buf.Write(p)
	return w.ResponseWriter.Write(p)
}

// Middleware serves cached GET responses and fills the cache on misses.
// Only 200 responses are stored. Redis failures degrade to a pass-through.
func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !c.Enabled() || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := cacheKey(r)
		cached, err := c.redis.Get(r.Context(), key).Bytes()
		if err == nil {
			metrics.CacheHits.Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			w.Write(cached)
			return
		}
		if !errors.Is(err, redis.Nil) {
			next.ServeHTTP(w, r)
			return
		}

		metrics.CacheMisses.Inc()
		capture := &captureWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(capture, r)

		if capture.status == http.StatusOK {
			// Best effort: a failed SET just means the next request misses.
			c.redis.Set(r.Context(), key, capture.buf.Bytes(), c.ttl)
		}
	})
}

// Invalidate drops every cached response under the given path prefix.
func (c *ResponseCache) Invalidate(ctx context.Context, pathPrefix string) error {
	if !c.Enabled() {
		return nil
	}

	iter := c.redis.Scan(ctx, 0, "cache:"+pathPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.redis.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cache key %s: %w", iter.Val(), err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache keys: %w", err)
	}
	return nil
}

// InvalidateOnWrite wraps a mutating handler so a successful write clears
// cached responses under the prefix before the response is returned.
func (c *ResponseCache) InvalidateOnWrite(pathPrefix string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		// Invalidation is best effort; stale entries age out via TTL.
		_ = c.Invalidate(r.Context(), pathPrefix)
	}
}

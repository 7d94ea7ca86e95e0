package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*ResponseCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return New(client, time.Minute), mr
}

func TestMiddlewareCachesGets(t *testing.T) {
	c, _ := newTestCache(t)

	calls := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1}]`))
	}))

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/software", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `[{"id":1}]`, rec.Body.String())
	}

	assert.Equal(t, 1, calls, "second and third requests should be served from cache")
}

func TestMiddlewareSkipsNonGet(t *testing.T) {
	c, _ := newTestCache(t)

	calls := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/software", nil))
	}

	assert.Equal(t, 2, calls)
}

func TestMiddlewareDoesNotCacheErrors(t *testing.T) {
	c, _ := newTestCache(t)

	calls := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/software", nil))
	}

	assert.Equal(t, 2, calls, "error responses must not be cached")
}

func TestMiddlewareVariesOnQuery(t *testing.T) {
	c, _ := newTestCache(t)

	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.RawQuery))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/comments?software_id=1", nil))
	assert.Equal(t, "software_id=1", rec.Body.String())

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/comments?software_id=2", nil))
	assert.Equal(t, "software_id=2", rec.Body.String())
}

func TestInvalidateDropsPrefix(t *testing.T) {
	c, mr := newTestCache(t)

	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("v1"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/software", nil))
	require.True(t, mr.Exists("cache:/api/v1/software?"))

	require.NoError(t, c.Invalidate(context.Background(), "/api/v1/software"))
	assert.False(t, mr.Exists("cache:/api/v1/software?"))
}

func TestDisabledCachePassesThrough(t *testing.T) {
	c := New(nil, time.Minute)

	calls := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/software", nil))
	}

	assert.Equal(t, 2, calls)
	assert.False(t, c.Enabled())
}

func TestEntriesExpire(t *testing.T) {
	c, mr := newTestCache(t)

	calls := 0
	handler := c.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte("ok"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil))

	mr.FastForward(2 * time.Minute)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/vendors", nil))

	assert.Equal(t, 2, calls, "expired entries should miss")
}

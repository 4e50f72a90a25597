package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voyara/backend/internal/api/middleware"
)

type memoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{data: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if val, ok := c.data[key]; ok {
		return val, nil
	}
	return nil, fmt.Errorf("key not found: %s", key)
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memoryCache) DeletePattern(_ context.Context, _ string) error { return nil }

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok, nil
}

func (c *memoryCache) keys() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.data))
	for key := range c.data {
		out = append(out, key)
	}
	return out
}

func newCachedHandler(cache *memoryCache, hits *int) http.Handler {
	cacheMiddleware := middleware.NewCacheMiddleware(cache, nil)
	return cacheMiddleware.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		*hits++
		w.Write([]byte(`{"destinations":[],"count":0}`))
	}))
}

func TestCacheMiddleware_ServesRepeatRequestsFromCache(t *testing.T) {
	cache := newMemoryCache()
	var hits int
	handler := newCachedHandler(cache, &hits)

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/destinations?country=Japan", nil))
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))

	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/destinations?country=Japan", nil))
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, 1, hits)
}

func TestCacheMiddleware_KeysMatchTheInvalidationGlob(t *testing.T) {
	cache := newMemoryCache()
	var hits int
	handler := newCachedHandler(cache, &hits)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/destinations?search=temple", nil))

	keys := cache.keys()
	require.Len(t, keys, 1)

	// The invalidation side drops entries with "http:cache:*destinations*";
	// the stored key must keep the path literal for that glob to match.
	assert.True(t, strings.HasPrefix(keys[0], "http:cache:/api/destinations:"), "key %q lost its path", keys[0])
	assert.Regexp(t, regexp.MustCompile(`^http:cache:.*destinations.*$`), keys[0])
}

func TestCacheMiddleware_DistinctQueriesGetDistinctEntries(t *testing.T) {
	cache := newMemoryCache()
	var hits int
	handler := newCachedHandler(cache, &hits)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/destinations?country=Japan", nil))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/destinations?country=Italy", nil))

	assert.Len(t, cache.keys(), 2)
	assert.Equal(t, 2, hits)
}

func TestCacheMiddleware_SkipsAuthenticatedRequests(t *testing.T) {
	cache := newMemoryCache()
	var hits int
	handler := newCachedHandler(cache, &hits)

	req := httptest.NewRequest(http.MethodGet, "/api/destinations", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("X-Cache"))
	assert.Empty(t, cache.keys())
	assert.Equal(t, 1, hits)
}

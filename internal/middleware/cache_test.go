package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moviweb/moviweb/internal/config"
)

func newCacheContext(target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func defaultCacheConfig() config.CacheConfig {
	return config.CacheConfig{
		Enabled:     true,
		Methods:     map[string]bool{"GET": true},
		KeyStrategy: "route_query",
		Prefix:      "moviweb",
	}
}

// TestCacheKeyDistinguishesEntities guards the key derivation on
// parameterized routes: a cached response for one user must never be
// replayed for another, so /v1/users/1 and /v1/users/2 need distinct
// keys even though they share a route template and carry no query.
func TestCacheKeyDistinguishesEntities(t *testing.T) {
	cfg := defaultCacheConfig()

	k1 := cacheKeyFrom(cfg, newCacheContext("/v1/users/1"))
	k2 := cacheKeyFrom(cfg, newCacheContext("/v1/users/2"))
	assert.NotEqual(t, k1, k2, "different users must not share a cache entry")

	m1 := cacheKeyFrom(cfg, newCacheContext("/v1/users/1/movies"))
	m2 := cacheKeyFrom(cfg, newCacheContext("/v1/users/2/movies"))
	assert.NotEqual(t, m1, m2, "different owners' listings must not share a cache entry")
}

func TestCacheKeyStable(t *testing.T) {
	cfg := defaultCacheConfig()

	k1 := cacheKeyFrom(cfg, newCacheContext("/v1/users/1"))
	k2 := cacheKeyFrom(cfg, newCacheContext("/v1/users/1"))
	assert.Equal(t, k1, k2, "the same request must hit the same entry")
}

func TestCacheKeyQueryStrategy(t *testing.T) {
	cfg := defaultCacheConfig()

	withQ := cacheKeyFrom(cfg, newCacheContext("/v1/users?verbose=1"))
	without := cacheKeyFrom(cfg, newCacheContext("/v1/users"))
	assert.NotEqual(t, withQ, without, "route_query folds the query into the key")

	cfg.KeyStrategy = "route"
	pathOnlyQ := cacheKeyFrom(cfg, newCacheContext("/v1/users?verbose=1"))
	pathOnly := cacheKeyFrom(cfg, newCacheContext("/v1/users"))
	assert.Equal(t, pathOnlyQ, pathOnly, "route strategy ignores the query")
}

func TestCacheKeyPrefix(t *testing.T) {
	cfg := defaultCacheConfig()
	key := cacheKeyFrom(cfg, newCacheContext("/v1/users"))
	assert.Regexp(t, "^moviweb:", key)
}

// TestRedisCachePassThrough verifies that the middleware does nothing
// when caching is disabled or no Redis client exists: the handler runs
// and no cache header is set.
func TestRedisCachePassThrough(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.CacheConfig
	}{
		{name: "nil redis client", cfg: defaultCacheConfig()},
		{name: "disabled by config", cfg: config.CacheConfig{Enabled: false}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mw := NewRedisCache(tc.cfg, nil)

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/v1/users", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			called := false
			err := mw(func(c echo.Context) error {
				called = true
				return c.String(http.StatusOK, "ok")
			})(c)
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Empty(t, rec.Header().Get("X-Cache"))
		})
	}
}

// TestCaptureWriterLimit pins the buffering cap used to keep oversized
// bodies out of the cache: bytes past the limit are counted (so the
// middleware can detect truncation and skip storing) but not buffered.
func TestCaptureWriterLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}

	n, err := cw.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, 6, n, "the client still receives the full body")
	assert.Equal(t, "abcd", cw.buf.String())
	assert.Equal(t, int64(6), cw.size)
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestCaptureWriterNoLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK}

	_, err := cw.Write([]byte("abcdef"))
	require.NoError(t, err)
	assert.Equal(t, "abcdef", cw.buf.String())
}

func TestEntryRoundTrip(t *testing.T) {
	hdr := make(http.Header)
	hdr.Set("Content-Type", "application/json")

	entry, err := encodeEntry(http.StatusOK, hdr, []byte(`{"items":[]}`))
	require.NoError(t, err)

	status, gotHdr, body, ok := decodeEntry(entry)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, `{"items":[]}`, string(body))
}

func TestDecodeEntryRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, []byte("short"), {0, 0, 0, 200, 255, 255, 255, 255}} {
		if _, _, _, ok := decodeEntry(bs); ok {
			t.Errorf("decodeEntry(%v) accepted malformed input", bs)
		}
	}
}

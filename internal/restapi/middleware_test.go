package restapi

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddlewareLimitsPerKey(t *testing.T) {
	limited := NewRateLimitMiddleware(2, time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(limited)
	defer server.Close()

	for i := 0; i < 2; i++ {
		resp, err := http.Get(server.URL + "/?key=alpha")
		require.NoError(t, err)
		resp.Body.Close() // nolint:errcheck
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/?key=alpha")
	require.NoError(t, err)
	resp.Body.Close() // nolint:errcheck
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))

	// A different key has its own budget.
	resp, err = http.Get(server.URL + "/?key=beta")
	require.NoError(t, err)
	resp.Body.Close() // nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRateLimitMiddlewareEvictsIdleLimiters(t *testing.T) {
	rl := newRateLimiter(100, time.Second)
	handler := rl.rateLimitHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	// Every distinct key mints a limiter before the key is ever validated.
	for i := 0; i < 1000; i++ {
		req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/?key=junk-%d", i), nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}

	rl.mu.RLock()
	created := len(rl.limiters)
	rl.mu.RUnlock()
	require.Equal(t, 1000, created)

	rl.evictIdle()

	rl.mu.RLock()
	remaining := len(rl.limiters)
	rl.mu.RUnlock()
	assert.Zero(t, remaining)

	// An evicted key simply gets a fresh limiter.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?key=junk-0", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitMiddlewareDisabledWhenZero(t *testing.T) {
	unlimited := NewRateLimitMiddleware(0, time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	server := httptest.NewServer(unlimited)
	defer server.Close()

	for i := 0; i < 20; i++ {
		resp, err := http.Get(server.URL)
		require.NoError(t, err)
		resp.Body.Close() // nolint:errcheck
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestCompressionMiddlewareCompressesLargeResponses(t *testing.T) {
	payload := strings.Repeat("fertilizer consumption data ", 200)
	compressed := CompressionMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, payload)
	}))

	server := httptest.NewServer(compressed)
	defer server.Close()

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)
	req.Header.Set("Accept-Encoding", "gzip")

	// Disable the transport's transparent decompression so the encoding
	// header survives.
	transport := &http.Transport{DisableCompression: true}
	resp, err := transport.RoundTrip(req)
	require.NoError(t, err)
	defer resp.Body.Close() // nolint:errcheck

	require.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))

	reader, err := gzip.NewReader(resp.Body)
	require.NoError(t, err)
	body, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestRequestLoggingMiddlewarePassesThrough(t *testing.T) {
	api := createTestApi(t, newFakeUpstream(t))

	handler := api.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/anything?key=test", nil))
	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

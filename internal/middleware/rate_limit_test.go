package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func TestRateLimiter_BasicFunctionality(t *testing.T) {
	// Allow 2 requests per second with burst of 2
	rl := NewRateLimiter(2.0, 2)
	defer rl.Close()

	limited := rl.RateLimit(okHandler())

	// First request - should pass
	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	w1 := httptest.NewRecorder()
	limited.ServeHTTP(w1, req1)

	assert.Equal(t, http.StatusOK, w1.Code)
	assert.Equal(t, "OK", w1.Body.String())

	// Second request - should pass (within burst)
	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.RemoteAddr = "192.168.1.1:12345"
	w2 := httptest.NewRecorder()
	limited.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)

	// Third request immediately - should be rate limited
	req3 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req3.RemoteAddr = "192.168.1.1:12345"
	w3 := httptest.NewRecorder()
	limited.ServeHTTP(w3, req3)

	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
	assert.Contains(t, w3.Body.String(), "Rate limit exceeded")
}

func TestRateLimiter_DifferentIPs(t *testing.T) {
	rl := NewRateLimiter(1.0, 1)
	defer rl.Close()

	limited := rl.RateLimit(okHandler())

	// Request from first IP
	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.RemoteAddr = "192.168.1.1:12345"
	w1 := httptest.NewRecorder()
	limited.ServeHTTP(w1, req1)

	assert.Equal(t, http.StatusOK, w1.Code)

	// Request from second IP - should also pass (different limiter)
	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.RemoteAddr = "192.168.1.2:12345"
	w2 := httptest.NewRecorder()
	limited.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusOK, w2.Code)

	// Second request from first IP - should be rate limited
	req3 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req3.RemoteAddr = "192.168.1.1:12345"
	w3 := httptest.NewRecorder()
	limited.ServeHTTP(w3, req3)

	assert.Equal(t, http.StatusTooManyRequests, w3.Code)
}

func TestRateLimiter_XForwardedFor(t *testing.T) {
	rl := NewRateLimiter(1.0, 1)
	defer rl.Close()

	limited := rl.RateLimit(okHandler())

	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
	req1.RemoteAddr = "192.168.1.100:12345"
	w1 := httptest.NewRecorder()
	limited.ServeHTTP(w1, req1)

	assert.Equal(t, http.StatusOK, w1.Code)

	// Same forwarded IP behind a different RemoteAddr - rate limited
	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.Header.Set("X-Forwarded-For", "203.0.113.1, 192.168.1.1")
	req2.RemoteAddr = "192.168.1.200:12345"
	w2 := httptest.NewRecorder()
	limited.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

func TestRateLimiter_XRealIP(t *testing.T) {
	rl := NewRateLimiter(1.0, 1)
	defer rl.Close()

	limited := rl.RateLimit(okHandler())

	req1 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req1.Header.Set("X-Real-IP", "203.0.113.1")
	req1.RemoteAddr = "192.168.1.100:12345"
	w1 := httptest.NewRecorder()
	limited.ServeHTTP(w1, req1)

	assert.Equal(t, http.StatusOK, w1.Code)

	req2 := httptest.NewRequest(http.MethodGet, "/test", nil)
	req2.Header.Set("X-Real-IP", "203.0.113.1")
	req2.RemoteAddr = "192.168.1.200:12345"
	w2 := httptest.NewRecorder()
	limited.ServeHTTP(w2, req2)

	assert.Equal(t, http.StatusTooManyRequests, w2.Code)
}

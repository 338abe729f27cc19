package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(t *testing.T, perMinute int) (*Limiter, *time.Time) {
	t.Helper()
	rl := NewLimiter(Config{RequestsPerMinute: perMinute, CleanupInterval: time.Hour})
	t.Cleanup(rl.Stop)

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	return rl, &now
}

func TestLimiter_Allow(t *testing.T) {
	rl, now := newTestLimiter(t, 2)

	assert.True(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("1.1.1.1"))
	assert.False(t, rl.Allow("1.1.1.1"))
	assert.True(t, rl.Allow("2.2.2.2"), "other clients are independent")

	*now = now.Add(59 * time.Second)
	assert.False(t, rl.Allow("1.1.1.1"), "still inside the window")

	*now = now.Add(time.Second)
	assert.True(t, rl.Allow("1.1.1.1"), "window rolls over after a minute")

	assert.Equal(t, int64(2), rl.GetMetrics().TotalHits)
	assert.Equal(t, int64(2), rl.GetMetrics().ClientCount)
}

func TestLimiter_WindowDoesNotSlideOnRejectedRequests(t *testing.T) {
	rl, now := newTestLimiter(t, 1)

	assert.True(t, rl.Allow("ip"))
	for i := 0; i < 5; i++ {
		*now = now.Add(11 * time.Second)
		rl.Allow("ip")
	}
	// 55s of hammering; the window opened at t=0 still closes at t=60s.
	*now = now.Add(5 * time.Second)
	assert.True(t, rl.Allow("ip"))
}

func TestLimiter_RetryAfter(t *testing.T) {
	rl, now := newTestLimiter(t, 1)

	assert.Equal(t, time.Duration(0), rl.RetryAfter("unknown"))
	rl.Allow("ip")
	*now = now.Add(20 * time.Second)
	assert.Equal(t, 40*time.Second, rl.RetryAfter("ip"))
}

func TestLimiter_CleanupStaleEntries(t *testing.T) {
	rl, now := newTestLimiter(t, 5)

	rl.Allow("old")
	*now = now.Add(9 * time.Minute)
	rl.Allow("fresh")
	*now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, rl.cleanupStaleEntries())
	assert.Equal(t, 1, rl.ActiveClients())
}

func TestLimiter_DefaultsAndStopTwice(t *testing.T) {
	rl := NewLimiter(Config{})
	assert.Equal(t, 60, rl.requestsPerMinute)
	assert.Equal(t, 5*time.Minute, rl.cleanupInterval)
	rl.Stop()
	rl.Stop()
}

func TestMiddleware_OnlyLimitsSelectedMethods(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	ip := func(*http.Request) string { return "9.9.9.9" }
	h := rl.Middleware(ip, OnlyMethods(http.MethodPost), nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	do := func(method string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(method, "/", nil))
		return rec
	}

	assert.Equal(t, http.StatusNoContent, do(http.MethodPost).Code)
	limited := do(http.MethodPost)
	assert.Equal(t, http.StatusTooManyRequests, limited.Code)
	assert.Equal(t, "60", limited.Header().Get("Retry-After"))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusNoContent, do(http.MethodGet).Code)
	}
}

func TestMiddleware_CustomOnLimit(t *testing.T) {
	rl, _ := newTestLimiter(t, 1)
	called := 0
	onLimit := func(w http.ResponseWriter, r *http.Request) {
		called++
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	h := rl.Middleware(func(*http.Request) string { return "x" }, nil, onLimit)(http.NotFoundHandler())

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1, called)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamasit07/connect4-agent/pkg/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(SubjectKey))
	})
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"https://ok.example.com"}))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://ok.example.com")
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://ok.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	assert.Equal(t, http.StatusForbidden, serve(r, req).Code)

	w = serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://ok.example.com")
	assert.Equal(t, http.StatusNoContent, serve(r, req).Code)
}

func TestSecurityHeaders(t *testing.T) {
	w := serve(newEngine(SecurityHeadersMiddleware()), httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestAuthMiddleware(t *testing.T) {
	r := newEngine(AuthMiddleware("s3cret"))

	assert.Equal(t, http.StatusUnauthorized, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, serve(r, req).Code)

	token, err := auth.IssueToken("s3cret", "arena", "", time.Minute)
	require.NoError(t, err)
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "arena", w.Body.String())
}

func TestLocalLimiter(t *testing.T) {
	l := NewLocalLimiter(2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "a")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "b")
	assert.True(t, ok)
}

func TestLocalLimiterPrune(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := NewLocalLimiter(10)
	l.now = func() time.Time { return now }

	_, _ = l.Allow(context.Background(), "old")
	now = now.Add(10 * time.Minute)
	_, _ = l.Allow(context.Background(), "new")

	assert.Equal(t, 1, l.Prune(5*time.Minute))
	assert.Equal(t, 1, l.Len())
}

type failingLimiter struct{ calls int }

func (f *failingLimiter) Allow(context.Context, string) (bool, error) {
	f.calls++
	return false, errors.New("connection refused")
}

type fixedLimiter bool

func (f fixedLimiter) Allow(context.Context, string) (bool, error) {
	return bool(f), nil
}

func TestFallbackLimiter(t *testing.T) {
	shared := &failingLimiter{}
	l := FallbackLimiter{Shared: shared, Local: NewLocalLimiter(1)}

	ok, err := l.Allow(context.Background(), "a")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _ = l.Allow(context.Background(), "a")
	assert.False(t, ok, "local bucket is exhausted")
	assert.Equal(t, 2, shared.calls)

	l = FallbackLimiter{Shared: fixedLimiter(false), Local: NewLocalLimiter(100)}
	ok, _ = l.Allow(context.Background(), "a")
	assert.False(t, ok, "shared answer wins while it works")
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newEngine(RateLimitMiddleware(NewLocalLimiter(1)))

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
	w := serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	r = newEngine(RateLimitMiddleware(&failingLimiter{}))
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/ping", nil)).Code)
}

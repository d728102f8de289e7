package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// maxLocalClients bounds the in-process limiter table; it is reset when
// full. The cleanup worker normally prunes it well before that.
const maxLocalClients = 10000

type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// LocalLimiter keeps a token bucket per client in process memory.
type LocalLimiter struct {
	mu      sync.Mutex
	limit   rate.Limit
	burst   int
	clients map[string]*localClient
	now     func() time.Time
}

type localClient struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewLocalLimiter(perMinute int) *LocalLimiter {
	return &LocalLimiter{
		limit:   rate.Limit(float64(perMinute) / 60),
		burst:   max(perMinute, 1),
		clients: make(map[string]*localClient),
		now:     time.Now,
	}
}

func (l *LocalLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	c, ok := l.clients[key]
	if !ok {
		if len(l.clients) >= maxLocalClients {
			l.clients = make(map[string]*localClient)
		}
		c = &localClient{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1), nil
}

// Prune drops clients not seen for idle and returns how many went.
func (l *LocalLimiter) Prune(idle time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	cutoff := l.now().Add(-idle)
	removed := 0
	for key, c := range l.clients {
		if c.lastSeen.Before(cutoff) {
			delete(l.clients, key)
			removed++
		}
	}
	return removed
}

func (l *LocalLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// FallbackLimiter asks the shared limiter first and drops to the local one
// while the shared one is failing.
type FallbackLimiter struct {
	Shared Limiter
	Local  Limiter
}

func (f FallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	if f.Shared != nil {
		ok, err := f.Shared.Allow(ctx, key)
		if err == nil {
			return ok, nil
		}
		log.Warn().Str("component", "ratelimit").Err(err).Msg("shared limiter unavailable, using local")
	}
	return f.Local.Allow(ctx, key)
}

// RateLimitMiddleware limits by token subject when authenticated, by client
// IP otherwise. Limiter errors let the request through.
func RateLimitMiddleware(l Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if subject := c.GetString(SubjectKey); subject != "" {
			key = "sub:" + subject
		}

		ok, err := l.Allow(c.Request.Context(), key)
		if err != nil {
			log.Error().Str("component", "ratelimit").Err(err).Msg("limiter failed")
			c.Next()
			return
		}
		if !ok {
			c.Header("Retry-After", "60")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

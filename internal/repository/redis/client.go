package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const keyPrefix = "connect4:ratelimit"

type Client struct {
	rdb *redis.Client
}

// Connect dials Redis and pings it once. Callers treat an error as
// "Redis disabled" and carry on without it.
func Connect(ctx context.Context, addr, password string) (*Client, error) {
	addr = strings.TrimPrefix(addr, "redis://")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Info().Str("component", "redis").Str("addr", addr).Msg("connected")
	return &Client{rdb: rdb}, nil
}

func (c *Client) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}

// RateCounter is a fixed-window request counter shared by every process
// talking to the same Redis.
type RateCounter struct {
	rdb    redis.Cmdable
	limit  int64
	window time.Duration
	now    func() time.Time
}

func (c *Client) RateCounter(limit int, window time.Duration) *RateCounter {
	return NewRateCounter(c.rdb, limit, window)
}

func NewRateCounter(rdb redis.Cmdable, limit int, window time.Duration) *RateCounter {
	if window < time.Second {
		window = time.Second
	}
	return &RateCounter{rdb: rdb, limit: int64(limit), window: window, now: time.Now}
}

// Allow counts one request for key in the current window and reports
// whether it is still under the limit.
func (r *RateCounter) Allow(ctx context.Context, key string) (bool, error) {
	bucket := r.now().Unix() / int64(r.window/time.Second)
	k := fmt.Sprintf("%s:%s:%d", keyPrefix, key, bucket)

	var incr *redis.IntCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.Expire(ctx, k, r.window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("rate counter %s: %w", key, err)
	}
	return incr.Val() <= r.limit, nil
}

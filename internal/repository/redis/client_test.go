package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateCounterWindow(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	defer client.Close()

	now := time.Unix(1_700_000_000, 0)
	counter := client.RateCounter(2, time.Minute)
	counter.now = func() time.Time { return now }

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		ok, err := counter.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := counter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok, "third request in the window")

	ok, err = counter.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok, "other clients have their own count")

	now = now.Add(time.Minute)
	ok, err = counter.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok, "next window starts fresh")
}

func TestRateCounterSetsExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), "redis://"+mr.Addr(), "")
	require.NoError(t, err)
	defer client.Close()

	counter := client.RateCounter(5, 30*time.Second)
	_, err = counter.Allow(context.Background(), "k")
	require.NoError(t, err)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Equal(t, 30*time.Second, mr.TTL(keys[0]))
}

func TestRateCounterReportsOutage(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), mr.Addr(), "")
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = client.RateCounter(1, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestConnectFailsWithoutServer(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr, "")
	assert.Error(t, err)
}

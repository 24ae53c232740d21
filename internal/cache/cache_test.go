package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *RedisKV) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisKV(client)
}

func TestRedisKV_GetSet(t *testing.T) {
	mr, kv := newRedis(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", got)

	mr.FastForward(2 * time.Minute)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

type stats struct {
	Total int `json:"total"`
}

func TestAggregates_ComputesOnceUntilExpiry(t *testing.T) {
	mr, kv := newRedis(t)
	agg := NewAggregates(kv, time.Minute, zap.NewNop())
	ctx := context.Background()

	calls := 0
	compute := func() any {
		calls++
		return stats{Total: 523}
	}

	b, err := agg.JSON(ctx, "snap-1", "dashboard", compute)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":523}`, string(b))

	b, err = agg.JSON(ctx, "snap-1", "dashboard", compute)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":523}`, string(b))
	assert.Equal(t, 1, calls)
	assert.True(t, mr.Exists(Key("snap-1", "dashboard")))

	_, err = agg.JSON(ctx, "snap-2", "dashboard", compute)
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "keyed by snapshot")

	mr.FastForward(2 * time.Minute)
	_, err = agg.JSON(ctx, "snap-1", "dashboard", compute)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

type brokenKV struct{}

func (brokenKV) Get(context.Context, string) (string, error) { return "", errors.New("down") }
func (brokenKV) Set(context.Context, string, string, time.Duration) error {
	return errors.New("down")
}

func TestAggregates_StoreFailureFallsBack(t *testing.T) {
	agg := NewAggregates(brokenKV{}, time.Minute, nil)
	b, err := agg.JSON(context.Background(), "s", "x", func() any { return stats{Total: 1} })
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":1}`, string(b))
}

func TestAggregates_NilComputesDirectly(t *testing.T) {
	var agg *Aggregates
	b, err := agg.JSON(context.Background(), "s", "x", func() any { return []int{1, 2} })
	require.NoError(t, err)
	assert.Equal(t, "[1,2]", string(b))
}

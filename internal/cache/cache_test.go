package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)

	c.Set("blog:id:1", "hello", time.Minute)

	got, ok := c.Get("blog:id:1")
	require.True(t, ok)
	require.Equal(t, "hello", got)
}

func TestCache_Expiry(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("blog:id:1", "hello", 30*time.Millisecond)

	_, ok := c.Get("blog:id:1")
	require.True(t, ok)

	time.Sleep(50 * time.Millisecond)

	_, ok = c.Get("blog:id:1")
	require.False(t, ok)
}

func TestCache_SetRestartsCountdown(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", 1, 30*time.Millisecond)
	c.Set("k", 2, time.Minute)

	time.Sleep(50 * time.Millisecond)

	got, ok := c.Get("k")
	require.True(t, ok)
	require.Equal(t, 2, got)
}

func TestCache_Delete(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", "v", time.Minute)

	require.True(t, c.Delete("k"))
	require.False(t, c.Delete("k"))

	_, ok := c.Get("k")
	require.False(t, ok)
}

func TestCache_InvalidatePattern(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("blog:id:1", 1, time.Minute)
	c.Set("blog:list:p1:l10", 2, time.Minute)
	c.Set("blog:slug:intro", 3, time.Minute)
	c.Set("team:id:1", 4, time.Minute)

	removed := c.InvalidatePattern("blog")
	require.Equal(t, 3, removed)

	for _, key := range []string{"blog:id:1", "blog:list:p1:l10", "blog:slug:intro"} {
		_, ok := c.Get(key)
		assert.False(t, ok, key)
	}

	_, ok := c.Get("team:id:1")
	require.True(t, ok)
}

func TestCache_InvalidatePatternEmptySubstring(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", "v", time.Minute)

	require.Equal(t, 0, c.InvalidatePattern(""))

	_, ok := c.Get("k")
	require.True(t, ok)
}

func TestWrap_ProducerCalledOnce(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	calls := 0
	producer := func(context.Context) (int, error) {
		calls++
		return calls, nil
	}

	ctx := context.Background()

	first, err := Wrap(ctx, c, "svc:1", time.Minute, producer)
	require.NoError(t, err)
	require.Equal(t, 1, first)

	second, err := Wrap(ctx, c, "svc:1", time.Minute, producer)
	require.NoError(t, err)
	require.Equal(t, 1, second)
	require.Equal(t, 1, calls)

	c.Delete("svc:1")

	third, err := Wrap(ctx, c, "svc:1", time.Minute, producer)
	require.NoError(t, err)
	require.Equal(t, 2, third)
	require.Equal(t, 2, calls)
}

func TestWrap_ProducerErrorNotCached(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	storeDown := errors.New("store unreachable")
	calls := 0

	producer := func(context.Context) (string, error) {
		calls++
		return "", storeDown
	}

	ctx := context.Background()

	_, err := Wrap(ctx, c, "svc:1", 10*time.Minute, producer)
	require.ErrorIs(t, err, storeDown)

	_, ok := c.Get("svc:1")
	require.False(t, ok, "failed producer result must not be cached")

	_, err = Wrap(ctx, c, "svc:1", 10*time.Minute, producer)
	require.ErrorIs(t, err, storeDown)
	require.Equal(t, 2, calls)
}

func TestWrap_NilCacheDegradesToMiss(t *testing.T) {
	t.Parallel()

	var c *Cache
	calls := 0
	producer := func(context.Context) (string, error) {
		calls++
		return "fresh", nil
	}

	got, err := Wrap(context.Background(), c, "k", time.Minute, producer)
	require.NoError(t, err)
	require.Equal(t, "fresh", got)

	got, err = Wrap(context.Background(), c, "k", time.Minute, producer)
	require.NoError(t, err)
	require.Equal(t, "fresh", got)
	require.Equal(t, 2, calls)
}

func TestCache_Stats(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("k", "v", time.Minute)

	_, _ = c.Get("k")
	_, _ = c.Get("missing")

	stats := c.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, 1, stats.Entries)
}

func TestCache_Sweep(t *testing.T) {
	t.Parallel()

	c := New(time.Minute)
	c.Set("a", 1, 10*time.Millisecond)
	c.Set("b", 2, time.Minute)

	time.Sleep(30 * time.Millisecond)

	require.Equal(t, 1, c.sweep())
	require.Equal(t, 1, c.Len())
}

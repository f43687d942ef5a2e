package loadercache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprs3/f1dashboard-go/pkg/utils/cache"
)

func TestGet_LoadsAndCaches(t *testing.T) {
	calls := 0
	c := New(
		WithLoader(func(_ context.Context, key string) (*int, error) {
			calls++
			val := len(key)
			return &val, nil
		}))
	ctx := context.Background()

	first, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, *first)
	second, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)
}

func TestGet_NoLoader(t *testing.T) {
	c := New[string, int]()
	_, err := c.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestGet_LoaderError(t *testing.T) {
	wantErr := errors.New("boom")
	c := New(
		WithLoader(func(_ context.Context, _ string) (*int, error) {
			return nil, wantErr
		}))
	_, err := c.Get(context.Background(), "abc")
	assert.ErrorIs(t, err, wantErr)
}

func TestGet_ExpiredEntryReloads(t *testing.T) {
	calls := 0
	c := New(
		WithExpiration[string, int](time.Nanosecond),
		WithLoader(func(_ context.Context, _ string) (*int, error) {
			calls++
			val := calls
			return &val, nil
		}))
	ctx := context.Background()

	_, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	val, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, *val)
	assert.Equal(t, 2, calls)
}

func TestInvalidate(t *testing.T) {
	calls := 0
	c := New(
		WithLoader(func(_ context.Context, _ string) (*int, error) {
			calls++
			val := calls
			return &val, nil
		}))
	ctx := context.Background()

	_, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	c.Invalidate(ctx, "abc")
	val, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	assert.Equal(t, 2, *val)
}

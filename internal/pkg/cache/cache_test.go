package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoop(t *testing.T) {
	ctx := context.Background()
	var c ListCache = Noop{}

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, KeyFaculties, []string{"x"}))
	var out []string
	hit, err := c.Get(ctx, gen, KeyFaculties, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, c.Invalidate(ctx))
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "promotions:faculty:3", PromotionsByFacultyKey(3))
	assert.Equal(t, "students:promotion:7", StudentsByPromotionKey(7))
	assert.Equal(t, "unicampus:list:4:faculties", entryKey(4, KeyFaculties))
}

// Runs only when a Redis server is reachable through TEST_REDIS_ADDR.
func TestRedisCacheRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := Connect(ctx, Options{Addr: addr, TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	gen, err := c.Generation(ctx)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, gen, KeyStudents, []string{"ada"}))
	var out []string
	hit, err := c.Get(ctx, gen, KeyStudents, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []string{"ada"}, out)

	require.NoError(t, c.Invalidate(ctx))
	next, err := c.Generation(ctx)
	require.NoError(t, err)
	assert.Greater(t, next, gen)
	hit, err = c.Get(ctx, next, KeyStudents, &out)
	require.NoError(t, err)
	assert.False(t, hit)

	// A load that started before the invalidation stores under the old generation
	require.NoError(t, c.Set(ctx, gen, KeyStudents, []string{"stale"}))
	hit, err = c.Get(ctx, next, KeyStudents, &out)
	require.NoError(t, err)
	assert.False(t, hit)
}

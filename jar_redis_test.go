package cookiejar_test

// End-to-end tests of the Redis-backed jar (Config.RedisAddr construction
// path) against miniredis.

import (
	"context"
	"testing"
	"time"

	"github.com/AndrewDonelson/cookiejar"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisJar(t *testing.T) (*cookiejar.Jar, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	j, err := cookiejar.New(cookiejar.Config{RedisAddr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = j.Close() })
	return j, mr
}

func TestRedisJar_ScrambledRoundTrip(t *testing.T) {
	ctx := context.Background()
	j, _ := newRedisJar(t)

	_, err := j.Set(ctx, "a", "super", cookiejar.Options{Scramble: cookiejar.ScrambleDefault()})
	require.NoError(t, err)

	got, err := j.Get(ctx, "a", cookiejar.Options{Scramble: cookiejar.ScrambleDefault()})
	require.NoError(t, err)
	assert.Equal(t, "super", got)
}

func TestRedisJar_StoredFormOnTheWire(t *testing.T) {
	ctx := context.Background()
	j, mr := newRedisJar(t)

	_, err := j.Set(ctx, "a", "Secret123", cookiejar.Options{Scramble: cookiejar.ScrambleDefault()})
	require.NoError(t, err)

	raw, err := mr.Get("cookiejar:a")
	require.NoError(t, err)
	assert.Equal(t, "[rot13n]Frperg678", raw)
}

func TestRedisJar_ExpiryBecomesTTL(t *testing.T) {
	ctx := context.Background()
	j, mr := newRedisJar(t)

	_, err := j.Set(ctx, "tmp", "v", cookiejar.Options{Expires: cookiejar.InDays(1)})
	require.NoError(t, err)

	mr.FastForward(25 * time.Hour)
	ok, err := j.Exists(ctx, "tmp")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJar_RemoveIdempotent(t *testing.T) {
	ctx := context.Background()
	j, _ := newRedisJar(t)

	_, err := j.Set(ctx, "a", "v", cookiejar.Options{})
	require.NoError(t, err)

	require.NoError(t, j.Remove(ctx, "a", cookiejar.Options{}))
	require.NoError(t, j.Remove(ctx, "a", cookiejar.Options{}))

	ok, err := j.Exists(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisJar_CloseReleasesClient(t *testing.T) {
	j, _ := newRedisJar(t)
	require.NoError(t, j.Close())

	_, err := j.Get(context.Background(), "a", cookiejar.Options{})
	assert.ErrorIs(t, err, cookiejar.ErrUnavailable)
}

package redischan_test

import (
	"context"
	"testing"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/redischan"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*redischan.Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redischan.New(redischan.Options{Client: client}), mr
}

func TestWriteReadAll(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Write(ctx, "b=two"))
	require.NoError(t, s.Write(ctx, "a=1; path=/; secure"))

	raw, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a=1; b=two", raw, "name-sorted document")
}

func TestWrite_Replace(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Write(ctx, "a=1"))
	require.NoError(t, s.Write(ctx, "a=one"))

	raw, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a=one", raw)
}

func TestWrite_FutureExpiryBecomesTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	future := time.Now().Add(time.Hour).UTC().Format(channel.TimeFormat)
	require.NoError(t, s.Write(ctx, "tmp=v; expires="+future))

	ttl := mr.TTL("cookiejar:tmp")
	assert.Greater(t, ttl, 55*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(2 * time.Hour)
	raw, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestWrite_PastExpiryDeletes(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	require.NoError(t, s.Write(ctx, "a=1"))
	past := time.Now().Add(-time.Hour).UTC().Format(channel.TimeFormat)
	require.NoError(t, s.Write(ctx, "a=; expires="+past))

	raw, err := s.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestWrite_DeleteAbsentIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	past := time.Now().Add(-time.Hour).UTC().Format(channel.TimeFormat)
	require.NoError(t, s.Write(ctx, "missing=; expires="+past))
}

func TestWrite_SessionEntryHasNoTTL(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	require.NoError(t, s.Write(ctx, "sess=v"))
	assert.Zero(t, mr.TTL("cookiejar:sess"))
}

func TestWrite_Malformed(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.Write(context.Background(), "garbage")
	assert.ErrorIs(t, err, channel.ErrMalformed)
}

func TestReadAll_Empty(t *testing.T) {
	s, _ := newTestStore(t)
	raw, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestKeyPrefixIsolation(t *testing.T) {
	ctx := context.Background()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	a := redischan.New(redischan.Options{Client: client, KeyPrefix: "jar-a"})
	b := redischan.New(redischan.Options{Client: client, KeyPrefix: "jar-b"})

	require.NoError(t, a.Write(ctx, "x=1"))
	raw, err := b.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestPing(t *testing.T) {
	s, _ := newTestStore(t)
	assert.NoError(t, s.Ping(context.Background()))
}

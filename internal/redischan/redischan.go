// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// redischan.go — Redis-backed cookie channel for server-side jars: one key
// per cookie name under a configurable prefix, TTL derived from the entry's
// expires attribute, SCAN + pipelined GET for ReadAll.

// Package redischan provides the Redis cookie channel adapter.
package redischan

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/clock"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces jar keys in a shared Redis instance.
const DefaultKeyPrefix = "cookiejar"

// Options configures a redischan Store.
type Options struct {
	Client    redis.UniversalClient
	Clock     clock.Clock
	KeyPrefix string
}

// Store is the Redis channel adapter. Scope attributes (path/domain/secure)
// have no meaning in a server-side jar and are dropped on write; expiry is
// honored through Redis TTLs.
type Store struct {
	client    redis.UniversalClient
	clock     clock.Clock
	keyPrefix string
}

// New creates a new Redis channel.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	if opts.KeyPrefix == "" {
		opts.KeyPrefix = DefaultKeyPrefix
	}
	return &Store{client: opts.Client, clock: opts.Clock, keyPrefix: opts.KeyPrefix}
}

// key returns the Redis key for a cookie name. Plain concatenation keeps the
// write path allocation-light.
func (s *Store) key(name string) string {
	return s.keyPrefix + ":" + name
}

// Write parses entry and applies it: past expiry deletes the key, a future
// expiry becomes a TTL, a session entry persists until deleted.
func (s *Store) Write(ctx context.Context, entry string) error {
	e, err := channel.Parse(entry)
	if err != nil {
		return fmt.Errorf("redischan write: %w", err)
	}
	k := s.key(e.Name)
	now := s.clock.Now()

	if e.ExpiredAt(now) {
		if err := s.client.Del(ctx, k).Err(); err != nil && !errors.Is(err, redis.Nil) {
			return fmt.Errorf("redischan delete %s: %w", k, err)
		}
		return nil
	}
	if e.HasExpires {
		if err := s.client.Set(ctx, k, e.Value, e.Expires.Sub(now)).Err(); err != nil {
			return fmt.Errorf("redischan set %s: %w", k, err)
		}
		return nil
	}
	if err := s.client.Set(ctx, k, e.Value, 0).Err(); err != nil {
		return fmt.Errorf("redischan set %s: %w", k, err)
	}
	return nil
}

// ReadAll scans the key prefix and returns the live entries name-sorted as a
// "; "-joined pair document. A pipeline fetches all values in one round-trip.
func (s *Store) ReadAll(ctx context.Context) (string, error) {
	pattern := s.keyPrefix + ":*"
	var keys []string
	var cursor uint64
	for {
		batch, next, err := s.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return "", fmt.Errorf("redischan scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return "", nil
	}
	sort.Strings(keys)

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, k := range keys {
		cmds[i] = pipe.Get(ctx, k)
	}
	_, _ = pipe.Exec(ctx)

	pairs := make([]channel.Pair, 0, len(keys))
	for i, cmd := range cmds {
		v, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // expired between SCAN and GET
			}
			return "", fmt.Errorf("redischan get %s: %w", keys[i], err)
		}
		pairs = append(pairs, channel.Pair{
			Name:  strings.TrimPrefix(keys[i], s.keyPrefix+":"),
			Value: v,
		})
	}
	return channel.Join(pairs), nil
}

// Ping checks that Redis is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// pgchan.go — PostgreSQL-backed cookie channel: one row per cookie name,
// upsert on write, expiry predicate on read, and an EnsureSchema helper
// that creates the backing table.

// Package pgchan provides the PostgreSQL cookie channel adapter.
package pgchan

import (
	"context"
	"fmt"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/clock"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the backing table name when none is configured.
const DefaultTable = "cookies"

// Options configures a pgchan Store.
type Options struct {
	Pool  *pgxpool.Pool
	Table string
	Clock clock.Clock
}

// Store is the PostgreSQL channel adapter. Scope attributes (path/domain/
// secure) have no meaning in a server-side jar and are dropped on write;
// expiry is kept as a column and filtered on read.
type Store struct {
	pool  *pgxpool.Pool
	table string
	clock clock.Clock
}

// New creates a new PostgreSQL channel from an existing pool.
func New(opts Options) *Store {
	if opts.Table == "" {
		opts.Table = DefaultTable
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	return &Store{pool: opts.Pool, table: opts.Table, clock: opts.Clock}
}

// EnsureSchema creates the backing table if it does not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	sql := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name    text PRIMARY KEY,
		value   text NOT NULL,
		expires timestamptz
	)`, s.table)
	if _, err := s.pool.Exec(ctx, sql); err != nil {
		return fmt.Errorf("pgchan ensure schema: %w", err)
	}
	return nil
}

// Write parses entry and applies it: past expiry deletes the row, anything
// else upserts.
func (s *Store) Write(ctx context.Context, entry string) error {
	e, err := channel.Parse(entry)
	if err != nil {
		return fmt.Errorf("pgchan write: %w", err)
	}
	if e.ExpiredAt(s.clock.Now()) {
		sql := fmt.Sprintf("DELETE FROM %s WHERE name = $1", s.table)
		if _, err := s.pool.Exec(ctx, sql, e.Name); err != nil {
			return fmt.Errorf("pgchan delete %s: %w", e.Name, err)
		}
		return nil
	}
	var expires *time.Time
	if e.HasExpires {
		expires = &e.Expires
	}
	sql := fmt.Sprintf(`INSERT INTO %s (name, value, expires) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, expires = EXCLUDED.expires`, s.table)
	if _, err := s.pool.Exec(ctx, sql, e.Name, e.Value, expires); err != nil {
		return fmt.Errorf("pgchan upsert %s: %w", e.Name, err)
	}
	return nil
}

// ReadAll returns the live rows name-sorted as a "; "-joined pair document.
func (s *Store) ReadAll(ctx context.Context) (string, error) {
	sql := fmt.Sprintf(
		"SELECT name, value FROM %s WHERE expires IS NULL OR expires > $1 ORDER BY name",
		s.table)
	rows, err := s.pool.Query(ctx, sql, s.clock.Now())
	if err != nil {
		return "", fmt.Errorf("pgchan read: %w", err)
	}
	defer rows.Close()

	var pairs []channel.Pair
	for rows.Next() {
		var p channel.Pair
		if err := rows.Scan(&p.Name, &p.Value); err != nil {
			return "", fmt.Errorf("pgchan scan: %w", err)
		}
		pairs = append(pairs, p)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("pgchan read: %w", err)
	}
	return channel.Join(pairs), nil
}

// Ping verifies the pool is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Pool exposes the underlying pool so the owner can close it.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

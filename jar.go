// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// jar.go — the Jar orchestrator: config-driven channel construction, the
// Get/Set/Remove/Exists entry points with transparent scrambling, object
// convenience wrappers, and the scrambler registry extension points.

package cookiejar

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/clock"
	"github.com/AndrewDonelson/cookiejar/internal/codec"
	"github.com/AndrewDonelson/cookiejar/internal/memchan"
	"github.com/AndrewDonelson/cookiejar/internal/metrics"
	"github.com/AndrewDonelson/cookiejar/internal/pgchan"
	"github.com/AndrewDonelson/cookiejar/internal/redischan"
	"github.com/AndrewDonelson/cookiejar/internal/scramble"
	"github.com/AndrewDonelson/cookiejar/internal/tag"
	"github.com/AndrewDonelson/cookiejar/internal/transport"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Re-export types so callers only import this package.
type Recorder = metrics.Recorder
type Codec = codec.Codec
type Channel = channel.Channel
type Clock = clock.Clock

// Built-in scrambler names.
const (
	ScramblerROT13  = scramble.ROT13
	ScramblerROT13N = scramble.ROT13N
)

// ────────────────────────────────────────────────────────────────────────────
// Config
// ────────────────────────────────────────────────────────────────────────────

// RedisPoolConfig configures the Redis channel client.
type RedisPoolConfig struct {
	PoolSize     int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// PGPoolConfig configures the PostgreSQL channel connection pool.
type PGPoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Config contains all Jar configuration. Channel selection: an explicit
// Channel wins, then RedisAddr, then PostgresDSN, else an in-memory channel.
type Config struct {
	// DSNs
	PostgresDSN   string
	PostgresTable string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	// Pool sizes
	RedisPool RedisPoolConfig
	PGPool    PGPoolConfig

	// DefaultScrambler overrides the starting default algorithm name
	// (must be registered; the built-ins are rot13 and rot13n).
	DefaultScrambler string

	// Optional overrideable components
	Channel Channel
	Codec   codec.Codec
	Clock   clock.Clock
	Metrics metrics.Recorder
	Logger  Logger
}

func (c *Config) defaults() {
	if c.Codec == nil {
		c.Codec = codec.Default
	}
	if c.Clock == nil {
		c.Clock = clock.Real{}
	}
	if c.Metrics == nil {
		c.Metrics = metrics.Noop{}
	}
	if c.Logger == nil {
		c.Logger = noopLogger{}
	}
	if c.PGPool.MaxConns == 0 {
		c.PGPool.MaxConns = 10
	}
	if c.PGPool.MinConns == 0 {
		c.PGPool.MinConns = 1
	}
	if c.PGPool.MaxConnLifetime == 0 {
		c.PGPool.MaxConnLifetime = 30 * time.Minute
	}
	if c.PGPool.MaxConnIdleTime == 0 {
		c.PGPool.MaxConnIdleTime = 10 * time.Minute
	}
}

// ────────────────────────────────────────────────────────────────────────────
// Stats
// ────────────────────────────────────────────────────────────────────────────

type jarStats struct {
	Gets    atomic.Int64
	Sets    atomic.Int64
	Removes atomic.Int64
	Errors  atomic.Int64
}

// Stats is the snapshot returned by Jar.Stats().
type Stats struct {
	Gets    int64
	Sets    int64
	Removes int64
	Errors  int64
}

// ────────────────────────────────────────────────────────────────────────────
// Jar
// ────────────────────────────────────────────────────────────────────────────

// Jar is the main entry-point for the cookiejar library.
type Jar struct {
	cfg        Config
	scramblers *scramble.Registry
	ch         channel.Channel
	clock      clock.Clock
	codec      codec.Codec
	metrics    metrics.Recorder
	logger     Logger
	stats      jarStats
	closed     atomic.Bool
	closers    []func() error
}

// New creates and initialises a Jar from the provided Config.
func New(cfg Config) (*Jar, error) {
	cfg.defaults()

	j := &Jar{
		cfg:        cfg,
		scramblers: scramble.NewRegistry(),
		clock:      cfg.Clock,
		codec:      cfg.Codec,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}

	if cfg.DefaultScrambler != "" {
		if err := j.scramblers.SetDefault(cfg.DefaultScrambler); err != nil {
			return nil, fmt.Errorf("%w: default scrambler %q", ErrInvalidConfig, cfg.DefaultScrambler)
		}
	}

	switch {
	case cfg.Channel != nil:
		j.ch = cfg.Channel

	case cfg.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.RedisAddr,
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			PoolSize:     cfg.RedisPool.PoolSize,
			DialTimeout:  cfg.RedisPool.DialTimeout,
			ReadTimeout:  cfg.RedisPool.ReadTimeout,
			WriteTimeout: cfg.RedisPool.WriteTimeout,
		})
		j.ch = redischan.New(redischan.Options{
			Client:    client,
			Clock:     cfg.Clock,
			KeyPrefix: cfg.RedisPrefix,
		})
		j.closers = append(j.closers, client.Close)

	case cfg.PostgresDSN != "":
		pgCfg, err := pgxpool.ParseConfig(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("cookiejar: postgres config: %w", err)
		}
		pgCfg.MaxConns = cfg.PGPool.MaxConns
		pgCfg.MinConns = cfg.PGPool.MinConns
		pgCfg.MaxConnLifetime = cfg.PGPool.MaxConnLifetime
		pgCfg.MaxConnIdleTime = cfg.PGPool.MaxConnIdleTime

		pool, err := pgxpool.NewWithConfig(context.Background(), pgCfg)
		if err != nil {
			return nil, fmt.Errorf("cookiejar: postgres pool: %w", err)
		}
		pg := pgchan.New(pgchan.Options{Pool: pool, Table: cfg.PostgresTable, Clock: cfg.Clock})
		if err := pg.EnsureSchema(context.Background()); err != nil {
			pool.Close()
			return nil, fmt.Errorf("cookiejar: %w", err)
		}
		j.ch = pg
		j.closers = append(j.closers, func() error { pool.Close(); return nil })

	default:
		j.ch = memchan.New(memchan.Options{Clock: cfg.Clock})
	}

	return j, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Scrambler registry
// ────────────────────────────────────────────────────────────────────────────

// RegisterScrambler inserts or overwrites a named algorithm. encode and
// decode must be inverses: decode(encode(x)) == x. Names containing '[',
// ']', or other non-alphanumerics break the tag grammar and are logged as a
// warning but not rejected (caller responsibility).
func (j *Jar) RegisterScrambler(name string, encode, decode func(string) string) error {
	if name == "" || encode == nil || decode == nil {
		return fmt.Errorf("%w: scrambler needs a name and both transforms", ErrInvalidConfig)
	}
	if !alnum(name) {
		j.logger.Warn("scrambler name is unsafe for value tagging", "name", name)
	}
	j.scramblers.Register(name, scramble.Algorithm{Encode: encode, Decode: decode})
	return nil
}

// DefaultScrambler returns the current default algorithm name.
func (j *Jar) DefaultScrambler() string {
	return j.scramblers.Default()
}

// SetDefaultScrambler changes the default algorithm. The name must already
// be registered so the default always resolves.
func (j *Jar) SetDefaultScrambler(name string) error {
	if err := j.scramblers.SetDefault(name); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownScrambler, name)
	}
	return nil
}

func alnum(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ────────────────────────────────────────────────────────────────────────────
// Read path
// ────────────────────────────────────────────────────────────────────────────

// Get reads the named entry. A missing entry is not an error: it returns ""
// with a nil error. When opts.Scramble is enabled the stored prefix tag
// decides the decoding algorithm; untagged values decode with the legacy
// rot13 assumption, and an unregistered tag fails the call with
// ErrUnknownScrambler rather than returning scrambled text.
func (j *Jar) Get(ctx context.Context, name string, opts Options) (string, error) {
	if j.closed.Load() {
		return "", ErrUnavailable
	}
	j.stats.Gets.Add(1)
	start := j.clock.Now()
	defer func() { j.metrics.RecordLatency("get", time.Since(start)) }()

	raw, err := j.ch.ReadAll(ctx)
	if err != nil {
		j.stats.Errors.Add(1)
		j.metrics.RecordError("get")
		return "", fmt.Errorf("cookiejar: read channel: %w", err)
	}
	enc, ok := findValue(raw, name)
	if !ok {
		j.metrics.RecordMiss(name)
		return "", nil
	}
	j.metrics.RecordHit(name)

	value, err := transport.Decode(enc)
	if err != nil {
		j.stats.Errors.Add(1)
		j.metrics.RecordError("get")
		return "", fmt.Errorf("%w: %q: %v", ErrDecodeFailed, name, err)
	}

	if opts.Scramble.Enabled {
		algName := tag.Read(value)
		if algName == "" {
			// Data written before the tagging scheme existed.
			algName = scramble.Legacy
		}
		alg, ok := j.scramblers.Lookup(algName)
		if !ok {
			j.stats.Errors.Add(1)
			j.metrics.RecordError("get")
			return "", fmt.Errorf("%w: %q", ErrUnknownScrambler, algName)
		}
		value = alg.Decode(tag.Strip(value))
	}
	return value, nil
}

// Exists reports whether a named entry is present.
func (j *Jar) Exists(ctx context.Context, name string) (bool, error) {
	if j.closed.Load() {
		return false, ErrUnavailable
	}
	raw, err := j.ch.ReadAll(ctx)
	if err != nil {
		j.stats.Errors.Add(1)
		return false, fmt.Errorf("cookiejar: read channel: %w", err)
	}
	_, ok := findValue(raw, name)
	return ok, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Write path
// ────────────────────────────────────────────────────────────────────────────

// Set stores value under name. With opts.Scramble enabled the value is
// encoded by the resolved algorithm (unregistered names silently fall back
// to the default) and prefixed with a tag naming the algorithm actually
// used. Returns the value as persisted — post-scramble, pre-transport-
// encoding — so the caller can observe what was stored.
func (j *Jar) Set(ctx context.Context, name, value string, opts Options) (string, error) {
	if j.closed.Load() {
		return "", ErrUnavailable
	}
	j.stats.Sets.Add(1)
	start := j.clock.Now()
	defer func() { j.metrics.RecordLatency("set", time.Since(start)) }()

	stored := value
	if opts.Scramble.Enabled {
		resolved, alg := j.scramblers.Resolve(opts.Scramble.Name)
		stored = tag.Add(resolved, alg.Encode(value))
	}

	entry := serializeEntry(name, transport.Encode(stored), opts, j.clock.Now())
	if err := j.ch.Write(ctx, entry); err != nil {
		j.stats.Errors.Add(1)
		j.metrics.RecordError("set")
		return "", fmt.Errorf("cookiejar: write channel: %w", err)
	}
	return stored, nil
}

// Remove expires the named entry immediately. Removing an absent entry is
// not an error.
func (j *Jar) Remove(ctx context.Context, name string, opts Options) error {
	if j.closed.Load() {
		return ErrUnavailable
	}
	j.stats.Removes.Add(1)
	opts.Expires = Expired()
	opts.Scramble = Scramble{}
	_, err := j.Set(ctx, name, "", opts)
	return err
}

// ────────────────────────────────────────────────────────────────────────────
// Object convenience wrappers
// ────────────────────────────────────────────────────────────────────────────

// SetJSON stores v serialized through the configured codec (JSON unless
// overridden).
func (j *Jar) SetJSON(ctx context.Context, name string, v any, opts Options) (string, error) {
	b, err := j.codec.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncodeFailed, err)
	}
	return j.Set(ctx, name, string(b), opts)
}

// GetJSON reads the named entry into dest. A missing entry or a payload
// that does not parse leaves dest untouched and returns nil: malformed
// object payloads are recovered locally, never propagated.
func (j *Jar) GetJSON(ctx context.Context, name string, dest any, opts Options) error {
	s, err := j.Get(ctx, name, opts)
	if err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	if err := j.codec.Unmarshal([]byte(s), dest); err != nil {
		j.logger.Debug("discarding malformed object payload", "name", name, "codec", j.codec.Name(), "err", err)
		return nil
	}
	return nil
}

// GetJSONTyped is a generic convenience wrapper around GetJSON.
func GetJSONTyped[T any](ctx context.Context, j *Jar, name string, opts Options) (*T, error) {
	var dest T
	if err := j.GetJSON(ctx, name, &dest, opts); err != nil {
		return nil, err
	}
	return &dest, nil
}

// ────────────────────────────────────────────────────────────────────────────
// Stats / Close
// ────────────────────────────────────────────────────────────────────────────

// Stats returns a snapshot of operational counters.
func (j *Jar) Stats() Stats {
	return Stats{
		Gets:    j.stats.Gets.Load(),
		Sets:    j.stats.Sets.Load(),
		Removes: j.stats.Removes.Load(),
		Errors:  j.stats.Errors.Load(),
	}
}

// Close releases resources created by New (Redis client, Postgres pool).
// Channels supplied by the caller are not closed.
func (j *Jar) Close() error {
	if !j.closed.CompareAndSwap(false, true) {
		return nil
	}
	var errs []string
	for _, c := range j.closers {
		if err := c(); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cookiejar: close: %s", strings.Join(errs, "; "))
	}
	return nil
}

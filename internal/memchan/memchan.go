// Package memchan provides an in-memory cookie channel emulating a browser
// jar: insertion-ordered pairs, lazy expiry on read, last-writer-wins.
package memchan

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/clock"
)

// stored holds one live entry.
type stored struct {
	value      string
	expires    time.Time
	hasExpires bool
}

// Options configures a memchan Store.
type Options struct {
	Clock clock.Clock
}

// Store is the in-memory channel. Safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	clock clock.Clock
	items map[string]*stored
	order []string // insertion order, matching browser jar enumeration
}

// New creates an empty in-memory channel.
func New(opts Options) *Store {
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	return &Store{clock: opts.Clock, items: make(map[string]*stored)}
}

// Write parses entry and applies it: past expiry deletes, anything else
// inserts or replaces. Replacing keeps the original insertion position.
func (s *Store) Write(_ context.Context, entry string) error {
	e, err := channel.Parse(entry)
	if err != nil {
		return fmt.Errorf("memchan write: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ExpiredAt(s.clock.Now()) {
		s.remove(e.Name)
		return nil
	}
	if it, ok := s.items[e.Name]; ok {
		it.value, it.expires, it.hasExpires = e.Value, e.Expires, e.HasExpires
		return nil
	}
	s.items[e.Name] = &stored{value: e.Value, expires: e.Expires, hasExpires: e.HasExpires}
	s.order = append(s.order, e.Name)
	return nil
}

// ReadAll returns the live entries as a "; "-joined pair document, dropping
// any entry whose expiry has since passed.
func (s *Store) ReadAll(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	pairs := make([]channel.Pair, 0, len(s.order))
	for _, name := range s.order {
		it := s.items[name]
		if it.hasExpires && !it.expires.After(now) {
			continue
		}
		pairs = append(pairs, channel.Pair{Name: name, Value: it.value})
	}
	return channel.Join(pairs), nil
}

// Len returns the number of entries currently held, including ones that
// have expired but not yet been swept.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *Store) remove(name string) {
	if _, ok := s.items[name]; !ok {
		return
	}
	delete(s.items, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

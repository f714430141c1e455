// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// scramble.go — the algorithm registry: named, reversible {Encode, Decode}
// pairs with one designated default, extensible at runtime.

// Package scramble provides the registry of reversible text-obfuscation
// algorithms applied to cookie values.
package scramble

import (
	"errors"
	"sync"

	"github.com/AndrewDonelson/cookiejar/internal/rot"
)

// Built-in algorithm names.
const (
	ROT13  = "rot13"  // letter rotation only
	ROT13N = "rot13n" // letter rotation plus digit rotation

	// Legacy is assumed for scrambled values written before the prefix-tag
	// scheme existed (no tag present on read).
	Legacy = ROT13
)

// ErrUnknown is returned when a name does not resolve to a registered
// algorithm and no fallback is permitted.
var ErrUnknown = errors.New("scramble: unknown algorithm")

// Algorithm is a reversible text transform. Decode(Encode(x)) == x must hold
// for all x; both functions must be non-nil.
type Algorithm struct {
	Encode func(string) string
	Decode func(string) string
}

// Registry maps algorithm names to Algorithms and tracks the default.
// The default always resolves to a present entry. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	algos map[string]Algorithm
	def   string
}

// NewRegistry returns a Registry pre-loaded with the two built-ins,
// defaulting to ROT13N. Both built-ins are involutions, so a single
// function serves as both encode and decode.
func NewRegistry() *Registry {
	rot13n := func(s string) string { return rot.Digits(rot.Letters(s)) }
	return &Registry{
		algos: map[string]Algorithm{
			ROT13:  {Encode: rot.Letters, Decode: rot.Letters},
			ROT13N: {Encode: rot13n, Decode: rot13n},
		},
		def: ROT13N,
	}
}

// Register inserts or overwrites an entry. The registry performs no name
// validation; callers must keep names free of '[', ']' and other
// non-alphanumerics or the tag grammar breaks.
func (r *Registry) Register(name string, alg Algorithm) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.algos[name] = alg
}

// Resolve returns the algorithm for name, falling back to the default when
// name is empty or unregistered. The resolved name is returned alongside so
// writers can tag values with the algorithm actually used.
func (r *Registry) Resolve(name string) (string, Algorithm) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name != "" {
		if alg, ok := r.algos[name]; ok {
			return name, alg
		}
	}
	return r.def, r.algos[r.def]
}

// Lookup returns the algorithm for name with no fallback.
func (r *Registry) Lookup(name string) (Algorithm, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alg, ok := r.algos[name]
	return alg, ok
}

// Default returns the current default algorithm name.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.def
}

// SetDefault changes the default algorithm. Returns ErrUnknown if name is
// not registered, preserving the invariant that the default always resolves.
func (r *Registry) SetDefault(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.algos[name]; !ok {
		return ErrUnknown
	}
	r.def = name
	return nil
}

// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// options.go — per-call options for Get/Set/Remove: expiry variants, scope
// attributes, and the scramble selector.

package cookiejar

import "time"

// expiryKind discriminates the Expiry variant.
type expiryKind int

const (
	expirySession expiryKind = iota // no expires attribute
	expiryDays                      // relative, days from now
	expiryAt                        // absolute instant
)

// Expiry selects the lifetime of a written entry. The zero value is a
// session entry (cleared when the client session ends).
type Expiry struct {
	kind expiryKind
	days float64
	at   time.Time
}

// Session returns the session-scoped expiry (no expires attribute).
func Session() Expiry { return Expiry{} }

// InDays returns an expiry n days from now (fractions allowed, negative
// values land in the past and therefore delete).
func InDays(n float64) Expiry { return Expiry{kind: expiryDays, days: n} }

// At returns an expiry at the absolute instant t.
func At(t time.Time) Expiry { return Expiry{kind: expiryAt, at: t} }

// Expired returns an expiry guaranteed to be in the past, deleting the entry.
func Expired() Expiry { return InDays(-1) }

// Scramble selects the obfuscation applied on Set and expected on Get.
// Enabled with an empty Name uses the jar's default algorithm; an
// unregistered Name silently falls back to the default on write.
type Scramble struct {
	Enabled bool
	Name    string
}

// ScrambleDefault requests the jar's default algorithm.
func ScrambleDefault() Scramble { return Scramble{Enabled: true} }

// ScrambleWith requests the named algorithm.
func ScrambleWith(name string) Scramble { return Scramble{Enabled: true, Name: name} }

// Options carries the per-call settings for Get, Set, and Remove.
type Options struct {
	// Expires selects the entry lifetime; the zero value is a session entry.
	Expires Expiry

	// Path is the scope path attribute. nil defaults to root scope "/";
	// a pointer to "" omits the attribute entirely (page-relative scope).
	Path *string

	// Domain is the scope domain attribute; empty omits it.
	Domain string

	// Secure appends the secure attribute when true.
	Secure bool

	// Scramble applies the obfuscation layer. On Get it is what triggers
	// tag detection and decoding; the tag itself decides the algorithm.
	Scramble Scramble
}

// Ptr returns a pointer to v, convenient for Options.Path.
func Ptr[T any](v T) *T { return &v }

// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// errors.go — sentinel error variables returned by the public cookiejar API,
// covering unknown scramble algorithms, codec failures, malformed channel
// entries, and jar lifecycle.

// Package cookiejar manages named persistent entries in a cookie-style
// storage channel with a pluggable, reversible obfuscation layer applied
// transparently on set and get.
package cookiejar

import (
	"errors"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
	"github.com/AndrewDonelson/cookiejar/internal/scramble"
)

// Scramble errors
var (
	// ErrUnknownScrambler is returned when a stored value is tagged with (or
	// legacy-defaults to) an algorithm that is not registered. The read call
	// fails rather than returning still-scrambled text.
	ErrUnknownScrambler = scramble.ErrUnknown
)

// Data errors
var (
	ErrDecodeFailed = errors.New("cookiejar: failed to decode stored value")
	ErrEncodeFailed = errors.New("cookiejar: failed to encode value for storage")

	// ErrMalformedEntry is reported by channels for entries that do not
	// follow the "name=value; attr..." grammar.
	ErrMalformedEntry = channel.ErrMalformed
)

// Infrastructure errors
var (
	ErrChannelUnavailable = errors.New("cookiejar: storage channel unavailable")
	ErrUnavailable        = errors.New("cookiejar: jar is closed")
)

// Config errors
var (
	ErrInvalidConfig = errors.New("cookiejar: invalid configuration")
)

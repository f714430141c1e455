// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// transport.go — percent-encoding tuned to the cookie channel grammar, which
// forbids separators (',', ';', '='), whitespace, and control characters
// inside a stored value.

// Package transport converts values to and from the restricted text grammar
// of the cookie storage channel.
package transport

import "net/url"

const upperhex = "0123456789ABCDEF"

// safe reports whether byte c may appear literally in a stored value.
// The base set matches JS encodeURIComponent (ALPHA / DIGIT / - _ . ! ~ * '
// ( )) extended by '{', '}', ':', '[' and ']' — punctuation common in
// object-shaped payloads that is confirmed safe in the channel grammar, so
// escaping it would bloat storage for no benefit.
func safe(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	case '{', '}', ':', '[', ']':
		return true
	}
	return false
}

// Encode percent-encodes value for safe inclusion in the channel.
func Encode(value string) string {
	hexCount := 0
	for i := 0; i < len(value); i++ {
		if !safe(value[i]) {
			hexCount++
		}
	}
	if hexCount == 0 {
		return value
	}
	out := make([]byte, 0, len(value)+2*hexCount)
	for i := 0; i < len(value); i++ {
		c := value[i]
		if safe(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', upperhex[c>>4], upperhex[c&0xf])
	}
	return string(out)
}

// Decode is the full percent-decode inverse of Encode. It fails on truncated
// or non-hex escape sequences.
func Decode(value string) (string, error) {
	return url.PathUnescape(value)
}

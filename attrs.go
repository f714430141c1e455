// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// attrs.go — serialized entry assembly (expires/path/domain/secure attribute
// suffix) and exact-name matching within a channel ReadAll document.

package cookiejar

import (
	"strings"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/channel"
)

// expiresAt resolves an Expiry against now. ok is false for session entries.
func expiresAt(e Expiry, now time.Time) (t time.Time, ok bool) {
	switch e.kind {
	case expiryDays:
		return now.Add(time.Duration(e.days * float64(24*time.Hour))), true
	case expiryAt:
		return e.at, true
	default:
		return time.Time{}, false
	}
}

// serializeEntry assembles the entry handed to the channel:
// name=encodedValue[; expires=...][; path=...][; domain=...][; secure].
func serializeEntry(name, encodedValue string, opts Options, now time.Time) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('=')
	sb.WriteString(encodedValue)

	if t, ok := expiresAt(opts.Expires, now); ok {
		sb.WriteString("; expires=")
		sb.WriteString(t.UTC().Format(channel.TimeFormat))
	}
	switch {
	case opts.Path == nil:
		sb.WriteString("; path=/")
	case *opts.Path != "":
		sb.WriteString("; path=")
		sb.WriteString(*opts.Path)
	}
	if opts.Domain != "" {
		sb.WriteString("; domain=")
		sb.WriteString(opts.Domain)
	}
	if opts.Secure {
		sb.WriteString("; secure")
	}
	return sb.String()
}

// findValue returns the transport-encoded value of the first pair whose name
// matches exactly. A pair only matches when the name is followed immediately
// by '=' in the raw document.
func findValue(raw, name string) (string, bool) {
	for _, p := range channel.Pairs(raw) {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

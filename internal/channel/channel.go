// Copyright (c) 2026 Nlaak Studios (https://nlaak.com)
// Author: Andrew Donelson (https://www.linkedin.com/in/andrew-donelson/)
//
// channel.go — the storage collaborator contract and the serialized entry
// grammar shared by every channel implementation: "name=value" pairs joined
// by "; " on read, "name=value; expires=...; path=...; domain=...; secure"
// on write.

// Package channel defines the cookie storage collaborator interface and the
// wire grammar of serialized entries.
package channel

import (
	"context"
	"errors"
	"strings"
	"time"
)

// TimeFormat is the expires attribute format (RFC 1123 with fixed GMT).
const TimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// ErrMalformed is returned when a serialized entry cannot be parsed.
var ErrMalformed = errors.New("channel: malformed entry")

// Channel is the raw storage collaborator. ReadAll returns every live entry
// as "name=value" pairs joined by "; "; Write stores, replaces, or (when the
// entry carries a past expiry) deletes a single named entry.
type Channel interface {
	ReadAll(ctx context.Context) (string, error)
	Write(ctx context.Context, entry string) error
}

// Entry is a parsed serialized entry.
type Entry struct {
	Name       string
	Value      string // transport-encoded
	Expires    time.Time
	HasExpires bool // false = session entry
	Path       string
	Domain     string
	Secure     bool
}

// ExpiredAt reports whether the entry is a deletion at the given instant.
func (e Entry) ExpiredAt(now time.Time) bool {
	return e.HasExpires && !e.Expires.After(now)
}

// Parse decodes a serialized entry. Unknown attributes are ignored; a
// missing or empty name, or an unparseable expires date, is ErrMalformed.
func Parse(entry string) (Entry, error) {
	var e Entry
	parts := strings.Split(entry, "; ")
	eq := strings.IndexByte(parts[0], '=')
	if eq <= 0 {
		return Entry{}, ErrMalformed
	}
	e.Name, e.Value = parts[0][:eq], parts[0][eq+1:]

	for _, attr := range parts[1:] {
		key, val := attr, ""
		if i := strings.IndexByte(attr, '='); i >= 0 {
			key, val = attr[:i], attr[i+1:]
		}
		switch strings.ToLower(key) {
		case "expires":
			t, err := time.Parse(TimeFormat, val)
			if err != nil {
				return Entry{}, ErrMalformed
			}
			e.Expires, e.HasExpires = t, true
		case "path":
			e.Path = val
		case "domain":
			e.Domain = val
		case "secure":
			e.Secure = true
		}
	}
	return e, nil
}

// Pair is one "name=value" element of a ReadAll document.
type Pair struct {
	Name  string
	Value string
}

// Pairs splits a ReadAll document into its pairs. Pieces without '=' are
// skipped; an entry is a match only when the name is followed immediately
// by '='.
func Pairs(raw string) []Pair {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, "; ")
	pairs := make([]Pair, 0, len(parts))
	for _, p := range parts {
		i := strings.IndexByte(p, '=')
		if i < 0 {
			continue
		}
		pairs = append(pairs, Pair{Name: p[:i], Value: p[i+1:]})
	}
	return pairs
}

// Join renders pairs back into a ReadAll document.
func Join(pairs []Pair) string {
	var sb strings.Builder
	for i, p := range pairs {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(p.Name)
		sb.WriteByte('=')
		sb.WriteString(p.Value)
	}
	return sb.String()
}

package cookiejar

// White-box tests for attribute assembly and pair matching.

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func TestSerializeEntry_Defaults(t *testing.T) {
	got := serializeEntry("a", "1", Options{}, testNow)
	assert.Equal(t, "a=1; path=/", got)
}

func TestSerializeEntry_RelativeDays(t *testing.T) {
	got := serializeEntry("a", "1", Options{Expires: InDays(7)}, testNow)
	assert.Equal(t, "a=1; expires=Sun, 22 Mar 2026 12:00:00 GMT; path=/", got)
}

func TestSerializeEntry_FractionalDays(t *testing.T) {
	got := serializeEntry("a", "1", Options{Expires: InDays(0.5)}, testNow)
	assert.Equal(t, "a=1; expires=Mon, 16 Mar 2026 00:00:00 GMT; path=/", got)
}

func TestSerializeEntry_AbsoluteInstant(t *testing.T) {
	at := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	got := serializeEntry("a", "1", Options{Expires: At(at)}, testNow)
	assert.Equal(t, "a=1; expires=Fri, 01 Jan 2027 00:00:00 GMT; path=/", got)
}

func TestSerializeEntry_ExpiredIsInThePast(t *testing.T) {
	at, ok := expiresAt(Expired(), testNow)
	require.True(t, ok)
	assert.True(t, at.Before(testNow))
}

func TestSerializeEntry_PathVariants(t *testing.T) {
	// nil = root scope, "" = no attribute, other = verbatim.
	assert.Equal(t, "a=1; path=/", serializeEntry("a", "1", Options{}, testNow))
	assert.Equal(t, "a=1", serializeEntry("a", "1", Options{Path: Ptr("")}, testNow))
	assert.Equal(t, "a=1; path=/app", serializeEntry("a", "1", Options{Path: Ptr("/app")}, testNow))
}

func TestSerializeEntry_DomainAndSecure(t *testing.T) {
	got := serializeEntry("a", "1", Options{Domain: ".example.com", Secure: true}, testNow)
	assert.Equal(t, "a=1; path=/; domain=.example.com; secure", got)
}

func TestFindValue(t *testing.T) {
	raw := "a=1; ab=2; b="

	v, ok := findValue(raw, "a")
	require.True(t, ok)
	assert.Equal(t, "1", v)

	// Exact name match only: "a" must not match "ab".
	v, ok = findValue(raw, "ab")
	require.True(t, ok)
	assert.Equal(t, "2", v)

	v, ok = findValue(raw, "b")
	require.True(t, ok)
	assert.Empty(t, v)

	_, ok = findValue(raw, "missing")
	assert.False(t, ok)

	_, ok = findValue("", "a")
	assert.False(t, ok)
}

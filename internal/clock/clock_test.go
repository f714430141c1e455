package clock_test

import (
	"testing"
	"time"

	"github.com/AndrewDonelson/cookiejar/internal/clock"
	"github.com/stretchr/testify/assert"
)

func TestReal_Now(t *testing.T) {
	before := time.Now()
	got := clock.Real{}.Now()
	assert.False(t, got.Before(before))
}

func TestMock_DefaultEpoch(t *testing.T) {
	m := clock.NewMock(time.Time{})
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), m.Now())
}

func TestMock_SetAndAdvance(t *testing.T) {
	at := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	m := clock.NewMock(at)
	assert.Equal(t, at, m.Now())

	m.Advance(24 * time.Hour)
	assert.Equal(t, at.Add(24*time.Hour), m.Now())

	m.Set(at)
	assert.Equal(t, at, m.Now())
}

package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }

func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

func newClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
}

func TestValueExpiry(t *testing.T) {
	clock := newClock()
	c := New[string](time.Minute, clock.Now)

	_, ok := c.Get()
	assert.False(t, ok, "empty cache")

	c.Set("a")
	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "a", got)

	clock.Advance(59 * time.Second)
	_, ok = c.Get()
	assert.True(t, ok)

	clock.Advance(time.Second)
	_, ok = c.Get()
	assert.False(t, ok, "expired at ttl")
}

func TestGetOrRefreshFetchesOnceWithinTTL(t *testing.T) {
	clock := newClock()
	c := New[[]string](10*time.Minute, clock.Now)

	calls := 0
	fetch := func() ([]string, error) {
		calls++
		return []string{"k"}, nil
	}

	first, err := c.GetOrRefresh(fetch, nil)
	require.NoError(t, err)
	second, err := c.GetOrRefresh(fetch, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)

	clock.Advance(10 * time.Minute)
	_, err = c.GetOrRefresh(fetch, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrRefreshSkipsStoreWhenRejected(t *testing.T) {
	c := New[string](time.Minute, newClock().Now)

	calls := 0
	fetch := func() (string, error) {
		calls++
		return "bad", nil
	}
	reject := func(string) bool { return false }

	got, err := c.GetOrRefresh(fetch, reject)
	require.NoError(t, err)
	assert.Equal(t, "bad", got)

	_, err = c.GetOrRefresh(fetch, reject)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestGetOrRefreshErrorLeavesCache(t *testing.T) {
	clock := newClock()
	c := New[string](time.Minute, clock.Now)
	c.Set("old")
	clock.Advance(2 * time.Minute)

	boom := errors.New("boom")
	_, err := c.GetOrRefresh(func() (string, error) { return "new", boom }, nil)
	assert.ErrorIs(t, err, boom)

	_, ok := c.Get()
	assert.False(t, ok, "failed refresh stores nothing")

	clock.Advance(-2 * time.Minute)
	got, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, "old", got)
}

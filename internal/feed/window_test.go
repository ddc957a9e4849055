package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func TestDateWindow(t *testing.T) {
	loc := london(t)
	target := time.Date(2025, 7, 15, 12, 0, 0, 0, loc)
	w := NewDateWindow(target, loc)

	assert.True(t, w.Contains(time.Date(2025, 7, 15, 0, 0, 0, 0, loc)))
	assert.True(t, w.Contains(time.Date(2025, 7, 15, 23, 59, 59, 0, loc)))
	assert.False(t, w.Contains(time.Date(2025, 7, 14, 23, 59, 59, 0, loc)))
	assert.False(t, w.Contains(time.Date(2025, 7, 16, 0, 0, 0, 0, loc)))
}

func TestDateWindowConvertsZones(t *testing.T) {
	loc := london(t)
	// During BST a UTC instant of 23:30 belongs to the next local day.
	w := NewDateWindow(time.Date(2025, 7, 16, 12, 0, 0, 0, loc), loc)
	assert.True(t, w.Contains(time.Date(2025, 7, 15, 23, 30, 0, 0, time.UTC)))
	assert.False(t, w.Contains(time.Date(2025, 7, 16, 23, 30, 0, 0, time.UTC)))
}

func TestDayRange(t *testing.T) {
	loc := london(t)
	w := NewDayRange(time.Date(2025, 7, 15, 9, 30, 0, 0, loc), loc)

	// BST local midnight is 23:00 UTC the previous day.
	assert.Equal(t, time.Date(2025, 7, 14, 23, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 7, 15, 23, 0, 0, 0, time.UTC), w.End)

	assert.True(t, w.Contains(w.Start))
	assert.True(t, w.Contains(w.End.Add(-time.Second)))
	assert.False(t, w.Contains(w.End), "range is half-open")
	assert.False(t, w.Contains(w.Start.Add(-time.Second)))
}

func TestDayRangeWinter(t *testing.T) {
	loc := london(t)
	// GMT: local midnight coincides with UTC midnight.
	w := NewDayRange(time.Date(2025, 1, 10, 15, 0, 0, 0, loc), loc)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), w.Start)
	assert.Equal(t, time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC), w.End)
}

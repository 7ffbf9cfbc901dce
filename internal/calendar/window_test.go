package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAllowedDatesSpansThroughHorizonMonthEnd(t *testing.T) {
	today := date(2025, time.January, 15)

	dates := AllowedDates(today, 2)
	require.NotEmpty(t, dates)

	assert.Equal(t, "2025-01-15", dates[0])
	assert.Equal(t, "2025-03-31", dates[len(dates)-1])
	// 17 days of January + 28 of February + 31 of March.
	assert.Len(t, dates, 17+28+31)
}

func TestAllowedDatesNeverContainsPastDates(t *testing.T) {
	today := date(2025, time.June, 20)
	start := today.Format("2006-01-02")

	for _, d := range AllowedDates(today, 3) {
		assert.GreaterOrEqual(t, d, start, "window must not reach before today")
	}
}

func TestAllowedDatesZeroHorizonIsRestOfMonth(t *testing.T) {
	dates := AllowedDates(date(2025, time.January, 30), 0)

	assert.Equal(t, []string{"2025-01-30", "2025-01-31"}, dates)
}

func TestAllowedDatesCrossesYearBoundary(t *testing.T) {
	dates := AllowedDates(date(2025, time.November, 10), 3)

	assert.Equal(t, "2025-11-10", dates[0])
	assert.Equal(t, "2026-02-28", dates[len(dates)-1])
}

func TestAllowedDatesHandlesLeapFebruary(t *testing.T) {
	dates := AllowedDates(date(2024, time.January, 31), 1)

	assert.Equal(t, "2024-02-29", dates[len(dates)-1])
}

func TestAllowedDatesIgnoresTimeOfDay(t *testing.T) {
	noon := time.Date(2025, time.January, 15, 12, 30, 45, 0, time.UTC)

	assert.Equal(t, AllowedDates(date(2025, time.January, 15), 2), AllowedDates(noon, 2))
}

func TestLongAndShortSurfacesShareOnePolicy(t *testing.T) {
	today := date(2025, time.January, 15)

	short := AllowedDates(today, 2)
	long := AllowedDates(today, 36)

	// The short window is a strict prefix of the long one: same policy,
	// different horizon.
	require.Greater(t, len(long), len(short))
	assert.Equal(t, short, long[:len(short)])
	assert.Equal(t, "2028-01-31", long[len(long)-1])
}

func TestContainsMatchesAllowedDates(t *testing.T) {
	today := date(2025, time.January, 15)

	for _, d := range AllowedDates(today, 2) {
		assert.True(t, Contains(today, 2, d), d)
	}
	assert.False(t, Contains(today, 2, "2025-01-14"), "yesterday")
	assert.False(t, Contains(today, 2, "2025-04-01"), "past horizon end")
	assert.False(t, Contains(today, 2, "not-a-date"))
	assert.False(t, Contains(today, 2, ""))
}

func TestWindowEnd(t *testing.T) {
	assert.Equal(t, "2025-03-31", WindowEnd(date(2025, time.January, 15), 2))
	assert.Equal(t, "2028-01-31", WindowEnd(date(2025, time.January, 15), 36))
}

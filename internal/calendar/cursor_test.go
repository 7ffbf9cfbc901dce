package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCursorPrevSaturatesAtTodayMonth(t *testing.T) {
	today := date(2025, time.January, 15)
	c := Cursor{Month: time.March, Year: 2025}

	c = c.Prev(today, 2)
	assert.Equal(t, Cursor{Month: time.February, Year: 2025}, c)
	c = c.Prev(today, 2)
	assert.Equal(t, Cursor{Month: time.January, Year: 2025}, c)

	// Repeated Prev converges and stops changing.
	for i := 0; i < 5; i++ {
		c = c.Prev(today, 2)
	}
	assert.Equal(t, Cursor{Month: time.January, Year: 2025}, c)
}

func TestCursorNextSaturatesAtHorizonEndMonth(t *testing.T) {
	today := date(2025, time.January, 15)
	c := CursorFor(today)

	c = c.Next(today, 2)
	assert.Equal(t, Cursor{Month: time.February, Year: 2025}, c)

	for i := 0; i < 10; i++ {
		c = c.Next(today, 2)
	}
	assert.Equal(t, Cursor{Month: time.March, Year: 2025}, c)
}

func TestCursorNavigationCrossesYearBoundary(t *testing.T) {
	today := date(2025, time.December, 5)

	c := CursorFor(today).Next(today, 2)
	assert.Equal(t, Cursor{Month: time.January, Year: 2026}, c)

	c = c.Prev(today, 2)
	assert.Equal(t, Cursor{Month: time.December, Year: 2025}, c)
}

func TestCursorReclampsWhenTodayMovesForward(t *testing.T) {
	// A session left open across a month rollover: the cursor still
	// points at January, but today is now February.  The next
	// interaction must clamp forward because both bounds derive from
	// the current today, never from cached state.
	c := Cursor{Month: time.January, Year: 2025}
	later := date(2025, time.February, 1)

	assert.Equal(t, Cursor{Month: time.February, Year: 2025}, c.Prev(later, 2))
	assert.Equal(t, Cursor{Month: time.February, Year: 2025}, c.Clamp(later, 2))
}

func TestCursorClampUpperBound(t *testing.T) {
	today := date(2025, time.January, 15)
	c := Cursor{Month: time.December, Year: 2031}

	assert.Equal(t, Cursor{Month: time.March, Year: 2025}, c.Clamp(today, 2))
}

func TestCursorMonthHelpers(t *testing.T) {
	c := Cursor{Month: time.February, Year: 2024}

	assert.Equal(t, date(2024, time.February, 1), c.FirstDay())
	assert.Equal(t, 29, c.DaysInMonth())
	assert.Equal(t, 28, Cursor{Month: time.February, Year: 2025}.DaysInMonth())
	assert.Equal(t, 31, Cursor{Month: time.December, Year: 2025}.DaysInMonth())
}

package calendar

import "time"

// Cursor identifies the month a booking surface is currently showing.
// It is ephemeral per-session state; both navigation bounds are
// recomputed from the today value passed on every call, never cached,
// so a session left open across midnight or a month rollover re-clamps
// on its next interaction.
type Cursor struct {
	Month time.Month `json:"month"`
	Year  int        `json:"year"`
}

// CursorFor returns the cursor pointing at the month containing t.
func CursorFor(t time.Time) Cursor {
	y, m, _ := t.UTC().Date()
	return Cursor{Month: m, Year: y}
}

// Clamp forces the cursor into the navigable range for the given today
// and horizon: no earlier than today's month, no later than the month
// containing the horizon's end.
func (c Cursor) Clamp(today time.Time, horizonMonths int) Cursor {
	lo := CursorFor(today)
	hi := CursorFor(horizonEnd(today, horizonMonths))
	if c.before(lo) {
		return lo
	}
	if hi.before(c) {
		return hi
	}
	return c
}

// Prev moves one month back, saturating at the month containing today.
func (c Cursor) Prev(today time.Time, horizonMonths int) Cursor {
	prev := Cursor{Month: c.Month - 1, Year: c.Year}
	if prev.Month < time.January {
		prev.Month = time.December
		prev.Year--
	}
	return prev.Clamp(today, horizonMonths)
}

// Next moves one month forward, saturating at the month containing the
// end of the booking window.
func (c Cursor) Next(today time.Time, horizonMonths int) Cursor {
	next := Cursor{Month: c.Month + 1, Year: c.Year}
	if next.Month > time.December {
		next.Month = time.January
		next.Year++
	}
	return next.Clamp(today, horizonMonths)
}

// FirstDay returns midnight UTC on the first day of the cursor's month.
func (c Cursor) FirstDay() time.Time {
	return time.Date(c.Year, c.Month, 1, 0, 0, 0, 0, time.UTC)
}

// DaysInMonth returns the number of days in the cursor's month.
func (c Cursor) DaysInMonth() int {
	return time.Date(c.Year, c.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func (c Cursor) before(o Cursor) bool {
	if c.Year != o.Year {
		return c.Year < o.Year
	}
	return c.Month < o.Month
}

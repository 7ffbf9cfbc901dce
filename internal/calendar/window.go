// Package calendar implements the booking-window policy: which
// calendar dates a booking surface may offer, and how a month cursor
// navigates inside that window.  Everything here is pure date
// arithmetic – "today" is always an explicit parameter so callers stay
// deterministic and testable without a mocked clock.
package calendar

import "time"

// dateOnly strips the time-of-day component and pins the result to UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// horizonEnd returns the last day of the month horizonMonths months
// after today's month.  Using day zero of the following month keeps the
// arithmetic safe across variable month lengths and year boundaries.
func horizonEnd(today time.Time, horizonMonths int) time.Time {
	y, m, _ := today.UTC().Date()
	return time.Date(y, m+time.Month(horizonMonths)+1, 0, 0, 0, 0, 0, time.UTC)
}

// AllowedDates returns every selectable date for a surface with the
// given horizon, ordered ascending: from today (inclusive) through the
// last day of the month horizonMonths months ahead.  Dates before today
// are never produced, so a month already in progress is only partially
// included.  A negative horizon yields just the remainder of the
// current month.
func AllowedDates(today time.Time, horizonMonths int) []string {
	start := dateOnly(today)
	end := horizonEnd(today, horizonMonths)
	if end.Before(start) {
		return nil
	}
	dates := make([]string, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format("2006-01-02"))
	}
	return dates
}

// Contains reports whether date (formatted "2006-01-02") falls inside
// the window AllowedDates(today, horizonMonths) would produce, without
// materialising the slice.  Malformed dates are simply outside the
// window.
func Contains(today time.Time, horizonMonths int, date string) bool {
	d, err := time.ParseInLocation("2006-01-02", date, time.UTC)
	if err != nil {
		return false
	}
	start := dateOnly(today)
	return !d.Before(start) && !d.After(horizonEnd(today, horizonMonths))
}

// WindowEnd exposes the inclusive upper bound of the window, formatted
// per the wire layout.  Handlers use it to tell clients how far ahead a
// surface reaches.
func WindowEnd(today time.Time, horizonMonths int) string {
	return horizonEnd(today, horizonMonths).Format("2006-01-02")
}

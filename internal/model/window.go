package model

import "time"

// Window is a closed date interval [Start, End] over which metrics are
// aggregated.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the inclusive day count of the window. A window whose start
// and end fall on the same calendar day counts as one day.
func (w Window) Days() int {
	start := DayStart(w.Start)
	end := DayStart(w.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// Duration returns the span between the window bounds.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Previous returns the window of identical duration immediately preceding
// this one: its end is one millisecond before this window's start.
func (w Window) Previous() Window {
	end := w.Start.Add(-time.Millisecond)
	return Window{Start: end.Add(-w.Duration()), End: end}
}

// TrailingWindow returns the window covering the trailing n calendar days
// ending at the given instant, inclusive: TrailingWindow(t, 1) spans just
// t's own day.
func TrailingWindow(end time.Time, days int) Window {
	return Window{Start: DayStart(end).AddDate(0, 0, -(days - 1)), End: end}
}

// DayStart truncates t to midnight in its own location.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DayEnd returns the last representable millisecond of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Millisecond)
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsLateNight reports whether t's hour falls in the late-night band:
// 22:00 or later, or before 06:00.
func IsLateNight(t time.Time) bool {
	h := t.Hour()
	return h >= 22 || h < 6
}

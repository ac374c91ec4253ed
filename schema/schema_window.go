package schema

import "time"

// TimeWindow is a half-open [From, To) range bounding a query.
type TimeWindow struct {
	From time.Time `json:"from" yaml:"from"`
	To   time.Time `json:"to" yaml:"to"`
}

// NewTrailingWindow returns the window of the given number of days ending at now.
func NewTrailingWindow(now time.Time, days int) TimeWindow {
	return TimeWindow{From: now.AddDate(0, 0, -days), To: now}
}

// WeekOf returns the calendar week containing t, starting Sunday 00:00 in t's location.
func WeekOf(t time.Time) TimeWindow {
	start := StartOfWeek(t)
	return TimeWindow{From: start, To: start.AddDate(0, 0, 7)}
}

// StartOfWeek returns Sunday 00:00 of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t time.Time) bool {
	return !t.Before(w.From) && t.Before(w.To)
}

// ContainsPtr is Contains for optional timestamps; nil is never contained.
func (w TimeWindow) ContainsPtr(t *time.Time) bool {
	return t != nil && w.Contains(*t)
}

// Days returns the window length in fractional days.
func (w TimeWindow) Days() float64 {
	return w.To.Sub(w.From).Hours() / 24
}

// Weeks returns the window length in fractional weeks.
func (w TimeWindow) Weeks() float64 {
	return w.Days() / 7
}

// Label renders the window start as yyyy-MM-dd.
func (w TimeWindow) Label() string {
	return w.From.Format(LabelDateFormat)
}

// IsZero reports whether neither bound is set.
func (w TimeWindow) IsZero() bool {
	return w.From.IsZero() && w.To.IsZero()
}

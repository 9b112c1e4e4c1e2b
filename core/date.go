package core

import "time"

const (
	DayLayout     = "2006-01-02"
	DisplayLayout = "Jan 2, 2006"
)

// DayKey identifies the UTC calendar day of t, ignoring the time of day.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// ParseDay parses a "2006-01-02" string as a UTC date.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, CleanString(s), time.UTC)
}

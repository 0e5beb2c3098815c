package utils

import "time"

// dayFormat is the wire format for date query parameters and date-only
// request fields.
const dayFormat = "2006-01-02"

// ParseDay parses a YYYY-MM-DD string in the server's local time zone.
// Schedules at the counter are local calendar days, not UTC days.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(dayFormat, s, time.Local)
}

// DayWindow returns the half-open interval [00:00:00, next 00:00:00) of the
// calendar day containing t, in t's location.
func DayWindow(t time.Time) (start, end time.Time) {
	y, m, d := t.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}

// Day truncates t to the start of its calendar day, in t's location.
func Day(t time.Time) time.Time {
	start, _ := DayWindow(t)
	return start
}

// ParseDateTime accepts either a date-only value or a full RFC 3339
// timestamp.  Clients send travel and deposit dates as plain dates; scanned
// records round-trip as timestamps.
func ParseDateTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(dayFormat, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

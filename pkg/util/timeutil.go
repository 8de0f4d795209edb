package util

import "time"

// isoMillis matches the timestamp layout the storefront has always persisted.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// NowUTC exposes time.Now for deterministic testing.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FormatISO renders t in UTC with millisecond precision, e.g. 2024-07-01T09:30:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

// DateStamp renders the calendar date of t in UTC.
func DateStamp(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

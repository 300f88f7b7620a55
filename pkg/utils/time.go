package utils

import "time"

// FormatTimestamp renders an entry timestamp for the wire and the mirror.
// Nanosecond precision is kept so a round trip reproduces the instant.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

// ParseTimestamp parses a timestamp produced by FormatTimestamp. Plain
// RFC3339 values parse too.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

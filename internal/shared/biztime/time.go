// Package biztime centralizes time handling. All storage and transport use
// UTC; the helpers here exist so business code never reaches for the
// implicit local timezone.
package biztime

import "time"

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// HoursUntil returns the number of hours from now (UTC) until t.
// Negative when t is in the past.
func HoursUntil(t time.Time) float64 {
	return t.Sub(NowUTC()).Hours()
}

// FormatRFC3339 formats a UTC time for API responses and metadata.
func FormatRFC3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

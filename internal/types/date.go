package types

import (
	"time"
)

// ToDate truncates t to midnight UTC of its calendar day
func ToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Nights returns the number of calendar days between check-in and check-out.
// The result is zero or negative for degenerate stays.
func Nights(checkIn, checkOut time.Time) int {
	return int(ToDate(checkOut).Sub(ToDate(checkIn)).Hours() / 24)
}

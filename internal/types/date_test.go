package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var (
	ist = time.FixedZone("IST", 5*60*60+30*60)
	pst = time.FixedZone("PST", -8*60*60)
)

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{
			name:     "three nights",
			checkIn:  time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC),
			want:     3,
		},
		{
			name:     "times of day are ignored",
			checkIn:  time.Date(2024, time.March, 10, 23, 30, 0, 0, time.UTC),
			checkOut: time.Date(2024, time.March, 11, 0, 15, 0, 0, time.UTC),
			want:     1,
		},
		{
			name:     "same day",
			checkIn:  time.Date(2024, time.March, 10, 8, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC),
			want:     0,
		},
		{
			name:     "inverted",
			checkIn:  time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			want:     -2,
		},
		{
			name:     "across leap day",
			checkIn:  time.Date(2024, time.February, 28, 0, 0, 0, 0, time.UTC),
			checkOut: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			want:     2,
		},
		{
			name:     "zones are normalized to UTC days",
			checkIn:  time.Date(2024, time.March, 10, 12, 0, 0, 0, ist),
			checkOut: time.Date(2024, time.March, 12, 12, 0, 0, 0, pst),
			want:     2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Nights(tt.checkIn, tt.checkOut))
		})
	}
}

func TestToDate(t *testing.T) {
	got := ToDate(time.Date(2024, time.March, 10, 1, 0, 0, 0, ist))
	assert.Equal(t, time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC), got)
}

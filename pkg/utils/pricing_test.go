package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	assert.Equal(t, 1, Nights(date(2026, 3, 10), date(2026, 3, 11)))
	assert.Equal(t, 3, Nights(date(2026, 3, 10), date(2026, 3, 13)))
	assert.Equal(t, 0, Nights(date(2026, 3, 10), date(2026, 3, 10)))
	assert.Equal(t, -1, Nights(date(2026, 3, 11), date(2026, 3, 10)))

	// Partial days never count
	late := time.Date(2026, 3, 10, 23, 0, 0, 0, time.UTC)
	early := time.Date(2026, 3, 11, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, Nights(late, early))
}

func TestHotelBookingTotal(t *testing.T) {
	total, err := HotelBookingTotal(2500, 2, date(2026, 3, 10), date(2026, 3, 13))
	assert.NoError(t, err)
	assert.Equal(t, float64(15000), total)

	total, err = HotelBookingTotal(1800, 1, date(2026, 3, 10), date(2026, 3, 11))
	assert.NoError(t, err)
	assert.Equal(t, float64(1800), total)
}

func TestHotelBookingTotalRejectsEmptyRange(t *testing.T) {
	_, err := HotelBookingTotal(2500, 1, date(2026, 3, 10), date(2026, 3, 10))
	assert.Error(t, err)

	_, err = HotelBookingTotal(2500, 1, date(2026, 3, 11), date(2026, 3, 10))
	assert.Error(t, err)
}

func TestHotelBookingTotalRejectsZeroRooms(t *testing.T) {
	_, err := HotelBookingTotal(2500, 0, date(2026, 3, 10), date(2026, 3, 12))
	assert.Error(t, err)
}

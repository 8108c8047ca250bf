package utils

import (
	"errors"
	"time"
)

// Nights returns the number of nights between check-in and check-out.
// Both dates are truncated to midnight so partial days never count.
func Nights(checkIn, checkOut time.Time) int {
	in := time.Date(checkIn.Year(), checkIn.Month(), checkIn.Day(), 0, 0, 0, 0, checkIn.Location())
	out := time.Date(checkOut.Year(), checkOut.Month(), checkOut.Day(), 0, 0, 0, 0, checkOut.Location())
	return int(out.Sub(in).Hours() / 24)
}

// HotelBookingTotal computes the total amount for a room booking:
// price per night x number of rooms x nights. The date range must span
// at least one night.
func HotelBookingTotal(pricePerNight float64, rooms int, checkIn, checkOut time.Time) (float64, error) {
	if rooms < 1 {
		return 0, errors.New("rooms must be at least 1")
	}
	nights := Nights(checkIn, checkOut)
	if nights < 1 {
		return 0, errors.New("check-out must be after check-in")
	}
	return pricePerNight * float64(rooms) * float64(nights), nil
}

package models

import (
	"gorm.io/gorm"
)

type BookingKind string

const (
	BookingKindTourRequest  BookingKind = "tour_request"
	BookingKindTour         BookingKind = "tour"
	BookingKindHotelBooking BookingKind = "hotel_booking"
	BookingKindPackage      BookingKind = "package_booking"
)

// Notification is an append-only per-user message emitted by a state-changing
// action elsewhere in the system. Only IsRead ever changes after creation.
type Notification struct {
	gorm.Model
	UserID      uint        `json:"userId" gorm:"not null;index"`
	User        User        `json:"-"`
	Message     string      `json:"message" gorm:"not null"`
	BookingKind BookingKind `json:"bookingKind"`
	BookingID   *uint       `json:"bookingId"`
	IsRead      bool        `json:"isRead" gorm:"default:false"`
}

func (Notification) TableName() string {
	return "notifications"
}

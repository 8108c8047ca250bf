package models

import (
	"time"

	"gorm.io/gorm"
)

type Hotel struct {
	gorm.Model
	OwnerID       uint         `json:"ownerId" gorm:"not null"`
	Owner         User         `json:"owner"`
	Name          string       `json:"name" gorm:"not null"`
	City          string       `json:"city"`
	Area          string       `json:"area"`
	Address       string       `json:"address"`
	Phone         string       `json:"phone"`
	Description   string       `json:"description"`
	MinPrice      float64      `json:"minPrice" gorm:"default:0"`
	MaxPrice      float64      `json:"maxPrice" gorm:"default:0"`
	AverageRating float64      `json:"averageRating" gorm:"default:0"`
	RoomTypes     []RoomType   `json:"roomTypes"`
	Images        []HotelImage `json:"images"`
}

func (Hotel) TableName() string {
	return "hotels"
}

type RoomType struct {
	gorm.Model
	HotelID        uint    `json:"hotelId" gorm:"not null"`
	Name           string  `json:"name" gorm:"not null"`
	PricePerNight  float64 `json:"pricePerNight" gorm:"not null"`
	Capacity       int     `json:"capacity" gorm:"default:2"`
	AvailableRooms int     `json:"availableRooms" gorm:"default:0"`
	Description    string  `json:"description"`
}

func (RoomType) TableName() string {
	return "room_types"
}

type HotelImage struct {
	gorm.Model
	HotelID uint   `json:"hotelId" gorm:"not null"`
	URL     string `json:"url" gorm:"not null"`
	Caption string `json:"caption"`
}

func (HotelImage) TableName() string {
	return "hotel_images"
}

type HotelBookingStatus string

const (
	HotelBookingStatusPending   HotelBookingStatus = "pending"
	HotelBookingStatusConfirmed HotelBookingStatus = "confirmed"
	HotelBookingStatusCancelled HotelBookingStatus = "cancelled"
	HotelBookingStatusCompleted HotelBookingStatus = "completed"
)

// HotelBooking is a tourist's room reservation request against a specific
// hotel room type and date range.
type HotelBooking struct {
	gorm.Model
	TouristID   uint               `json:"touristId" gorm:"not null"`
	Tourist     User               `json:"tourist"`
	HotelID     uint               `json:"hotelId" gorm:"not null"`
	Hotel       Hotel              `json:"hotel"`
	RoomTypeID  uint               `json:"roomTypeId" gorm:"not null"`
	RoomType    RoomType           `json:"roomType"`
	CheckIn     time.Time          `json:"checkIn" gorm:"not null"`
	CheckOut    time.Time          `json:"checkOut" gorm:"not null"`
	Rooms       int                `json:"rooms" gorm:"default:1"`
	Guests      int                `json:"guests" gorm:"default:1"`
	TotalAmount float64            `json:"totalAmount" gorm:"not null"`
	Status      HotelBookingStatus `json:"status" gorm:"not null;default:'pending'"`
}

func (HotelBooking) TableName() string {
	return "hotel_bookings"
}

// HotelReview is a tourist's rating of a hotel, one per (hotel, tourist) pair.
type HotelReview struct {
	gorm.Model
	HotelID   uint   `json:"hotelId" gorm:"not null;uniqueIndex:idx_hotel_tourist_review"`
	Hotel     Hotel  `json:"hotel"`
	TouristID uint   `json:"touristId" gorm:"not null;uniqueIndex:idx_hotel_tourist_review"`
	Tourist   User   `json:"tourist"`
	BookingID *uint  `json:"bookingId"`
	Rating    int    `json:"rating" gorm:"not null"`
	Comment   string `json:"comment"`
}

func (HotelReview) TableName() string {
	return "hotel_reviews"
}

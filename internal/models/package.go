package models

import (
	"time"

	"gorm.io/gorm"
)

type Package struct {
	gorm.Model
	DestinationName  string  `json:"destinationName" gorm:"not null"`
	ImageURL         string  `json:"imageUrl"`
	PeopleLimit      int     `json:"peopleLimit" gorm:"not null"`
	Price            float64 `json:"price" gorm:"not null"`
	Days             int     `json:"days" gorm:"default:1"`
	Description      string  `json:"description"`
	Itinerary        string  `json:"itinerary"`
	IncludedServices string  `json:"includedServices"`
	Exclusions       string  `json:"exclusions"`
}

func (Package) TableName() string {
	return "packages"
}

type PackageBookingStatus string

const (
	PackageBookingStatusPending   PackageBookingStatus = "pending"
	PackageBookingStatusConfirmed PackageBookingStatus = "confirmed"
	PackageBookingStatusCancelled PackageBookingStatus = "cancelled"
)

type PackageBooking struct {
	gorm.Model
	PackageID    uint                 `json:"packageId" gorm:"not null"`
	Package      Package              `json:"package"`
	TouristID    uint                 `json:"touristId" gorm:"not null"`
	Tourist      User                 `json:"tourist"`
	PeopleCount  int                  `json:"peopleCount" gorm:"default:1"`
	TourDate     time.Time            `json:"tourDate"`
	MobileNumber string               `json:"mobileNumber"`
	Status       PackageBookingStatus `json:"status" gorm:"not null;default:'pending'"`
}

func (PackageBooking) TableName() string {
	return "package_bookings"
}

type PackageReview struct {
	gorm.Model
	PackageID uint    `json:"packageId" gorm:"not null"`
	Package   Package `json:"package"`
	TouristID uint    `json:"touristId" gorm:"not null"`
	Tourist   User    `json:"tourist"`
	Rating    int     `json:"rating" gorm:"not null;default:5"`
	Comment   string  `json:"comment"`
}

func (PackageReview) TableName() string {
	return "package_reviews"
}

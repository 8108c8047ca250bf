package models

import (
	"time"

	"gorm.io/gorm"
)

type TourRequestStatus string

const (
	TourRequestStatusPending  TourRequestStatus = "pending"
	TourRequestStatusAccepted TourRequestStatus = "accepted"
	TourRequestStatusRejected TourRequestStatus = "rejected"
)

// TourRequest is a tourist's booking ask directed at a specific guide,
// pending the guide's accept or reject decision.
type TourRequest struct {
	gorm.Model
	TouristID     uint              `json:"touristId" gorm:"not null"`
	Tourist       User              `json:"tourist"`
	GuideID       uint              `json:"guideId" gorm:"not null"`
	Guide         User              `json:"guide"`
	DestinationID uint              `json:"destinationId" gorm:"not null"`
	Destination   Destination       `json:"destination"`
	Date          time.Time         `json:"date" gorm:"not null"`
	PeopleCount   int               `json:"peopleCount" gorm:"default:1"`
	Price         *float64          `json:"price"`
	Note          string            `json:"note"`
	Status        TourRequestStatus `json:"status" gorm:"not null;default:'pending'"`
}

func (TourRequest) TableName() string {
	return "tour_requests"
}

type TourStatus string

const (
	TourStatusUpcoming  TourStatus = "upcoming"
	TourStatusCompleted TourStatus = "completed"
	TourStatusCancelled TourStatus = "cancelled"
)

// Tour is a confirmed guide engagement, created only by accepting a TourRequest.
type Tour struct {
	gorm.Model
	GuideID       uint        `json:"guideId" gorm:"not null"`
	Guide         User        `json:"guide"`
	Tourists      []User      `json:"tourists" gorm:"many2many:tour_tourists"`
	DestinationID uint        `json:"destinationId" gorm:"not null"`
	Destination   Destination `json:"destination"`
	StartDate     time.Time   `json:"startDate" gorm:"not null"`
	EndDate       time.Time   `json:"endDate"`
	Price         *float64    `json:"price"`
	Status        TourStatus  `json:"status" gorm:"not null;default:'upcoming'"`
}

func (Tour) TableName() string {
	return "tours"
}

// Earning is a ledger entry recording a guide's income from an accepted tour.
type Earning struct {
	gorm.Model
	GuideID     uint      `json:"guideId" gorm:"not null"`
	Guide       User      `json:"guide"`
	Amount      float64   `json:"amount" gorm:"not null"`
	Description string    `json:"description"`
	Date        time.Time `json:"date" gorm:"not null"`
}

func (Earning) TableName() string {
	return "earnings"
}

// Review is a tourist's rating of a guide, one per (guide, tourist) pair.
type Review struct {
	gorm.Model
	GuideID   uint   `json:"guideId" gorm:"not null;uniqueIndex:idx_guide_tourist_review"`
	Guide     User   `json:"guide"`
	TouristID uint   `json:"touristId" gorm:"not null;uniqueIndex:idx_guide_tourist_review"`
	Tourist   User   `json:"tourist"`
	Rating    int    `json:"rating" gorm:"not null"`
	Comment   string `json:"comment"`
}

func (Review) TableName() string {
	return "reviews"
}

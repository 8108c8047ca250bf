package models

import (
	"gorm.io/gorm"
)

type GuideProfile struct {
	gorm.Model
	UserID          uint    `json:"userId" gorm:"not null;uniqueIndex"`
	User            User    `json:"user"`
	Phone           string  `json:"phone"`
	Bio             string  `json:"bio"`
	ExperienceYears int     `json:"experienceYears" gorm:"default:0"`
	IsVerified      bool    `json:"isVerified" gorm:"default:false"`
	IsCompleted     bool    `json:"isCompleted" gorm:"default:false"`
	AverageRating   float64 `json:"averageRating" gorm:"default:0"`
}

func (GuideProfile) TableName() string {
	return "guide_profiles"
}

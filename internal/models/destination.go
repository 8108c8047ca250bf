package models

import (
	"gorm.io/gorm"
)

type Destination struct {
	gorm.Model
	Name        string `json:"name" gorm:"not null"`
	Location    string `json:"location"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

func (Destination) TableName() string {
	return "destinations"
}

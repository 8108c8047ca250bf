package models

import (
	"gorm.io/gorm"
)

// ContactMessage is a helpline submission from the public contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Subject string `json:"subject"`
	Message string `json:"message" gorm:"not null"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

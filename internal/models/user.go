package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type Role string

const (
	RoleTourist      Role = "tourist"
	RoleGuide        Role = "guide"
	RoleHotelManager Role = "hotel_manager"
)

type User struct {
	gorm.Model
	Username     string `json:"username" gorm:"column:username;unique;not null"`
	Email        string `json:"email" gorm:"column:email;unique;not null"`
	PasswordHash string `json:"-" gorm:"column:password_hash;not null"`
	PhoneNumber  string `json:"phoneNumber" gorm:"column:phone_number"`
	Role         Role   `json:"role" gorm:"column:role;not null"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

func (u *User) IsTourist() bool {
	return u.Role == RoleTourist
}

func (u *User) IsGuide() bool {
	return u.Role == RoleGuide
}

func (u *User) IsHotelManager() bool {
	return u.Role == RoleHotelManager
}

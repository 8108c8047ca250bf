package database

import (
	"fmt"
	"os"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := AutoMigrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// AutoMigrate creates or updates the full schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.GuideProfile{},
		&models.Destination{},
		&models.TourRequest{},
		&models.Tour{},
		&models.Earning{},
		&models.Review{},
		&models.Hotel{},
		&models.RoomType{},
		&models.HotelImage{},
		&models.HotelBooking{},
		&models.HotelReview{},
		&models.Package{},
		&models.PackageBooking{},
		&models.PackageReview{},
		&models.Notification{},
		&models.ContactMessage{},
	)
}

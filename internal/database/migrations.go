package database

import (
	"gorm.io/gorm"
)

// RunMigrations applies schema adjustments that AutoMigrate does not cover:
// the closed role set on users and the per-pair uniqueness of guide and
// hotel reviews.
func RunMigrations(db *gorm.DB) error {
	if err := AutoMigrate(db); err != nil {
		return err
	}

	// Enforce the closed role set at the database level
	db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_role_check`)
	if err := db.Exec(`ALTER TABLE users ADD CONSTRAINT users_role_check CHECK (role IN ('tourist', 'guide', 'hotel_manager'))`).Error; err != nil {
		return err
	}

	// One review per (guide, tourist) and per (hotel, tourist) pair
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_guide_tourist_review ON reviews (guide_id, tourist_id)`).Error; err != nil {
		return err
	}
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_hotel_tourist_review ON hotel_reviews (hotel_id, tourist_id)`).Error; err != nil {
		return err
	}

	// Ratings are bounded 1..5
	db.Exec(`ALTER TABLE reviews DROP CONSTRAINT IF EXISTS reviews_rating_check`)
	if err := db.Exec(`ALTER TABLE reviews ADD CONSTRAINT reviews_rating_check CHECK (rating BETWEEN 1 AND 5)`).Error; err != nil {
		return err
	}
	db.Exec(`ALTER TABLE hotel_reviews DROP CONSTRAINT IF EXISTS hotel_reviews_rating_check`)
	if err := db.Exec(`ALTER TABLE hotel_reviews ADD CONSTRAINT hotel_reviews_rating_check CHECK (rating BETWEEN 1 AND 5)`).Error; err != nil {
		return err
	}

	// Room inventory can never go negative
	db.Exec(`ALTER TABLE room_types DROP CONSTRAINT IF EXISTS room_types_available_rooms_check`)
	if err := db.Exec(`ALTER TABLE room_types ADD CONSTRAINT room_types_available_rooms_check CHECK (available_rooms >= 0)`).Error; err != nil {
		return err
	}

	return nil
}

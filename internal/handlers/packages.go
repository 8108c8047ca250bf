package handlers

import (
	"strconv"
	"time"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// packageRatings loads the current ratings for a package. The aggregate is
// computed on read, not cached on the package row.
func packageRatings(db *gorm.DB, packageID uint) ([]int, error) {
	var ratings []int
	err := db.Model(&models.PackageReview{}).Where("package_id = ?", packageID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

// GetPackages lists all tour packages with their read-time rating aggregates
func GetPackages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var packages []models.Package
		if err := db.Order("created_at DESC").Find(&packages).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch packages"})
			return
		}

		result := make([]gin.H, 0, len(packages))
		for _, pkg := range packages {
			ratings, err := packageRatings(db, pkg.ID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch package ratings"})
				return
			}
			result = append(result, gin.H{
				"package":       pkg,
				"averageRating": utils.PackageAverageRating(ratings),
				"reviewCount":   len(ratings),
			})
		}

		c.JSON(200, result)
	}
}

// GetPackage returns one package with its reviews
func GetPackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid package ID"})
			return
		}

		var pkg models.Package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Package not found"})
			return
		}

		var reviews []models.PackageReview
		if err := db.Preload("Tourist").Where("package_id = ?", packageID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		ratings := make([]int, 0, len(reviews))
		for _, review := range reviews {
			ratings = append(ratings, review.Rating)
		}

		c.JSON(200, gin.H{
			"package":       pkg,
			"reviews":       reviews,
			"averageRating": utils.PackageAverageRating(ratings),
			"reviewCount":   len(ratings),
		})
	}
}

// BookPackage creates a package booking for the authenticated tourist.
// A tourist can hold at most one booking per package; the duplicate check
// runs before any write.
func BookPackage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid package ID"})
			return
		}

		var pkg models.Package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Package not found"})
			return
		}

		var existingCount int64
		if err := db.Model(&models.PackageBooking{}).
			Where("package_id = ? AND tourist_id = ?", packageID, touristID).
			Count(&existingCount).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to check existing bookings"})
			return
		}
		if existingCount > 0 {
			c.JSON(400, gin.H{"error": "You have already booked this package"})
			return
		}

		var input struct {
			PeopleCount  int    `json:"peopleCount" binding:"required,min=1"`
			TourDate     string `json:"tourDate" binding:"required"` // YYYY-MM-DD
			MobileNumber string `json:"mobileNumber" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.PeopleCount > pkg.PeopleLimit {
			c.JSON(400, gin.H{"error": "People count exceeds the package limit"})
			return
		}

		tourDate, err := time.Parse("2006-01-02", input.TourDate)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid tour date, expected YYYY-MM-DD"})
			return
		}

		today := time.Now().Truncate(24 * time.Hour)
		if tourDate.Before(today) {
			c.JSON(400, gin.H{"error": "Tour date cannot be in the past"})
			return
		}

		booking := models.PackageBooking{
			PackageID:    pkg.ID,
			TouristID:    touristID,
			PeopleCount:  input.PeopleCount,
			TourDate:     tourDate,
			MobileNumber: input.MobileNumber,
			Status:       models.PackageBookingStatusPending,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		c.JSON(201, gin.H{
			"message":   "Booking confirmed successfully",
			"bookingId": booking.ID,
			"status":    booking.Status,
		})
	}
}

// GetTouristPackageBookings lists the authenticated tourist's package bookings
func GetTouristPackageBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		var bookings []models.PackageBooking
		if err := db.Preload("Package").
			Where("tourist_id = ?", touristID).
			Order("created_at DESC").
			Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// AddPackageReview records a tourist's review of a package. Unlike guide and
// hotel reviews there is no per-pair uniqueness, matching the package
// listing's on-read aggregate.
func AddPackageReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		packageID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid package ID"})
			return
		}

		var pkg models.Package
		if err := db.First(&pkg, packageID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Package not found"})
			return
		}

		var input reviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		review := models.PackageReview{
			PackageID: pkg.ID,
			TouristID: touristID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}

		if err := db.Create(&review).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create review"})
			return
		}

		c.JSON(201, gin.H{
			"message":  "Your review has been submitted successfully",
			"reviewId": review.ID,
		})
	}
}

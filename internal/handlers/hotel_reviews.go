package handlers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/deshghuri/deshghuri-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// recomputeHotelRating rewrites the hotel's denormalized average from the
// full review set, on the same transaction as the review write.
func recomputeHotelRating(tx *gorm.DB, hotelID uint) error {
	var ratings []int
	if err := tx.Model(&models.HotelReview{}).Where("hotel_id = ?", hotelID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}
	average := utils.AverageRating(ratings)
	return tx.Model(&models.Hotel{}).Where("id = ?", hotelID).
		Update("average_rating", average).Error
}

type hotelReviewInput struct {
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
	BookingID *uint  `json:"bookingId"`
}

// CreateHotelReview creates a tourist's review of a hotel. A second review
// for the same hotel edits the existing one in place.
func CreateHotelReview(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		hotelID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid hotel ID"})
			return
		}

		var input hotelReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var hotel models.Hotel
		if err := db.First(&hotel, hotelID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Hotel not found"})
			return
		}

		var tourist models.User
		if err := db.First(&tourist, touristID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get tourist information"})
			return
		}

		var existing models.HotelReview
		findErr := db.Where("hotel_id = ? AND tourist_id = ?", hotelID, touristID).First(&existing).Error

		if findErr == nil {
			err = db.Transaction(func(tx *gorm.DB) error {
				existing.Rating = input.Rating
				existing.Comment = input.Comment
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				return recomputeHotelRating(tx, hotel.ID)
			})
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to update review"})
				return
			}

			c.JSON(200, gin.H{
				"message":  "You already reviewed this hotel, your review has been updated",
				"reviewId": existing.ID,
			})
			return
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"error": "Failed to look up existing review"})
			return
		}

		review := models.HotelReview{
			HotelID:   hotel.ID,
			TouristID: touristID,
			BookingID: input.BookingID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			if err := recomputeHotelRating(tx, hotel.ID); err != nil {
				return err
			}
			message := fmt.Sprintf("%s left a %d-star review for %s",
				tourist.Username, input.Rating, hotel.Name)
			notification, err = services.CreateNotification(
				tx, hotel.OwnerID, message, "", nil)
			return err
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create review"})
			return
		}

		services.PushNotification(hub, notification)

		c.JSON(201, gin.H{
			"message":  "Review submitted successfully",
			"reviewId": review.ID,
		})
	}
}

// UpdateHotelReview lets the author edit their hotel review
func UpdateHotelReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review ID"})
			return
		}

		var input hotelReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var review models.HotelReview
		if err := db.First(&review, reviewID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Review not found"})
			return
		}

		if review.TouristID != touristID {
			c.JSON(403, gin.H{"error": "Unauthorized to edit this review"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			review.Rating = input.Rating
			review.Comment = input.Comment
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
			return recomputeHotelRating(tx, review.HotelID)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to update review"})
			return
		}

		c.JSON(200, gin.H{
			"message":  "Review updated successfully",
			"reviewId": review.ID,
		})
	}
}

// DeleteHotelReview lets the author remove their hotel review
func DeleteHotelReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review ID"})
			return
		}

		var review models.HotelReview
		if err := db.First(&review, reviewID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Review not found"})
			return
		}

		if review.TouristID != touristID {
			c.JSON(403, gin.H{"error": "Unauthorized to delete this review"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Unscoped().Delete(&review).Error; err != nil {
				return err
			}
			return recomputeHotelRating(tx, review.HotelID)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(200, gin.H{"message": "Review deleted successfully"})
	}
}

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

// recomputeGuideRating rewrites the guide profile's denormalized average
// from the full review set. Must run on the same transaction as the review
// write so the aggregate never drifts from the rows.
func recomputeGuideRating(tx *gorm.DB, guideID uint) error {
	var ratings []int
	if err := tx.Model(&models.Review{}).Where("guide_id = ?", guideID).
		Pluck("rating", &ratings).Error; err != nil {
		return err
	}
	average := utils.AverageRating(ratings)
	return tx.Model(&models.GuideProfile{}).Where("user_id = ?", guideID).
		Update("average_rating", average).Error
}

type reviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// CreateGuideReview creates a tourist's review of a guide. A second review
// for the same guide edits the existing one in place instead of creating a
// duplicate row.
func CreateGuideReview(db *gorm.DB, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		guideID, err := strconv.ParseUint(c.Param("guideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid guide ID"})
			return
		}

		var input reviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var guide models.User
		if err := db.First(&guide, guideID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Guide not found"})
			return
		}
		if !guide.IsGuide() {
			c.JSON(400, gin.H{"error": "User is not a guide"})
			return
		}

		var tourist models.User
		if err := db.First(&tourist, touristID).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to get tourist information"})
			return
		}

		var existing models.Review
		findErr := db.Where("guide_id = ? AND tourist_id = ?", guideID, touristID).First(&existing).Error

		if findErr == nil {
			// One review per (guide, tourist) pair: update in place
			err = db.Transaction(func(tx *gorm.DB) error {
				existing.Rating = input.Rating
				existing.Comment = input.Comment
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				return recomputeGuideRating(tx, uint(guideID))
			})
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to update review"})
				return
			}

			c.JSON(200, gin.H{
				"message":  "You already reviewed this guide, your review has been updated",
				"reviewId": existing.ID,
			})
			return
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			c.JSON(500, gin.H{"error": "Failed to look up existing review"})
			return
		}

		review := models.Review{
			GuideID:   uint(guideID),
			TouristID: touristID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}

		var notification *models.Notification
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			if err := recomputeGuideRating(tx, uint(guideID)); err != nil {
				return err
			}
			message := fmt.Sprintf("%s left you a %d-star review", tourist.Username, input.Rating)
			notification, err = services.CreateNotification(
				tx, uint(guideID), message, "", nil)
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

// UpdateGuideReview lets the author edit their review
func UpdateGuideReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review ID"})
			return
		}

		var input reviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var review models.Review
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
			return recomputeGuideRating(tx, review.GuideID)
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

// DeleteGuideReview lets the author remove their review
func DeleteGuideReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		touristID := c.GetUint("userId")

		reviewID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid review ID"})
			return
		}

		var review models.Review
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
			return recomputeGuideRating(tx, review.GuideID)
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete review"})
			return
		}

		c.JSON(200, gin.H{"message": "Review deleted successfully"})
	}
}

// GetGuideReviews lists reviews for a guide
func GetGuideReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := strconv.ParseUint(c.Param("guideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid guide ID"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("Tourist").
			Where("guide_id = ?", guideID).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, reviews)
	}
}

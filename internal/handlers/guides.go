package handlers

import (
	"strconv"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetGuides lists guide profiles with their rating aggregates
func GetGuides(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profiles []models.GuideProfile
		if err := db.Preload("User").Order("average_rating DESC").Find(&profiles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch guides"})
			return
		}

		c.JSON(200, profiles)
	}
}

// GetGuide returns one guide's profile with their reviews
func GetGuide(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID, err := strconv.ParseUint(c.Param("guideId"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid guide ID"})
			return
		}

		var profile models.GuideProfile
		if err := db.Preload("User").Where("user_id = ?", guideID).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Guide not found"})
			return
		}

		var reviews []models.Review
		if err := db.Preload("Tourist").Where("guide_id = ?", guideID).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch reviews"})
			return
		}

		c.JSON(200, gin.H{
			"profile": profile,
			"reviews": reviews,
		})
	}
}

// UpdateGuideProfile lets the authenticated guide edit their own profile
func UpdateGuideProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		guideID := c.GetUint("userId")

		var input struct {
			Phone           string `json:"phone"`
			Bio             string `json:"bio"`
			ExperienceYears int    `json:"experienceYears" binding:"min=0"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var profile models.GuideProfile
		if err := db.Where("user_id = ?", guideID).First(&profile).Error; err != nil {
			c.JSON(404, gin.H{"error": "Guide profile not found"})
			return
		}

		profile.Phone = input.Phone
		profile.Bio = input.Bio
		profile.ExperienceYears = input.ExperienceYears
		profile.IsCompleted = profile.Phone != "" && profile.Bio != ""

		if err := db.Save(&profile).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update profile"})
			return
		}

		c.JSON(200, gin.H{
			"message": "Profile updated successfully",
			"profile": profile,
		})
	}
}

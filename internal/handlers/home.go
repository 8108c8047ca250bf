package handlers

import (
	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Home returns the landing feed: the first six of each catalog entity,
// with package rating aggregates computed on read.
func Home(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var destinations []models.Destination
		if err := db.Limit(6).Find(&destinations).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch destinations"})
			return
		}

		var packages []models.Package
		if err := db.Limit(6).Find(&packages).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch packages"})
			return
		}

		packageFeed := make([]gin.H, 0, len(packages))
		for _, pkg := range packages {
			ratings, err := packageRatings(db, pkg.ID)
			if err != nil {
				c.JSON(500, gin.H{"error": "Failed to fetch package ratings"})
				return
			}
			packageFeed = append(packageFeed, gin.H{
				"package":       pkg,
				"averageRating": utils.PackageAverageRating(ratings),
				"reviewCount":   len(ratings),
			})
		}

		var guides []models.GuideProfile
		if err := db.Preload("User").Limit(6).Find(&guides).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch guides"})
			return
		}

		var hotels []models.Hotel
		if err := db.Preload("Images").Limit(6).Find(&hotels).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch hotels"})
			return
		}

		c.JSON(200, gin.H{
			"destinations": destinations,
			"packages":     packageFeed,
			"guides":       guides,
			"hotels":       hotels,
		})
	}
}

package handlers

import (
	"strconv"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetDestinations lists all destinations
func GetDestinations(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var destinations []models.Destination
		if err := db.Order("name").Find(&destinations).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch destinations"})
			return
		}

		c.JSON(200, destinations)
	}
}

// GetDestination returns one destination
func GetDestination(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		destinationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid destination ID"})
			return
		}

		var destination models.Destination
		if err := db.First(&destination, destinationID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Destination not found"})
			return
		}

		c.JSON(200, destination)
	}
}

package handlers

import (
	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateContactMessage stores a helpline submission from the public contact form
func CreateContactMessage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Name    string `json:"name" binding:"required"`
			Email   string `json:"email" binding:"required,email"`
			Subject string `json:"subject"`
			Message string `json:"message" binding:"required"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		contact := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}

		if err := db.Create(&contact).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to send message"})
			return
		}

		c.JSON(201, gin.H{"message": "Your message has been sent successfully"})
	}
}

package handlers

import (
	"context"
	"strconv"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/deshghuri/deshghuri-backend/internal/services"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetNotifications lists the authenticated user's notifications, newest first
func GetNotifications(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		pageStr := c.DefaultQuery("page", "1")
		limitStr := c.DefaultQuery("limit", "20")

		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			page = 1
		}

		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > 100 {
			limit = 20
		}

		offset := (page - 1) * limit

		var notifications []models.Notification
		if err := db.Where("user_id = ?", userID).
			Order("created_at DESC").
			Offset(offset).
			Limit(limit).
			Find(&notifications).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch notifications"})
			return
		}

		var total int64
		db.Model(&models.Notification{}).Where("user_id = ?", userID).Count(&total)

		c.JSON(200, gin.H{
			"notifications": notifications,
			"pagination": gin.H{
				"page":       page,
				"limit":      limit,
				"total":      total,
				"totalPages": (total + int64(limit) - 1) / int64(limit),
			},
		})
	}
}

// GetUnreadCount returns the user's unread notification count. The count is
// cached in Redis and recomputed from the database on a miss.
func GetUnreadCount(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")
		ctx := context.Background()

		if services.RedisClient != nil {
			if count, err := services.GetUnreadCount(ctx, userID); err == nil {
				c.JSON(200, gin.H{"unreadCount": count})
				return
			}
		}

		var count int64
		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Count(&count).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to count notifications"})
			return
		}

		if services.RedisClient != nil {
			services.SetUnreadCount(ctx, userID, count)
		}

		c.JSON(200, gin.H{"unreadCount": count})
	}
}

// MarkNotificationRead flips a single notification's read flag
func MarkNotificationRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid notification ID"})
			return
		}

		var notification models.Notification
		if err := db.First(&notification, notificationID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Notification not found"})
			return
		}

		if notification.UserID != userID {
			c.JSON(403, gin.H{"error": "Unauthorized to update this notification"})
			return
		}

		if !notification.IsRead {
			notification.IsRead = true
			if err := db.Save(&notification).Error; err != nil {
				c.JSON(500, gin.H{"error": "Failed to update notification"})
				return
			}
			if services.RedisClient != nil {
				services.InvalidateUnreadCount(context.Background(), userID)
			}
		}

		c.JSON(200, gin.H{"message": "Notification marked as read"})
	}
}

// MarkAllNotificationsRead flips every unread notification for the user
func MarkAllNotificationsRead(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("userId")

		if err := db.Model(&models.Notification{}).
			Where("user_id = ? AND is_read = ?", userID, false).
			Update("is_read", true).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update notifications"})
			return
		}

		if services.RedisClient != nil {
			services.InvalidateUnreadCount(context.Background(), userID)
		}

		c.JSON(200, gin.H{"message": "All notifications marked as read"})
	}
}

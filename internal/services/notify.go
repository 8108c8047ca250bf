package services

import (
	"context"
	"log"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"gorm.io/gorm"
)

// CreateNotification inserts a notification row using the caller's
// transaction handle, so the notification commits or rolls back together
// with the state change that caused it.
func CreateNotification(tx *gorm.DB, userID uint, message string, kind models.BookingKind, bookingID *uint) (*models.Notification, error) {
	notification := models.Notification{
		UserID:      userID,
		Message:     message,
		BookingKind: kind,
		BookingID:   bookingID,
	}
	if err := tx.Create(&notification).Error; err != nil {
		return nil, err
	}
	return &notification, nil
}

// PushNotification delivers a committed notification over the WebSocket hub
// and drops the user's cached unread count. Best effort: failures are logged
// and never surface to the request that caused the notification.
func PushNotification(hub *Hub, notification *models.Notification) {
	if hub != nil {
		hub.SendNotification(notification.UserID, NotificationPush{
			NotificationID: notification.ID,
			Message:        notification.Message,
			BookingKind:    string(notification.BookingKind),
			BookingID:      notification.BookingID,
		})
	}

	if RedisClient != nil {
		ctx := context.Background()
		if err := InvalidateUnreadCount(ctx, notification.UserID); err != nil {
			log.Printf("Failed to invalidate unread count for user %d: %v", notification.UserID, err)
		}
	}
}

// PublishBookingTransition mirrors a booking state change to the Redis
// pub/sub channel and to the WebSocket hub. Best effort.
func PublishBookingTransition(hub *Hub, userID uint, kind models.BookingKind, bookingID uint, status string) {
	if hub != nil {
		hub.SendBookingUpdate(userID, BookingStatusUpdate{
			BookingKind: string(kind),
			BookingID:   bookingID,
			Status:      status,
		})
	}

	if RedisClient != nil {
		ctx := context.Background()
		if err := PublishBookingUpdate(ctx, string(kind), bookingID, status, nil); err != nil {
			log.Printf("Failed to publish booking update: %v", err)
		}
	}
}

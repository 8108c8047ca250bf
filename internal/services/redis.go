package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// SetUnreadCount caches a user's unread notification count
func SetUnreadCount(ctx context.Context, userID uint, count int64) error {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	return RedisClient.Set(ctx, key, count, time.Hour).Err()
}

// GetUnreadCount retrieves a user's cached unread notification count
func GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	return RedisClient.Get(ctx, key).Int64()
}

// InvalidateUnreadCount drops the cached unread count after a notification
// write or a mark-as-read action
func InvalidateUnreadCount(ctx context.Context, userID uint) error {
	key := fmt.Sprintf("notifications:unread:%d", userID)
	return RedisClient.Del(ctx, key).Err()
}

// PublishBookingUpdate publishes a booking state transition to Redis pub/sub
func PublishBookingUpdate(ctx context.Context, kind string, bookingID uint, status string, data map[string]interface{}) error {
	updateData := map[string]interface{}{
		"kind":      kind,
		"bookingId": bookingID,
		"status":    status,
		"data":      data,
		"timestamp": time.Now().Unix(),
	}

	jsonData, err := json.Marshal(updateData)
	if err != nil {
		return err
	}

	return RedisClient.Publish(ctx, "booking:updates", jsonData).Err()
}

package handlers_test

import (
	"fmt"
	"testing"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createNotification(t *testing.T, db *gorm.DB, userID uint, message string) *models.Notification {
	t.Helper()
	notification := &models.Notification{UserID: userID, Message: message}
	require.NoError(t, db.Create(notification).Error)
	return notification
}

func TestGetNotificationsPagination(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	for i := 0; i < 25; i++ {
		createNotification(t, db, alice.ID, fmt.Sprintf("notification %d", i))
	}

	w := doJSON(t, r, "GET", "/notifications?page=1&limit=10", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	pagination := body["pagination"].(map[string]interface{})
	assert.Equal(t, float64(25), pagination["total"])
	assert.Equal(t, float64(3), pagination["totalPages"])
	assert.Len(t, body["notifications"], 10)

	w = doJSON(t, r, "GET", "/notifications?page=3&limit=10", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)
	body = decodeBody(t, w)
	assert.Len(t, body["notifications"], 5)
}

func TestGetUnreadCountWithoutCache(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	createNotification(t, db, alice.ID, "first")
	createNotification(t, db, alice.ID, "second")

	read := createNotification(t, db, alice.ID, "third")
	read.IsRead = true
	require.NoError(t, db.Save(read).Error)

	w := doJSON(t, r, "GET", "/notifications/unread-count", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(2), body["unreadCount"])
}

func TestMarkNotificationRead(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	mallory := createUser(t, db, "mallory", models.RoleTourist)
	notification := createNotification(t, db, alice.ID, "hello")

	// Only the recipient may mark it read
	w := doJSON(t, r, "POST", fmt.Sprintf("/notifications/%d/read", notification.ID), tokenFor(t, mallory), nil)
	assert.Equal(t, 403, w.Code)

	w = doJSON(t, r, "POST", fmt.Sprintf("/notifications/%d/read", notification.ID), tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	require.NoError(t, db.First(notification, notification.ID).Error)
	assert.True(t, notification.IsRead)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	bob := createUser(t, db, "bob", models.RoleGuide)
	createNotification(t, db, alice.ID, "first")
	createNotification(t, db, alice.ID, "second")
	createNotification(t, db, bob.ID, "for bob")

	w := doJSON(t, r, "POST", "/notifications/read-all", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)

	var unread int64
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", alice.ID, false).
		Count(&unread)
	assert.Equal(t, int64(0), unread)

	// Other users' notifications are untouched
	db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", bob.ID, false).
		Count(&unread)
	assert.Equal(t, int64(1), unread)

	w = doJSON(t, r, "GET", "/notifications/unread-count", tokenFor(t, alice), nil)
	require.Equal(t, 200, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(0), body["unreadCount"])
}

func TestNotificationsAreScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	alice := createUser(t, db, "alice", models.RoleTourist)
	bob := createUser(t, db, "bob", models.RoleGuide)
	createNotification(t, db, alice.ID, "for alice only")

	w := doJSON(t, r, "GET", "/notifications", tokenFor(t, bob), nil)
	require.Equal(t, 200, w.Code)
	assert.NotContains(t, w.Body.String(), "for alice only")
}

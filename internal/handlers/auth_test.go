package handlers_test

import (
	"testing"

	"github.com/deshghuri/deshghuri-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w := doJSON(t, r, "POST", "/auth/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "tourist",
	})
	require.Equal(t, 201, w.Code)

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	// Login with username
	w = doJSON(t, r, "POST", "/auth/login", "", map[string]interface{}{
		"identifier": "alice",
		"password":   "secret123",
	})
	assert.Equal(t, 200, w.Code)

	// Login with email
	w = doJSON(t, r, "POST", "/auth/login", "", map[string]interface{}{
		"identifier": "alice@example.com",
		"password":   "secret123",
	})
	assert.Equal(t, 200, w.Code)

	// Wrong password
	w = doJSON(t, r, "POST", "/auth/login", "", map[string]interface{}{
		"identifier": "alice",
		"password":   "wrong",
	})
	assert.Equal(t, 401, w.Code)
}

func TestRegisterGuideCreatesProfile(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w := doJSON(t, r, "POST", "/auth/register", "", map[string]interface{}{
		"username": "bob",
		"email":    "bob@example.com",
		"password": "secret123",
		"phone":    "01712345678",
		"role":     "guide",
	})
	require.Equal(t, 201, w.Code)

	var user models.User
	require.NoError(t, db.Where("username = ?", "bob").First(&user).Error)
	assert.Equal(t, models.RoleGuide, user.Role)

	var profile models.GuideProfile
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, "01712345678", profile.Phone)
	assert.Equal(t, float64(0), profile.AverageRating)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)

	w := doJSON(t, r, "POST", "/auth/register", "", map[string]interface{}{
		"username": "eve",
		"email":    "eve@example.com",
		"password": "secret123",
		"role":     "admin",
	})
	assert.Equal(t, 400, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)
	createUser(t, db, "alice", models.RoleTourist)

	w := doJSON(t, r, "POST", "/auth/register", "", map[string]interface{}{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
		"role":     "tourist",
	})
	assert.Equal(t, 400, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Username or email already in use", body["error"])

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	r := newRouter(db)
	createUser(t, db, "alice", models.RoleTourist)

	w := doJSON(t, r, "POST", "/auth/register", "", map[string]interface{}{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
		"role":     "tourist",
	})
	assert.Equal(t, 400, w.Code)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
